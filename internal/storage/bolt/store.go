// Package bolt provides a BoltDB-backed deposit history.
//
// Very long transaction streams keep every deposit around in case it is
// disputed later. Storing them in a BoltDB file keeps the resident set small;
// the file is scratch space for a single run and is opened with syncing
// disabled.
package bolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	boltdb "github.com/boltdb/bolt"

	"mini-ledger/internal/domain"
	"mini-ledger/internal/ledger"
)

const bucketName = "deposits"

// DepositHistory stores deposit records in a single BoltDB bucket keyed by
// the big-endian transaction id.
type DepositHistory struct {
	db *boltdb.DB
}

// Open opens (or creates) a BoltDB database at path and ensures the deposits
// bucket exists.
func Open(path string) (*DepositHistory, error) {
	db, err := boltdb.Open(path, 0600, &boltdb.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open deposit history %s: %w", path, err)
	}
	db.NoSync = true

	err = db.Update(func(tx *boltdb.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create %s bucket: %w", bucketName, err)
	}

	return &DepositHistory{db: db}, nil
}

// Put stores record under its transaction id, replacing any previous entry.
func (h *DepositHistory) Put(record domain.TransactionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return h.db.Update(func(tx *boltdb.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put(key(record.Tx), data)
	})
}

// Get returns the deposit stored under id.
func (h *DepositHistory) Get(id domain.TxID) (domain.TransactionRecord, bool, error) {
	var (
		record domain.TransactionRecord
		found  bool
	)

	err := h.db.View(func(tx *boltdb.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get(key(id))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &record)
	})
	if err != nil {
		return domain.TransactionRecord{}, false, err
	}
	return record, found, nil
}

// Delete removes id. Deleting an unknown id is a no-op.
func (h *DepositHistory) Delete(id domain.TxID) error {
	return h.db.Update(func(tx *boltdb.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete(key(id))
	})
}

// Len returns the number of stored deposits.
func (h *DepositHistory) Len() (int, error) {
	n := 0
	err := h.db.View(func(tx *boltdb.Tx) error {
		n = tx.Bucket([]byte(bucketName)).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count deposits: %w", err)
	}
	return n, nil
}

// Close releases the database file lock.
func (h *DepositHistory) Close() error {
	return h.db.Close()
}

func key(id domain.TxID) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(id))
	return b
}

var _ ledger.DepositHistory = (*DepositHistory)(nil)
