package memory

import (
	"mini-ledger/internal/domain"
	"mini-ledger/internal/ledger"
)

// DepositHistory is an in-memory implementation of ledger.DepositHistory.
// It grows with every deposit for the lifetime of the run.
type DepositHistory struct {
	deposits map[domain.TxID]domain.TransactionRecord
}

// NewDepositHistory creates an empty in-memory history.
func NewDepositHistory() *DepositHistory {
	return &DepositHistory{
		deposits: make(map[domain.TxID]domain.TransactionRecord),
	}
}

// Put stores record under its transaction id, replacing any previous entry.
func (h *DepositHistory) Put(record domain.TransactionRecord) error {
	h.deposits[record.Tx] = record
	return nil
}

// Get returns the deposit stored under tx.
func (h *DepositHistory) Get(tx domain.TxID) (domain.TransactionRecord, bool, error) {
	record, ok := h.deposits[tx]
	return record, ok, nil
}

// Delete removes tx. Deleting an unknown id is a no-op.
func (h *DepositHistory) Delete(tx domain.TxID) error {
	delete(h.deposits, tx)
	return nil
}

// Len returns the number of stored deposits.
func (h *DepositHistory) Len() (int, error) {
	return len(h.deposits), nil
}

// Close is a no-op.
func (h *DepositHistory) Close() error {
	return nil
}

// Compile-time check: ensure DepositHistory implements ledger.DepositHistory.
var _ ledger.DepositHistory = (*DepositHistory)(nil)
