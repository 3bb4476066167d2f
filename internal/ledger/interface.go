package ledger

import "mini-ledger/internal/domain"

// DepositHistory indexes deposit records by transaction id so that later
// disputes can recover the disputed amount.
type DepositHistory interface {
	Put(record domain.TransactionRecord) error
	Get(tx domain.TxID) (domain.TransactionRecord, bool, error)
	Delete(tx domain.TxID) error
	Len() (int, error)
	Close() error
}

// FailurePolicy decides what happens to a record the ledger could not apply.
// A non-nil return value aborts processing.
type FailurePolicy interface {
	HandleFailure(failure *domain.Failure) error
}
