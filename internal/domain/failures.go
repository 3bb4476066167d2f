package domain

import "fmt"

// FailureReason classifies a business-rule failure.
type FailureReason string

const (
	ReasonInsufficientFunds    FailureReason = "insufficient_funds"
	ReasonInsufficientHeld     FailureReason = "insufficient_held"
	ReasonUnknownAccount       FailureReason = "unknown_account"
	ReasonUnknownTransaction   FailureReason = "unknown_transaction"
	ReasonNotDisputed          FailureReason = "not_disputed"
	ReasonAlreadyDisputed      FailureReason = "already_disputed"
	ReasonMissingAmount        FailureReason = "missing_amount"
	ReasonDuplicateTransaction FailureReason = "duplicate_transaction"
	ReasonClientMismatch       FailureReason = "client_mismatch"
	ReasonAccountLocked        FailureReason = "account_locked"
	ReasonOverflow             FailureReason = "overflow"
)

// Failure is a record that could not be applied because of a business rule.
// The ledger state is unchanged when a Failure is produced.
type Failure struct {
	Record TransactionRecord
	Reason FailureReason
	Err    error
}

// NewFailure builds a Failure for record. err may be nil.
func NewFailure(record TransactionRecord, reason FailureReason, err error) *Failure {
	return &Failure{Record: record, Reason: reason, Err: err}
}

// Error returns the formatted failure string.
func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s tx %d for client %d rejected: %s", f.Record.Kind, f.Record.Tx, f.Record.Client, f.Reason)
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (f *Failure) Unwrap() error {
	return f.Err
}
