package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned for a transaction type outside the five supported kinds.
var ErrUnknownKind = errors.New("unknown transaction type")

// Kind defines the nature of a transaction record.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

// ParseKind maps a transaction type such as "Deposit" or "chargeback" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(s))); kind {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a deposit or withdrawal. Dispute, resolve and chargeback
// records carry the TxID of the deposit they refer to.
type TxID uint32

// TransactionRecord describes one event of the input stream.
// Amount is only meaningful when HasAmount is set, which is the case for
// deposits and withdrawals.
type TransactionRecord struct {
	Kind      Kind     `json:"type"`
	Client    ClientID `json:"client"`
	Tx        TxID     `json:"tx"`
	Amount    Money    `json:"amount"`
	HasAmount bool     `json:"has_amount"`
}
