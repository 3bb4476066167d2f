package domain

import "errors"

var (
	// ErrInsufficientFunds is returned when available funds cannot cover a debit or dispute.
	ErrInsufficientFunds = errors.New("insufficient available funds")
	// ErrInsufficientHeld is returned when held funds cannot cover a resolve or chargeback.
	ErrInsufficientHeld = errors.New("insufficient held funds")
)

// Account is a single client's balance state machine.
//
// available and held never go below zero, and available+held always fits in
// Money because Credit refuses amounts that would overflow the total. Every
// failed operation leaves the account untouched.
type Account struct {
	available Money
	held      Money
	locked    bool
}

// NewAccount returns an empty, unlocked account.
func NewAccount() *Account {
	return &Account{}
}

// Available returns the funds the client can withdraw or dispute against.
func (a *Account) Available() Money {
	return a.available
}

// Held returns the funds frozen by open disputes.
func (a *Account) Held() Money {
	return a.held
}

// Total returns available + held.
func (a *Account) Total() Money {
	return Money{units: a.available.units + a.held.units}
}

// Locked reports whether a chargeback has occurred on this account.
func (a *Account) Locked() bool {
	return a.locked
}

// Credit adds v to the available funds.
func (a *Account) Credit(v Money) error {
	if _, err := a.Total().Add(v); err != nil {
		return err
	}
	a.available = Money{units: a.available.units + v.units}
	return nil
}

// Debit removes v from the available funds.
func (a *Account) Debit(v Money) error {
	if a.available.LessThan(v) {
		return ErrInsufficientFunds
	}
	a.available = a.available.minus(v)
	return nil
}

// Dispute moves v from available to held.
func (a *Account) Dispute(v Money) error {
	if a.available.LessThan(v) {
		return ErrInsufficientFunds
	}
	a.available = a.available.minus(v)
	a.held = Money{units: a.held.units + v.units}
	return nil
}

// Resolve moves v from held back to available.
func (a *Account) Resolve(v Money) error {
	if a.held.LessThan(v) {
		return ErrInsufficientHeld
	}
	a.held = a.held.minus(v)
	a.available = Money{units: a.available.units + v.units}
	return nil
}

// Chargeback removes v from held and locks the account permanently.
func (a *Account) Chargeback(v Money) error {
	if a.held.LessThan(v) {
		return ErrInsufficientHeld
	}
	a.held = a.held.minus(v)
	a.locked = true
	return nil
}

// Snapshot captures the account state for reporting.
func (a *Account) Snapshot(client ClientID) AccountSnapshot {
	return AccountSnapshot{
		Client:    client,
		Available: a.available,
		Held:      a.held,
		Total:     a.Total(),
		Locked:    a.locked,
	}
}
