package ledger

import (
	"errors"
	"fmt"
	"sort"

	"mini-ledger/internal/domain"
)

// Ledger owns every client account together with the indexes needed to
// settle disputes. Records must be fed in arrival order: a dispute can only
// refer to a deposit processed before it. A Ledger is not safe for
// concurrent use.
type Ledger struct {
	accounts map[domain.ClientID]*domain.Account
	history  DepositHistory
	disputes map[domain.TxID]domain.TransactionRecord
	policy   FailurePolicy

	// Ids of every applied deposit and withdrawal. Unlike history it keeps
	// charged back deposits.
	seen map[domain.TxID]struct{}

	strictClientMatch bool
	blockLocked       bool

	stats domain.Stats
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithFailurePolicy sets how rejected records are handled. Defaults to IgnorePolicy.
func WithFailurePolicy(policy FailurePolicy) Option {
	return func(l *Ledger) {
		if policy != nil {
			l.policy = policy
		}
	}
}

// WithStrictClientMatch controls whether dispute, resolve and chargeback
// records must name the same client as the deposit they refer to.
// Enabled by default.
func WithStrictClientMatch(strict bool) Option {
	return func(l *Ledger) {
		l.strictClientMatch = strict
	}
}

// WithLockedAccountBlocking rejects deposits and withdrawals on locked
// accounts when enabled. Disabled by default.
func WithLockedAccountBlocking(block bool) Option {
	return func(l *Ledger) {
		l.blockLocked = block
	}
}

// NewLedger creates an empty ledger that records deposits in history.
func NewLedger(history DepositHistory, opts ...Option) *Ledger {
	l := &Ledger{
		accounts:          make(map[domain.ClientID]*domain.Account),
		history:           history,
		disputes:          make(map[domain.TxID]domain.TransactionRecord),
		seen:              make(map[domain.TxID]struct{}),
		policy:            IgnorePolicy{},
		strictClientMatch: true,
		stats:             domain.Stats{Failures: make(map[domain.FailureReason]int)},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Process applies a single record. Business-rule failures are passed to the
// failure policy and only returned if the policy says so; history store
// errors are always returned.
func (l *Ledger) Process(record domain.TransactionRecord) error {
	l.stats.Processed++

	var err error
	switch record.Kind {
	case domain.KindDeposit:
		err = l.processDeposit(record)
	case domain.KindWithdrawal:
		err = l.processWithdrawal(record)
	case domain.KindDispute:
		err = l.processDispute(record)
	case domain.KindResolve:
		err = l.processResolve(record)
	case domain.KindChargeback:
		err = l.processChargeback(record)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, record.Kind)
	}

	if err != nil {
		var failure *domain.Failure
		if errors.As(err, &failure) {
			l.stats.Failures[failure.Reason]++
			return l.policy.HandleFailure(failure)
		}
		return err
	}

	l.stats.Applied++
	return nil
}

func (l *Ledger) processDeposit(record domain.TransactionRecord) error {
	if !record.HasAmount {
		return domain.NewFailure(record, domain.ReasonMissingAmount, nil)
	}

	if _, dup := l.seen[record.Tx]; dup {
		return domain.NewFailure(record, domain.ReasonDuplicateTransaction, nil)
	}

	account, ok := l.accounts[record.Client]
	if !ok {
		account = domain.NewAccount()
	} else if l.blockLocked && account.Locked() {
		return domain.NewFailure(record, domain.ReasonAccountLocked, nil)
	}

	if err := account.Credit(record.Amount); err != nil {
		return domain.NewFailure(record, domain.ReasonOverflow, err)
	}
	l.accounts[record.Client] = account

	if err := l.history.Put(record); err != nil {
		return fmt.Errorf("could not record deposit %d: %w", record.Tx, err)
	}
	l.seen[record.Tx] = struct{}{}
	return nil
}

func (l *Ledger) processWithdrawal(record domain.TransactionRecord) error {
	account, ok := l.accounts[record.Client]
	if !ok {
		return domain.NewFailure(record, domain.ReasonUnknownAccount, nil)
	}
	if l.blockLocked && account.Locked() {
		return domain.NewFailure(record, domain.ReasonAccountLocked, nil)
	}
	if !record.HasAmount {
		return domain.NewFailure(record, domain.ReasonMissingAmount, nil)
	}
	if _, dup := l.seen[record.Tx]; dup {
		return domain.NewFailure(record, domain.ReasonDuplicateTransaction, nil)
	}

	if err := account.Debit(record.Amount); err != nil {
		return domain.NewFailure(record, domain.ReasonInsufficientFunds, err)
	}
	l.seen[record.Tx] = struct{}{}
	return nil
}

func (l *Ledger) processDispute(record domain.TransactionRecord) error {
	original, found, err := l.history.Get(record.Tx)
	if err != nil {
		return fmt.Errorf("could not look up deposit %d: %w", record.Tx, err)
	}
	if !found {
		return domain.NewFailure(record, domain.ReasonUnknownTransaction, nil)
	}
	if _, open := l.disputes[record.Tx]; open {
		return domain.NewFailure(record, domain.ReasonAlreadyDisputed, nil)
	}
	if l.strictClientMatch && record.Client != original.Client {
		return domain.NewFailure(record, domain.ReasonClientMismatch, nil)
	}

	// The deposit's client owns the funds, whoever raised the dispute.
	account, ok := l.accounts[original.Client]
	if !ok {
		return domain.NewFailure(record, domain.ReasonUnknownAccount, nil)
	}
	if err := account.Dispute(original.Amount); err != nil {
		return domain.NewFailure(record, domain.ReasonInsufficientFunds, err)
	}

	l.disputes[record.Tx] = original
	return nil
}

func (l *Ledger) processResolve(record domain.TransactionRecord) error {
	original, account, err := l.closeDispute(record)
	if err != nil {
		return err
	}
	if err := account.Resolve(original.Amount); err != nil {
		return domain.NewFailure(record, domain.ReasonInsufficientHeld, err)
	}
	return nil
}

func (l *Ledger) processChargeback(record domain.TransactionRecord) error {
	original, account, err := l.closeDispute(record)
	if err != nil {
		return err
	}
	if err := account.Chargeback(original.Amount); err != nil {
		return domain.NewFailure(record, domain.ReasonInsufficientHeld, err)
	}

	// A charged back deposit is consumed and cannot be disputed again. Its id
	// stays in seen so it cannot be reused either.
	if err := l.history.Delete(record.Tx); err != nil {
		return fmt.Errorf("could not remove deposit %d: %w", record.Tx, err)
	}
	return nil
}

// closeDispute removes the open dispute referenced by record and returns the
// disputed deposit along with the account holding its funds.
func (l *Ledger) closeDispute(record domain.TransactionRecord) (domain.TransactionRecord, *domain.Account, error) {
	original, open := l.disputes[record.Tx]
	if !open {
		return domain.TransactionRecord{}, nil, domain.NewFailure(record, domain.ReasonNotDisputed, nil)
	}
	if l.strictClientMatch && record.Client != original.Client {
		return domain.TransactionRecord{}, nil, domain.NewFailure(record, domain.ReasonClientMismatch, nil)
	}
	delete(l.disputes, record.Tx)

	account, ok := l.accounts[original.Client]
	if !ok {
		return domain.TransactionRecord{}, nil, domain.NewFailure(record, domain.ReasonUnknownAccount, nil)
	}
	return original, account, nil
}

// Account returns the current state of a single client's account.
func (l *Ledger) Account(client domain.ClientID) (domain.AccountSnapshot, bool) {
	account, ok := l.accounts[client]
	if !ok {
		return domain.AccountSnapshot{}, false
	}
	return account.Snapshot(client), true
}

// Snapshot returns the state of every account ever created, ordered by
// ascending client id.
func (l *Ledger) Snapshot() domain.Snapshot {
	snapshot := make(domain.Snapshot, 0, len(l.accounts))
	for client, account := range l.accounts {
		snapshot = append(snapshot, account.Snapshot(client))
	}
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].Client < snapshot[j].Client
	})
	return snapshot
}

// OpenDisputes returns the number of disputes awaiting resolve or chargeback.
func (l *Ledger) OpenDisputes() int {
	return len(l.disputes)
}

// Stats returns a copy of the processing counters.
func (l *Ledger) Stats() domain.Stats {
	failures := make(map[domain.FailureReason]int, len(l.stats.Failures))
	for reason, n := range l.stats.Failures {
		failures[reason] = n
	}
	return domain.Stats{
		Processed: l.stats.Processed,
		Applied:   l.stats.Applied,
		Failures:  failures,
	}
}
