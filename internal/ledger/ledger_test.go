package ledger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-ledger/internal/domain"
	"mini-ledger/internal/ledger"
	"mini-ledger/internal/storage/memory"
)

func mustMoney(t *testing.T, text string) domain.Money {
	t.Helper()
	m, err := domain.ParseMoney(text)
	require.NoError(t, err)
	return m
}

func deposit(t *testing.T, client domain.ClientID, tx domain.TxID, amount string) domain.TransactionRecord {
	return domain.TransactionRecord{Kind: domain.KindDeposit, Client: client, Tx: tx, Amount: mustMoney(t, amount), HasAmount: true}
}

func withdrawal(t *testing.T, client domain.ClientID, tx domain.TxID, amount string) domain.TransactionRecord {
	return domain.TransactionRecord{Kind: domain.KindWithdrawal, Client: client, Tx: tx, Amount: mustMoney(t, amount), HasAmount: true}
}

func reference(kind domain.Kind, client domain.ClientID, tx domain.TxID) domain.TransactionRecord {
	return domain.TransactionRecord{Kind: kind, Client: client, Tx: tx}
}

func snapshotOf(t *testing.T, client domain.ClientID, available, held, total string, locked bool) domain.AccountSnapshot {
	return domain.AccountSnapshot{
		Client:    client,
		Available: mustMoney(t, available),
		Held:      mustMoney(t, held),
		Total:     mustMoney(t, total),
		Locked:    locked,
	}
}

func processAll(t *testing.T, l *ledger.Ledger, records ...domain.TransactionRecord) {
	t.Helper()
	for _, record := range records {
		require.NoError(t, l.Process(record))
	}
}

func TestLedger_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		records func(t *testing.T) []domain.TransactionRecord
		want    func(t *testing.T) domain.Snapshot
	}{
		{
			name: "dispute holds the deposited funds",
			records: func(t *testing.T) []domain.TransactionRecord {
				return []domain.TransactionRecord{
					deposit(t, 1, 1, "10.0"),
					deposit(t, 2, 2, "5.0"),
					reference(domain.KindDispute, 1, 1),
				}
			},
			want: func(t *testing.T) domain.Snapshot {
				return domain.Snapshot{
					snapshotOf(t, 1, "0", "10", "10", false),
					snapshotOf(t, 2, "5", "0", "5", false),
				}
			},
		},
		{
			name: "resolve releases held funds",
			records: func(t *testing.T) []domain.TransactionRecord {
				return []domain.TransactionRecord{
					deposit(t, 1, 1, "10.0"),
					deposit(t, 2, 2, "5.0"),
					reference(domain.KindDispute, 1, 1),
					reference(domain.KindResolve, 1, 1),
				}
			},
			want: func(t *testing.T) domain.Snapshot {
				return domain.Snapshot{
					snapshotOf(t, 1, "10", "0", "10", false),
					snapshotOf(t, 2, "5", "0", "5", false),
				}
			},
		},
		{
			name: "chargeback removes funds and locks the account",
			records: func(t *testing.T) []domain.TransactionRecord {
				return []domain.TransactionRecord{
					deposit(t, 1, 1, "10.0"),
					reference(domain.KindDispute, 1, 1),
					reference(domain.KindChargeback, 1, 1),
					withdrawal(t, 1, 2, "1.0"),
				}
			},
			want: func(t *testing.T) domain.Snapshot {
				return domain.Snapshot{snapshotOf(t, 1, "0", "0", "0", true)}
			},
		},
		{
			name: "withdrawal exceeding available funds is ignored",
			records: func(t *testing.T) []domain.TransactionRecord {
				return []domain.TransactionRecord{
					deposit(t, 1, 1, "5.0"),
					withdrawal(t, 1, 2, "10.0"),
				}
			},
			want: func(t *testing.T) domain.Snapshot {
				return domain.Snapshot{snapshotOf(t, 1, "5", "0", "5", false)}
			},
		},
		{
			name: "deposits and withdrawals across clients",
			records: func(t *testing.T) []domain.TransactionRecord {
				return []domain.TransactionRecord{
					deposit(t, 1, 1, "1.0"),
					deposit(t, 2, 2, "2.0"),
					deposit(t, 1, 3, "2.0"),
					withdrawal(t, 1, 4, "1.5"),
					withdrawal(t, 2, 5, "3.0"),
				}
			},
			want: func(t *testing.T) domain.Snapshot {
				return domain.Snapshot{
					snapshotOf(t, 1, "1.5", "0", "1.5", false),
					snapshotOf(t, 2, "2", "0", "2", false),
				}
			},
		},
		{
			name: "dispute after funds were withdrawn is dropped",
			records: func(t *testing.T) []domain.TransactionRecord {
				return []domain.TransactionRecord{
					deposit(t, 1, 1, "10.0"),
					withdrawal(t, 1, 2, "8.0"),
					reference(domain.KindDispute, 1, 1),
					reference(domain.KindResolve, 1, 1),
				}
			},
			want: func(t *testing.T) domain.Snapshot {
				return domain.Snapshot{snapshotOf(t, 1, "2", "0", "2", false)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.NewLedger(memory.NewDepositHistory())
			processAll(t, l, tt.records(t)...)
			assert.Equal(t, tt.want(t), l.Snapshot())
		})
	}
}

func TestLedger_DisputeUnknownTransactionCreatesNothing(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory())

	processAll(t, l,
		reference(domain.KindDispute, 1, 99),
		reference(domain.KindResolve, 1, 99),
		reference(domain.KindChargeback, 1, 99),
	)

	assert.Empty(t, l.Snapshot())
	_, ok := l.Account(1)
	assert.False(t, ok)

	stats := l.Stats()
	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, 0, stats.Applied)
	assert.Equal(t, 1, stats.Failures[domain.ReasonUnknownTransaction])
	assert.Equal(t, 2, stats.Failures[domain.ReasonNotDisputed])
}

func TestLedger_DisputeUnknownTransactionLeavesExistingAccount(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory())
	processAll(t, l, deposit(t, 1, 1, "3.0"))
	before := l.Snapshot()

	processAll(t, l, reference(domain.KindDispute, 1, 2))
	assert.Equal(t, before, l.Snapshot())
}

func TestLedger_ChargebackIsTerminal(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory())
	processAll(t, l,
		deposit(t, 1, 1, "10.0"),
		deposit(t, 1, 2, "4.0"),
		reference(domain.KindDispute, 1, 1),
		reference(domain.KindChargeback, 1, 1),
	)
	after := l.Snapshot()
	assert.Equal(t, domain.Snapshot{snapshotOf(t, 1, "4", "0", "4", true)}, after)

	processAll(t, l,
		reference(domain.KindResolve, 1, 1),
		reference(domain.KindChargeback, 1, 1),
		reference(domain.KindDispute, 1, 1),
	)
	assert.Equal(t, after, l.Snapshot())

	stats := l.Stats()
	assert.Equal(t, 2, stats.Failures[domain.ReasonNotDisputed])
	assert.Equal(t, 1, stats.Failures[domain.ReasonUnknownTransaction])
}

func TestLedger_ResolvedDepositCanBeDisputedAgain(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory())
	processAll(t, l,
		deposit(t, 1, 1, "10.0"),
		reference(domain.KindDispute, 1, 1),
		reference(domain.KindResolve, 1, 1),
		reference(domain.KindDispute, 1, 1),
	)

	assert.Equal(t, domain.Snapshot{snapshotOf(t, 1, "0", "10", "10", false)}, l.Snapshot())
	assert.Equal(t, 1, l.OpenDisputes())
}

func TestLedger_DoubleDisputeIsRejected(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory())
	processAll(t, l,
		deposit(t, 1, 1, "10.0"),
		deposit(t, 1, 2, "10.0"),
		reference(domain.KindDispute, 1, 1),
		reference(domain.KindDispute, 1, 1),
	)

	assert.Equal(t, domain.Snapshot{snapshotOf(t, 1, "10", "10", "20", false)}, l.Snapshot())
	assert.Equal(t, 1, l.Stats().Failures[domain.ReasonAlreadyDisputed])
}

func TestLedger_DuplicateDepositIsRejected(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory())
	processAll(t, l,
		deposit(t, 1, 1, "10.0"),
		deposit(t, 2, 1, "7.0"),
		reference(domain.KindDispute, 1, 1),
	)

	assert.Equal(t, domain.Snapshot{snapshotOf(t, 1, "0", "10", "10", false)}, l.Snapshot())
	assert.Equal(t, 1, l.Stats().Failures[domain.ReasonDuplicateTransaction])
}

func TestLedger_ReusedTransactionIDs(t *testing.T) {
	tests := []struct {
		name    string
		records func(t *testing.T) []domain.TransactionRecord
		want    func(t *testing.T) domain.Snapshot
		dupes   int
	}{
		{
			name: "deposit after chargeback of the same id",
			records: func(t *testing.T) []domain.TransactionRecord {
				return []domain.TransactionRecord{
					deposit(t, 1, 1, "10.0"),
					deposit(t, 1, 2, "10.0"),
					reference(domain.KindDispute, 1, 1),
					reference(domain.KindChargeback, 1, 1),
					deposit(t, 1, 1, "50.0"),
				}
			},
			want: func(t *testing.T) domain.Snapshot {
				return domain.Snapshot{snapshotOf(t, 1, "10", "0", "10", true)}
			},
			dupes: 1,
		},
		{
			name: "deposit reusing a withdrawal id",
			records: func(t *testing.T) []domain.TransactionRecord {
				return []domain.TransactionRecord{
					deposit(t, 1, 1, "10.0"),
					withdrawal(t, 1, 7, "1.0"),
					deposit(t, 1, 7, "3.0"),
				}
			},
			want: func(t *testing.T) domain.Snapshot {
				return domain.Snapshot{snapshotOf(t, 1, "9", "0", "9", false)}
			},
			dupes: 1,
		},
		{
			name: "withdrawal reusing a deposit or withdrawal id",
			records: func(t *testing.T) []domain.TransactionRecord {
				return []domain.TransactionRecord{
					deposit(t, 1, 1, "10.0"),
					withdrawal(t, 1, 1, "1.0"),
					withdrawal(t, 1, 2, "1.0"),
					withdrawal(t, 1, 2, "1.0"),
				}
			},
			want: func(t *testing.T) domain.Snapshot {
				return domain.Snapshot{snapshotOf(t, 1, "9", "0", "9", false)}
			},
			dupes: 2,
		},
		{
			name: "rejected records do not claim their id",
			records: func(t *testing.T) []domain.TransactionRecord {
				return []domain.TransactionRecord{
					deposit(t, 1, 1, "1.0"),
					withdrawal(t, 1, 2, "5.0"),
					deposit(t, 1, 2, "5.0"),
				}
			},
			want: func(t *testing.T) domain.Snapshot {
				return domain.Snapshot{snapshotOf(t, 1, "6", "0", "6", false)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.NewLedger(memory.NewDepositHistory())
			processAll(t, l, tt.records(t)...)

			assert.Equal(t, tt.want(t), l.Snapshot())
			assert.Equal(t, tt.dupes, l.Stats().Failures[domain.ReasonDuplicateTransaction])
		})
	}
}

func TestLedger_MissingAmounts(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory())
	processAll(t, l,
		reference(domain.KindDeposit, 1, 1),
		deposit(t, 1, 2, "1.0"),
		reference(domain.KindWithdrawal, 1, 3),
		reference(domain.KindDispute, 1, 1),
	)

	assert.Equal(t, domain.Snapshot{snapshotOf(t, 1, "1", "0", "1", false)}, l.Snapshot())
	stats := l.Stats()
	assert.Equal(t, 2, stats.Failures[domain.ReasonMissingAmount])
	assert.Equal(t, 1, stats.Failures[domain.ReasonUnknownTransaction])
}

func TestLedger_WithdrawalFromUnknownAccount(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory())
	processAll(t, l, withdrawal(t, 5, 1, "1.0"))

	assert.Empty(t, l.Snapshot())
	assert.Equal(t, 1, l.Stats().Failures[domain.ReasonUnknownAccount])
}

func TestLedger_ClientMatching(t *testing.T) {
	records := func(t *testing.T) []domain.TransactionRecord {
		return []domain.TransactionRecord{
			deposit(t, 1, 1, "10.0"),
			deposit(t, 2, 2, "1.0"),
			reference(domain.KindDispute, 2, 1),
		}
	}

	t.Run("strict matching rejects cross-client disputes", func(t *testing.T) {
		l := ledger.NewLedger(memory.NewDepositHistory())
		processAll(t, l, records(t)...)

		assert.Equal(t, domain.Snapshot{
			snapshotOf(t, 1, "10", "0", "10", false),
			snapshotOf(t, 2, "1", "0", "1", false),
		}, l.Snapshot())
		assert.Equal(t, 1, l.Stats().Failures[domain.ReasonClientMismatch])
	})

	t.Run("lenient matching charges the depositing client", func(t *testing.T) {
		l := ledger.NewLedger(memory.NewDepositHistory(), ledger.WithStrictClientMatch(false))
		processAll(t, l, records(t)...)
		processAll(t, l, reference(domain.KindChargeback, 2, 1))

		assert.Equal(t, domain.Snapshot{
			snapshotOf(t, 1, "0", "0", "0", true),
			snapshotOf(t, 2, "1", "0", "1", false),
		}, l.Snapshot())
	})

	t.Run("strict matching keeps the dispute open on mismatched resolve", func(t *testing.T) {
		l := ledger.NewLedger(memory.NewDepositHistory())
		processAll(t, l,
			deposit(t, 1, 1, "10.0"),
			reference(domain.KindDispute, 1, 1),
			reference(domain.KindResolve, 2, 1),
		)
		assert.Equal(t, 1, l.OpenDisputes())

		processAll(t, l, reference(domain.KindResolve, 1, 1))
		assert.Equal(t, 0, l.OpenDisputes())
		assert.Equal(t, domain.Snapshot{snapshotOf(t, 1, "10", "0", "10", false)}, l.Snapshot())
	})
}

func TestLedger_LockedAccountBlocking(t *testing.T) {
	records := func(t *testing.T) []domain.TransactionRecord {
		return []domain.TransactionRecord{
			deposit(t, 1, 1, "10.0"),
			deposit(t, 1, 2, "5.0"),
			reference(domain.KindDispute, 1, 1),
			reference(domain.KindChargeback, 1, 1),
			deposit(t, 1, 3, "1.0"),
			withdrawal(t, 1, 4, "2.0"),
		}
	}

	t.Run("not blocked by default", func(t *testing.T) {
		l := ledger.NewLedger(memory.NewDepositHistory())
		processAll(t, l, records(t)...)
		assert.Equal(t, domain.Snapshot{snapshotOf(t, 1, "4", "0", "4", true)}, l.Snapshot())
	})

	t.Run("blocked when enabled", func(t *testing.T) {
		l := ledger.NewLedger(memory.NewDepositHistory(), ledger.WithLockedAccountBlocking(true))
		processAll(t, l, records(t)...)
		assert.Equal(t, domain.Snapshot{snapshotOf(t, 1, "5", "0", "5", true)}, l.Snapshot())
		assert.Equal(t, 2, l.Stats().Failures[domain.ReasonAccountLocked])
	})
}

func TestLedger_CreditOverflowIsReported(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory())
	processAll(t, l,
		deposit(t, 1, 1, "1844674407370955.1615"),
		deposit(t, 1, 2, "0.0001"),
		reference(domain.KindDispute, 1, 2),
	)

	account, ok := l.Account(1)
	require.True(t, ok)
	assert.Equal(t, "1844674407370955.1615", account.Total.String())
	stats := l.Stats()
	assert.Equal(t, 1, stats.Failures[domain.ReasonOverflow])
	assert.Equal(t, 1, stats.Failures[domain.ReasonUnknownTransaction])
}

func TestLedger_RejectPolicyStopsOnFirstFailure(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory(), ledger.WithFailurePolicy(ledger.RejectPolicy{}))
	require.NoError(t, l.Process(deposit(t, 1, 1, "5.0")))

	err := l.Process(withdrawal(t, 1, 2, "10.0"))
	require.Error(t, err)

	var failure *domain.Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, domain.ReasonInsufficientFunds, failure.Reason)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, domain.Snapshot{snapshotOf(t, 1, "5", "0", "5", false)}, l.Snapshot())
}

func TestLedger_UnknownKind(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory())
	err := l.Process(domain.TransactionRecord{Kind: "transfer", Client: 1, Tx: 1})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

type failingHistory struct {
	*memory.DepositHistory
	err error
}

func (h failingHistory) Get(domain.TxID) (domain.TransactionRecord, bool, error) {
	return domain.TransactionRecord{}, false, h.err
}

func (h failingHistory) Put(domain.TransactionRecord) error {
	return h.err
}

func TestLedger_HistoryErrorsAreFatal(t *testing.T) {
	storeErr := errors.New("disk full")
	l := ledger.NewLedger(failingHistory{DepositHistory: memory.NewDepositHistory(), err: storeErr})

	err := l.Process(deposit(t, 1, 1, "1.0"))
	assert.ErrorIs(t, err, storeErr)

	err = l.Process(reference(domain.KindDispute, 1, 1))
	assert.ErrorIs(t, err, storeErr)
}

func TestLedger_SnapshotIsOrderedByClient(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory())
	clients := []domain.ClientID{42, 7, 65535, 0, 300, 8}
	for i, client := range clients {
		processAll(t, l, deposit(t, client, domain.TxID(i+1), "1.0"))
	}

	snapshot := l.Snapshot()
	require.Len(t, snapshot, len(clients))
	for i := 1; i < len(snapshot); i++ {
		assert.Less(t, snapshot[i-1].Client, snapshot[i].Client)
	}
}

func TestLedger_StatsIsACopy(t *testing.T) {
	l := ledger.NewLedger(memory.NewDepositHistory())
	processAll(t, l, withdrawal(t, 1, 1, "1.0"))

	stats := l.Stats()
	stats.Failures[domain.ReasonUnknownAccount] = 100

	assert.Equal(t, 1, l.Stats().Failures[domain.ReasonUnknownAccount])
}
