package usecase

import (
	"context"

	"mini-ledger/internal/domain"
)

// TransactionSource streams transaction records in their original order.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go
type TransactionSource interface {
	ReadTransactions(ctx context.Context, path string, handle func(domain.TransactionRecord) error) error
}

// TransactionProcessor applies records to account state.
type TransactionProcessor interface {
	Process(record domain.TransactionRecord) error
	Snapshot() domain.Snapshot
	Stats() domain.Stats
}

// SnapshotWriter renders the final account table.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, snapshot domain.Snapshot) error
}
