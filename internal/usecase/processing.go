package usecase

import (
	"context"
	"fmt"

	"mini-ledger/internal/domain"
)

// ProcessingUseCase orchestrates a single run over a transaction file.
type ProcessingUseCase struct {
	source    TransactionSource
	processor TransactionProcessor
	writer    SnapshotWriter
}

// NewProcessingUseCase creates a new instance of the usecase.
func NewProcessingUseCase(source TransactionSource, processor TransactionProcessor, writer SnapshotWriter) *ProcessingUseCase {
	return &ProcessingUseCase{
		source:    source,
		processor: processor,
		writer:    writer,
	}
}

// Process streams every record in path through the processor and writes the
// resulting account snapshot. The snapshot is not written if ingestion fails.
func (uc *ProcessingUseCase) Process(ctx context.Context, path string) (*domain.Stats, error) {
	// Step 1: Ingestion
	err := uc.source.ReadTransactions(ctx, path, func(record domain.TransactionRecord) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return uc.processor.Process(record)
	})
	if err != nil {
		return nil, fmt.Errorf("could not process transactions: %w", err)
	}

	// Step 2: Output
	if err := uc.writer.WriteSnapshot(ctx, uc.processor.Snapshot()); err != nil {
		return nil, fmt.Errorf("could not write account snapshot: %w", err)
	}

	stats := uc.processor.Stats()
	return &stats, nil
}
