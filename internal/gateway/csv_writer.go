package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"mini-ledger/internal/domain"
)

var snapshotHeader = []string{"client", "available", "held", "total", "locked"}

// CSVSnapshotWriter renders account snapshots as CSV.
type CSVSnapshotWriter struct {
	out io.Writer
}

// NewCSVSnapshotWriter creates a writer that emits to out.
func NewCSVSnapshotWriter(out io.Writer) *CSVSnapshotWriter {
	return &CSVSnapshotWriter{out: out}
}

// WriteSnapshot writes the header followed by one row per account, in the
// order given.
func (w *CSVSnapshotWriter) WriteSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	writer := csv.NewWriter(w.out)

	if err := writer.Write(snapshotHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, account := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}

		row := []string{
			strconv.FormatUint(uint64(account.Client), 10),
			account.Available.String(),
			account.Held.String(),
			account.Total.String(),
			strconv.FormatBool(account.Locked),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write account %d: %w", account.Client, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return nil
}
