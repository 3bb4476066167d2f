package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"mini-ledger/internal/config"
	"mini-ledger/internal/gateway"
	"mini-ledger/internal/ledger"
	"mini-ledger/internal/logger"
	"mini-ledger/internal/storage/bolt"
	"mini-ledger/internal/storage/memory"
	"mini-ledger/internal/usecase"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("ledger", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	showVersion := flags.BoolP("version", "v", false, "print the version and exit")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: ledger [flags] <transactions.csv>")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Applies the transactions in the file and prints the final account table to stdout.")
		fmt.Fprintln(stderr)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Fprintln(stdout, version)
		return nil
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("expected exactly one input file, got %d", flags.NArg())
	}
	inputPath := flags.Arg(0)

	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("run_id", uuid.NewString()))

	// --- Dependency Injection (Wiring the application) ---

	// 1. Deposit history, the only state that grows with the input
	history, cleanup, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// 2. The ledger and its failure handling
	policy, err := ledger.NewFailurePolicy(cfg.FailurePolicy, log)
	if err != nil {
		return err
	}
	accounts := ledger.NewLedger(history,
		ledger.WithFailurePolicy(policy),
		ledger.WithStrictClientMatch(cfg.StrictClientMatch),
		ledger.WithLockedAccountBlocking(cfg.BlockLockedAccounts),
	)

	// 3. The usecase, fed by the CSV gateway on both ends
	processing := usecase.NewProcessingUseCase(
		gateway.NewCSVTransactionRepository(),
		accounts,
		gateway.NewCSVSnapshotWriter(stdout),
	)

	log.Debug("processing started",
		zap.String("input", inputPath),
		zap.String("failure_policy", cfg.FailurePolicy),
		zap.String("history_backend", cfg.HistoryBackend),
	)

	// --- Execute the Usecase ---
	stats, err := processing.Process(context.Background(), inputPath)
	if err != nil {
		return err
	}

	fields := []zap.Field{
		zap.Int("processed", stats.Processed),
		zap.Int("applied", stats.Applied),
		zap.Int("rejected", stats.FailureCount()),
		zap.Int("open_disputes", accounts.OpenDisputes()),
	}
	if size, err := history.Len(); err != nil {
		log.Warn("could not read deposit history size", zap.Error(err))
	} else {
		fields = append(fields, zap.Int("history_size", size))
	}
	log.Info("processing finished", fields...)
	return nil
}

// openHistory creates the configured deposit history. The returned cleanup
// closes it and, for bolt, removes the database so nothing outlives the run.
func openHistory(cfg *config.Config) (ledger.DepositHistory, func(), error) {
	if cfg.HistoryBackend != config.BackendBolt {
		history := memory.NewDepositHistory()
		return history, func() { _ = history.Close() }, nil
	}

	dir, err := os.MkdirTemp(cfg.HistoryDir, "ledger-history-*")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	history, err := bolt.Open(filepath.Join(dir, "deposits.db"))
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, nil, err
	}
	return history, func() {
		_ = history.Close()
		_ = os.RemoveAll(dir)
	}, nil
}
