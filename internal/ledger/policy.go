package ledger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mini-ledger/internal/domain"
)

const (
	PolicyIgnore = "ignore"
	PolicyLog    = "log"
	PolicyReject = "reject"
)

// NewFailurePolicy returns the policy registered under name.
func NewFailurePolicy(name string, logger *zap.Logger) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyIgnore, "":
		return IgnorePolicy{}, nil
	case PolicyLog:
		return NewLogPolicy(logger), nil
	case PolicyReject:
		return RejectPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown failure policy %q (want %s, %s or %s)", name, PolicyIgnore, PolicyLog, PolicyReject)
	}
}

// IgnorePolicy drops failed records silently.
type IgnorePolicy struct{}

// HandleFailure implements FailurePolicy.
func (IgnorePolicy) HandleFailure(*domain.Failure) error {
	return nil
}

// LogPolicy reports failed records at warn level and keeps going.
type LogPolicy struct {
	logger *zap.Logger
}

// NewLogPolicy creates a LogPolicy. A nil logger discards output.
func NewLogPolicy(logger *zap.Logger) *LogPolicy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPolicy{logger: logger}
}

// HandleFailure implements FailurePolicy.
func (p *LogPolicy) HandleFailure(failure *domain.Failure) error {
	fields := []zap.Field{
		zap.String("kind", string(failure.Record.Kind)),
		zap.Uint16("client", uint16(failure.Record.Client)),
		zap.Uint32("tx", uint32(failure.Record.Tx)),
		zap.String("reason", string(failure.Reason)),
	}
	if failure.Record.HasAmount {
		fields = append(fields, zap.Stringer("amount", failure.Record.Amount))
	}
	if failure.Err != nil {
		fields = append(fields, zap.Error(failure.Err))
	}

	p.logger.Warn("transaction rejected", fields...)
	return nil
}

// RejectPolicy turns every failed record into a fatal error.
type RejectPolicy struct{}

// HandleFailure implements FailurePolicy.
func (RejectPolicy) HandleFailure(failure *domain.Failure) error {
	return failure
}
