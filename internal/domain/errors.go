package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("invalid query")
	ErrUpstream        = errors.New("upstream rate provider failed")
	ErrSourceExhausted = errors.New("rate source exhausted")
	ErrSnapshotMissing = errors.New("rate snapshot not found")
	ErrSnapshotCorrupt = errors.New("rate snapshot corrupt")
	ErrEmptySeries     = errors.New("no rates available")
	ErrMissingCurrency = errors.New("missing currency rate")
)

// SourceExhaustedError is returned once every fetch attempt for a range failed.
type SourceExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *SourceExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts: %v", ErrSourceExhausted, e.Attempts, e.Cause)
}

func (e *SourceExhaustedError) Unwrap() error { return e.Cause }

func (e *SourceExhaustedError) Is(target error) bool { return target == ErrSourceExhausted }

// MissingCurrencyError names the first date lacking the target currency.
type MissingCurrencyError struct {
	Date     string
	Currency string
}

func (e *MissingCurrencyError) Error() string {
	return fmt.Sprintf("missing %s rate for %s", e.Currency, e.Date)
}

func (e *MissingCurrencyError) Is(target error) bool { return target == ErrMissingCurrency }
