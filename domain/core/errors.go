package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Join and lookup errors
	ErrMissingJoinKey = errors.New("missing join key")

	// Fit errors
	ErrInsufficientData = errors.New("insufficient data for fit")
	ErrSingularFit      = errors.New("singular design matrix")

	// Labeling errors
	ErrAmbiguousLabel = errors.New("ambiguous population complex label")

	// Structural input errors - these are fatal, data-quality issues are not
	ErrMalformedInput  = errors.New("malformed input")
	ErrColumnMissing   = fmt.Errorf("%w: required column absent", ErrMalformedInput)
	ErrColumnLength    = errors.New("column length mismatch")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrDuplicateYear   = errors.New("duplicate year in series")
	ErrNegativeLag     = errors.New("lag must be non-negative")
	ErrNotNested       = errors.New("models are not nested")
)

// Error constructors with context

func NewMissingJoinKeyError(kind, key string) error {
	return fmt.Errorf("%w: no %s for %q", ErrMissingJoinKey, kind, key)
}

func NewInsufficientDataError(need, got int) error {
	return fmt.Errorf("%w: need at least %d observations, got %d", ErrInsufficientData, need, got)
}

func NewAmbiguousLabelError(population, kept, seen string) error {
	return fmt.Errorf("%w: %q labeled both %q and %q, keeping first-seen %q",
		ErrAmbiguousLabel, population, kept, seen, kept)
}

func NewColumnMissingError(column, source string) error {
	return fmt.Errorf("%w: %q in %s", ErrColumnMissing, column, source)
}

// Error checking helpers

func IsMissingJoinKey(err error) bool {
	return errors.Is(err, ErrMissingJoinKey)
}

func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsStructuralError(err error) bool {
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrColumnLength) ||
		errors.Is(err, ErrDuplicateColumn) ||
		errors.Is(err, ErrDuplicateYear)
}
