package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	RunID         ID
	PopulationKey ID
	CovariateKey  ID
)

// String conversions for domain IDs
func (id RunID) String() string         { return ID(id).String() }
func (id PopulationKey) String() string { return ID(id).String() }
func (id CovariateKey) String() string  { return ID(id).String() }

// NewRunID creates a fresh identifier for one pipeline run
func NewRunID() RunID {
	return RunID(NewID())
}

// ParsePopulationKey parses a string into PopulationKey
func ParsePopulationKey(s string) (PopulationKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("population key cannot be empty")
	}
	return PopulationKey(s), nil
}

// ParseCovariateKey parses a string into CovariateKey
func ParseCovariateKey(s string) (CovariateKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("covariate key cannot be empty")
	}
	return CovariateKey(s), nil
}
