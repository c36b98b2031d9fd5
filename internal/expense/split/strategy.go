package split

import (
	"errors"
	"fmt"
)

// Type defines the type of split strategy
type Type string

const (
	TypeEqual      Type = "EQUAL"
	TypePercentage Type = "PERCENTAGE"
	TypeCustom     Type = "CUSTOM"
	TypeNone       Type = "NONE"
)

// Input represents a participant entering a split, already resolved against
// the trip roster. Order is significant: the equal strategy gives the
// remainder to the first entry and the percentage strategy lets the last
// entry absorb rounding, so callers must preserve the order the participants
// were supplied in.
type Input struct {
	UserID     string   `json:"user_id"`
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *int64   `json:"amount,omitempty"`     // For CUSTOM split
}

// Share represents the calculated portion for a single participant,
// in minor currency units.
type Share struct {
	UserID string   `json:"user_id"`
	Amount int64    `json:"amount"`
	Type   Type     `json:"type"`
	Value  *float64 `json:"value,omitempty"` // raw strategy parameter (percentage or custom amount)
}

// Strategy is the interface that all split strategies must implement.
// Calculate is total over its input domain: it never panics, and every
// failure is a returned error that aborts the whole split (no partial
// share lists).
type Strategy interface {
	// Calculate computes the share for every participant. The shares sum to
	// totalAmount exactly (except for NONE, which produces no shares).
	Calculate(totalAmount int64, participants []Input) ([]Share, error)

	// Type returns the type identifier for this strategy
	Type() Type

	// Validate checks if the inputs are valid for this strategy
	Validate(totalAmount int64, participants []Input) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType Type) (Strategy, error) {
	switch splitType {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypePercentage:
		return &PercentageStrategy{}, nil
	case TypeCustom:
		return &CustomStrategy{}, nil
	case TypeNone:
		return &NoneStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(Type(splitType))
}

var (
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrInvalidPercentages   = errors.New("percentages must sum to 100")
	ErrMissingPercentage    = errors.New("percentage value required for all participants")
	ErrMissingCustomAmount  = errors.New("custom amount required for all participants")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
)
