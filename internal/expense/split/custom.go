package split

import "fmt"

// =============================================================================
// CUSTOM SPLIT STRATEGY
// Each participant owes a specific fixed amount (must sum to total)
// =============================================================================

// CustomStrategy implements the Strategy interface for fixed-amount splits
type CustomStrategy struct{}

// Type returns the split type identifier
func (s *CustomStrategy) Type() Type {
	return TypeCustom
}

// Validate checks if the inputs are valid for a custom split.
// A sum mismatch is a hard validation error, never silently corrected; the
// message is shown to the end user verbatim.
func (s *CustomStrategy) Validate(totalAmount int64, participants []Input) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount < 0 {
		return ErrNegativeAmount
	}

	var sum int64
	for _, p := range participants {
		if p.Amount == nil {
			return ErrMissingCustomAmount
		}
		if *p.Amount < 0 {
			return ErrNegativeAmount
		}
		sum += *p.Amount
	}

	if sum != totalAmount {
		return fmt.Errorf("Participant shares (%d) do not sum to expense total (%d)", sum, totalAmount)
	}

	return nil
}

// Calculate returns the amounts exactly as specified for each participant
func (s *CustomStrategy) Calculate(totalAmount int64, participants []Input) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		value := float64(*p.Amount)
		shares[i] = Share{
			UserID: p.UserID,
			Amount: *p.Amount,
			Type:   TypeCustom,
			Value:  &value,
		}
	}

	return shares, nil
}
