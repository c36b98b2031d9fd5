package split

import "math"

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense based on specified percentages for each participant
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() Type {
	return TypePercentage
}

// Validate checks if the inputs are valid for a percentage split
func (s *PercentageStrategy) Validate(totalAmount int64, participants []Input) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount < 0 {
		return ErrNegativeAmount
	}

	// Check that all participants have percentages and they sum to 100
	var totalPercentage float64
	for _, p := range participants {
		if p.Percentage == nil {
			return ErrMissingPercentage
		}
		if *p.Percentage < 0 || *p.Percentage > 100 {
			return ErrPercentageOutOfRange
		}
		totalPercentage += *p.Percentage
	}

	// Allow for small floating point errors (99.99 to 100.01)
	if math.Abs(totalPercentage-100) > 0.01 {
		return ErrInvalidPercentages
	}

	return nil
}

// Calculate assigns floor(total * percentage / 100) to every participant
// except the last one, which receives whatever is left. List order decides
// who absorbs the rounding error, not percentage magnitude.
func (s *PercentageStrategy) Calculate(totalAmount int64, participants []Input) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	var assigned int64

	for i, p := range participants {
		var amount int64
		if i == len(participants)-1 {
			amount = totalAmount - assigned
		} else {
			amount = int64(math.Floor(float64(totalAmount) * *p.Percentage / 100))
			assigned += amount
		}
		shares[i] = Share{
			UserID: p.UserID,
			Amount: amount,
			Type:   TypePercentage,
			Value:  p.Percentage,
		}
	}

	return shares, nil
}
