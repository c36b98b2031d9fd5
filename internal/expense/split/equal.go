package split

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(totalAmount int64, participants []Input) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Calculate divides the total amount evenly among all participants using
// integer floor division. The remainder goes entirely to the FIRST
// participant in the given order. Existing share records were written with
// this placement, so it must not change to round-robin distribution.
func (s *EqualStrategy) Calculate(totalAmount int64, participants []Input) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	count := int64(len(participants))
	base := totalAmount / count
	remainder := totalAmount - base*count

	shares := make([]Share, len(participants))
	for i, p := range participants {
		amount := base
		if i == 0 {
			amount += remainder
		}
		shares[i] = Share{
			UserID: p.UserID,
			Amount: amount,
			Type:   TypeEqual,
		}
	}

	return shares, nil
}
