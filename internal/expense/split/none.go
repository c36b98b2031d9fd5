package split

// =============================================================================
// NONE SPLIT STRATEGY
// A personal, unsplit expense: no participant shares are generated
// =============================================================================

// NoneStrategy implements the Strategy interface for unsplit expenses
type NoneStrategy struct{}

// Type returns the split type identifier
func (s *NoneStrategy) Type() Type {
	return TypeNone
}

// Validate accepts any input; participants are simply ignored
func (s *NoneStrategy) Validate(totalAmount int64, participants []Input) error {
	if totalAmount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Calculate produces no shares
func (s *NoneStrategy) Calculate(totalAmount int64, participants []Input) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}
	return []Share{}, nil
}
