package expense

// ParticipantInput identifies one participant entering a split. Name may be a
// roster display name (matched case-insensitively) or a user UUID.
type ParticipantInput struct {
	Name       string   `json:"name" validate:"required"`
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *int64   `json:"amount,omitempty"`     // For CUSTOM split
}

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	TripID       string              `json:"trip_id" validate:"required,uuid"`
	Description  string              `json:"description" validate:"required,min=1,max=255"`
	Amount       int64               `json:"amount" validate:"required,gt=0"`
	Currency     string              `json:"currency" validate:"required,len=3,uppercase"`
	Payer        string              `json:"payer" validate:"required"`
	SplitType    string              `json:"split_type" validate:"required,oneof=EQUAL PERCENTAGE CUSTOM NONE"`
	Participants []*ParticipantInput `json:"participants" validate:"omitempty,dive"`
	ExpenseDate  string              `json:"expense_date,omitempty"` // YYYY-MM-DD, defaults to today
}

// UpdateExpenseRequest represents the request to edit an expense.
// Editing re-runs the split calculation: the participant list and split type
// must be supplied in full, exactly as on creation.
type UpdateExpenseRequest struct {
	Description  string              `json:"description" validate:"required,min=1,max=255"`
	Amount       int64               `json:"amount" validate:"required,gt=0"`
	Currency     string              `json:"currency" validate:"required,len=3,uppercase"`
	Payer        string              `json:"payer" validate:"required"`
	SplitType    string              `json:"split_type" validate:"required,oneof=EQUAL PERCENTAGE CUSTOM NONE"`
	Participants []*ParticipantInput `json:"participants" validate:"omitempty,dive"`
	ExpenseDate  string              `json:"expense_date,omitempty"`
}

// ShareResponse represents the response for a participant share
type ShareResponse struct {
	UserID      string   `json:"user_id"`
	UserName    string   `json:"user_name,omitempty"`
	ShareAmount int64    `json:"share_amount"`
	ShareType   string   `json:"share_type"`
	ShareValue  *float64 `json:"share_value,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          string           `json:"id"`
	TripID      string           `json:"trip_id"`
	PayerID     string           `json:"payer_id"`
	PayerName   string           `json:"payer_name,omitempty"`
	Description string           `json:"description"`
	Amount      int64            `json:"amount"`
	Currency    string           `json:"currency"`
	FxRate      *float64         `json:"fx_rate,omitempty"`
	SplitType   string           `json:"split_type"`
	ExpenseDate string           `json:"expense_date"`
	CreatedAt   string           `json:"created_at"`
	Shares      []*ShareResponse `json:"shares,omitempty"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:          e.ID,
		TripID:      e.TripID,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		FxRate:      e.FxRate,
		SplitType:   string(e.SplitType),
		ExpenseDate: e.ExpenseDate.Format("2006-01-02"),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if len(e.Shares) > 0 {
		resp.Shares = make([]*ShareResponse, len(e.Shares))
		for i := range e.Shares {
			s := &e.Shares[i]
			resp.Shares[i] = &ShareResponse{
				UserID:      s.UserID,
				UserName:    s.UserName,
				ShareAmount: s.ShareAmount,
				ShareType:   string(s.ShareType),
				ShareValue:  s.ShareValue,
			}
		}
	}
	return resp
}
