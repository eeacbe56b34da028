package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateExpenseRequest struct {
	MemberID    string  `json:"member_id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	RecordedBy  string  `json:"recorded_by"`
}

func (req *CreateExpenseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MemberID, validation.Required, is.UUID),
		validation.Field(&req.Category, validation.Required, validation.In("meals", "drinks", "other")),
		validation.Field(&req.Amount, validation.Required),
		validation.Field(&req.Date, validation.Match(dateExp)),
		validation.Field(&req.RecordedBy, is.UUID),
	)
}
