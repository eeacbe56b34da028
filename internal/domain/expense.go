package domain

import "time"

// ExpenseCategory groups a member's house expenses for the treasury view.
type ExpenseCategory string

const (
	ExpenseMeals  ExpenseCategory = "meals"
	ExpenseDrinks ExpenseCategory = "drinks"
	ExpenseOther  ExpenseCategory = "other"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseMeals, ExpenseDrinks, ExpenseOther:
		return true
	}
	return false
}

type Expense struct {
	ID          string          `json:"id,omitempty"`
	MemberID    string          `json:"member_id"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description,omitempty"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date,omitempty"`
	RecordedBy  string          `json:"recorded_by,omitempty"`
	IsPaid      bool            `json:"is_paid,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
}
