package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Expense struct {
	ID string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`

	MemberID    string  `gorm:"type:uuid"`
	Category    string  `gorm:"size:50;not null"`
	Description string  `gorm:"size:255"`
	Amount      float64 `gorm:"type:decimal(10,2);not null"`
	Date        time.Time
	RecordedBy  *string `gorm:"type:uuid"`
	IsPaid      bool

	CreatedAt time.Time
}

func (e *Expense) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

type ExpenseDAO struct {
	db *gorm.DB
}

func NewExpenseDAO(db *gorm.DB) *ExpenseDAO {
	return &ExpenseDAO{
		db: db,
	}
}

// ListSince returns the expenses dated on or after since, newest first. The
// zero time means no lower bound.
func (d *ExpenseDAO) ListSince(ctx context.Context, since time.Time) ([]Expense, error) {
	var expenses []Expense

	query := d.db.WithContext(ctx).Order("date DESC")
	if !since.IsZero() {
		query = query.Where("date >= ?", since)
	}

	result := query.Find(&expenses)
	if result.Error != nil {
		return nil, result.Error
	}

	return expenses, nil
}

func (d *ExpenseDAO) Insert(ctx context.Context, expense Expense) (Expense, error) {
	result := d.db.WithContext(ctx).Create(&expense)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return Expense{}, ErrMemberNotFound
		}

		return Expense{}, result.Error
	}

	return expense, nil
}
