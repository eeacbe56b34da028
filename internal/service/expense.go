package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

var ErrInvalidExpenseCategory = errors.New("unknown expense category")

type ExpenseRepository interface {
	ListSince(ctx context.Context, since time.Time) ([]domain.Expense, error)
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)
}

type ExpenseService struct {
	repo ExpenseRepository
}

func NewExpenseService(repo ExpenseRepository) *ExpenseService {
	return &ExpenseService{
		repo: repo,
	}
}

// ListExpenses returns the expenses dated on or after startDate (ISO date,
// empty for all).
func (s *ExpenseService) ListExpenses(ctx context.Context, startDate string) ([]domain.Expense, error) {
	var since time.Time
	if startDate != "" {
		parsed, err := time.Parse(domain.DateLayout, startDate)
		if err != nil {
			return nil, fmt.Errorf("parse start date -> %w", err)
		}
		since = parsed
	}

	expenses, err := s.repo.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListSince -> %w", err)
	}

	return expenses, nil
}

func (s *ExpenseService) CreateExpense(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if !expense.Category.Valid() {
		return domain.Expense{}, ErrInvalidExpenseCategory
	}

	created, err := s.repo.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}
