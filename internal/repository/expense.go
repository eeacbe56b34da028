package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/repository/dao"
)

type ExpenseDAO interface {
	ListSince(ctx context.Context, since time.Time) ([]dao.Expense, error)
	Insert(ctx context.Context, expense dao.Expense) (dao.Expense, error)
}

type ExpenseRepository struct {
	dao ExpenseDAO
}

func NewExpenseRepository(dao ExpenseDAO) *ExpenseRepository {
	return &ExpenseRepository{
		dao: dao,
	}
}

func (r *ExpenseRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Expense, error) {
	found, err := r.dao.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListSince -> %w", err)
	}

	expenses := make([]domain.Expense, len(found))
	for i, e := range found {
		expenses[i] = r.daoToDomain(e)
	}

	return expenses, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	daoExpense := dao.Expense{
		MemberID:    expense.MemberID,
		Category:    string(expense.Category),
		Description: expense.Description,
		Amount:      expense.Amount,
		IsPaid:      expense.IsPaid,
	}
	if expense.Date != "" {
		date, err := time.Parse(domain.DateLayout, expense.Date)
		if err != nil {
			return domain.Expense{}, fmt.Errorf("parse expense date -> %w", err)
		}
		daoExpense.Date = date
	}
	if expense.RecordedBy != "" {
		recordedBy := expense.RecordedBy
		daoExpense.RecordedBy = &recordedBy
	}

	created, err := r.dao.Insert(ctx, daoExpense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ExpenseRepository) daoToDomain(e dao.Expense) domain.Expense {
	expense := domain.Expense{
		ID:          e.ID,
		MemberID:    e.MemberID,
		Category:    domain.ExpenseCategory(e.Category),
		Description: e.Description,
		Amount:      e.Amount,
		IsPaid:      e.IsPaid,
		CreatedAt:   e.CreatedAt,
	}
	if !e.Date.IsZero() {
		expense.Date = e.Date.Format(domain.DateLayout)
	}
	if e.RecordedBy != nil {
		expense.RecordedBy = *e.RecordedBy
	}

	return expense
}
