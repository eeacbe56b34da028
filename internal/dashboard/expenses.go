package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

// ExpenseRow is one member's aggregated expenses for the report period.
type ExpenseRow struct {
	Member domain.Member
	Meals  float64
	Drinks float64
	Other  float64
}

func (r ExpenseRow) Total() float64 {
	return r.Meals + r.Drinks + r.Other
}

// ExpenseReport is the treasury view: one row per member with anything
// outstanding, plus the grand total across everyone.
type ExpenseReport struct {
	Rows       []ExpenseRow
	GrandTotal float64
}

// Aggregate groups expenses per member and category. Members whose total is
// zero are left out; expenses of unknown members are skipped rather than
// failing the report. Rows come back sorted by display name.
func Aggregate(expenses []domain.Expense, members []domain.Member) ExpenseReport {
	byID := make(map[string]domain.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	rows := make(map[string]*ExpenseRow)
	for _, e := range expenses {
		member, ok := byID[e.MemberID]
		if !ok {
			continue
		}
		row, ok := rows[e.MemberID]
		if !ok {
			row = &ExpenseRow{Member: member}
			rows[e.MemberID] = row
		}
		switch e.Category {
		case domain.ExpenseMeals:
			row.Meals += e.Amount
		case domain.ExpenseDrinks:
			row.Drinks += e.Amount
		default:
			row.Other += e.Amount
		}
	}

	var report ExpenseReport
	for _, row := range rows {
		if row.Total() == 0 {
			continue
		}
		report.Rows = append(report.Rows, *row)
		report.GrandTotal += row.Total()
	}
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return strings.ToLower(report.Rows[i].Member.DisplayName()) <
			strings.ToLower(report.Rows[j].Member.DisplayName())
	})
	return report
}

// LoadExpenses builds the expense report of the trailing weeks period. The
// view is reserved to the treasury role.
func (d *Dashboard) LoadExpenses(ctx context.Context, weeks int) (ExpenseReport, error) {
	if !d.IsAktivenkasse() {
		return ExpenseReport{}, ErrPermissionDenied
	}
	var startDate string
	if weeks > 0 {
		startDate = time.Now().AddDate(0, 0, -7*weeks).Format(domain.DateLayout)
	}
	expenses, err := d.backend.ListExpenses(ctx, startDate)
	if err != nil {
		return ExpenseReport{}, err
	}
	return Aggregate(expenses, d.members), nil
}
