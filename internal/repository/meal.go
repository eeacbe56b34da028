package repository

import (
	"context"
	"fmt"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/repository/dao"
)

var ErrMealNotFound = dao.ErrMealNotFound

type MealDAO interface {
	FindWeek(ctx context.Context, year, week int) ([]dao.Meal, error)
	Upsert(ctx context.Context, meal dao.Meal) (dao.Meal, error)
	FindOrCreate(ctx context.Context, year, week, dayIndex int) (dao.Meal, error)
	UpsertSignup(ctx context.Context, signup dao.MealSignup) (dao.MealSignup, error)
}

type MealRepository struct {
	dao MealDAO
}

func NewMealRepository(dao MealDAO) *MealRepository {
	return &MealRepository{
		dao: dao,
	}
}

func (r *MealRepository) FindWeek(ctx context.Context, year, week int) ([]domain.Meal, error) {
	found, err := r.dao.FindWeek(ctx, year, week)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindWeek -> %w", err)
	}

	meals := make([]domain.Meal, len(found))
	for i, m := range found {
		meals[i] = r.daoToDomain(m)
	}

	return meals, nil
}

func (r *MealRepository) Upsert(ctx context.Context, meal domain.Meal) (domain.Meal, error) {
	saved, err := r.dao.Upsert(ctx, dao.Meal{
		ID:           meal.ID,
		Year:         meal.Year,
		Week:         meal.Week,
		DayIndex:     meal.DayIndex,
		Vorspeise:    meal.Vorspeise,
		Hauptgericht: meal.Hauptgericht,
		Nachspeise:   meal.Nachspeise,
		Kochteam:     meal.Kochteam,
		Status:       string(meal.Status),
	})
	if err != nil {
		return domain.Meal{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return r.daoToDomain(saved), nil
}

// UpsertSignup writes a member's signup, creating the day's meal row first
// when it does not exist yet.
func (r *MealRepository) UpsertSignup(ctx context.Context, year, week, dayIndex int, memberID string, tags []domain.MealTag, amount float64) (domain.MealSignup, error) {
	meal, err := r.dao.FindOrCreate(ctx, year, week, dayIndex)
	if err != nil {
		return domain.MealSignup{}, fmt.Errorf("r.dao.FindOrCreate -> %w", err)
	}

	types := make(dao.TagList, len(tags))
	for i, t := range tags {
		types[i] = string(t)
	}

	saved, err := r.dao.UpsertSignup(ctx, dao.MealSignup{
		MealID:   meal.ID,
		MemberID: memberID,
		Types:    types,
		Amount:   amount,
	})
	if err != nil {
		return domain.MealSignup{}, fmt.Errorf("r.dao.UpsertSignup -> %w", err)
	}

	return r.signupDAOToDomain(saved), nil
}

func (r *MealRepository) daoToDomain(m dao.Meal) domain.Meal {
	meal := domain.Meal{
		ID:           m.ID,
		Year:         m.Year,
		Week:         m.Week,
		DayIndex:     m.DayIndex,
		Vorspeise:    m.Vorspeise,
		Hauptgericht: m.Hauptgericht,
		Nachspeise:   m.Nachspeise,
		Kochteam:     m.Kochteam,
		Status:       domain.MealStatus(m.Status),
	}
	if len(m.Signups) > 0 {
		meal.Signups = make([]domain.MealSignup, len(m.Signups))
		for i, s := range m.Signups {
			meal.Signups[i] = r.signupDAOToDomain(s)
		}
	}

	return meal
}

func (r *MealRepository) signupDAOToDomain(s dao.MealSignup) domain.MealSignup {
	signup := domain.MealSignup{
		ID:       s.ID,
		MealID:   s.MealID,
		MemberID: s.MemberID,
		Amount:   s.Amount,
	}
	if len(s.Types) > 0 {
		signup.Tags = make([]domain.MealTag, len(s.Types))
		for i, t := range s.Types {
			signup.Tags[i] = domain.MealTag(t)
		}
	}

	return signup
}
