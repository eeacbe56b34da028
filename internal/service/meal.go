package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/repository"
)

var (
	ErrMealNotFound      = repository.ErrMealNotFound
	ErrMealCanceled      = errors.New("meal is canceled")
	ErrInvalidMealStatus = errors.New("unknown meal status")
	ErrInvalidMealTag    = errors.New("unknown meal tag")
)

type MealRepository interface {
	FindWeek(ctx context.Context, year, week int) ([]domain.Meal, error)
	Upsert(ctx context.Context, meal domain.Meal) (domain.Meal, error)
	UpsertSignup(ctx context.Context, year, week, dayIndex int, memberID string, tags []domain.MealTag, amount float64) (domain.MealSignup, error)
}

type MealService struct {
	repo MealRepository
}

func NewMealService(repo MealRepository) *MealService {
	return &MealService{
		repo: repo,
	}
}

func (s *MealService) WeekMeals(ctx context.Context, year, week int) ([]domain.Meal, error) {
	meals, err := s.repo.FindWeek(ctx, year, week)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindWeek -> %w", err)
	}

	return meals, nil
}

func (s *MealService) UpsertMeal(ctx context.Context, meal domain.Meal) (domain.Meal, error) {
	if meal.Status != "" && !meal.Status.Valid() {
		return domain.Meal{}, ErrInvalidMealStatus
	}

	saved, err := s.repo.Upsert(ctx, meal)
	if err != nil {
		return domain.Meal{}, fmt.Errorf("s.repo.Upsert -> %w", err)
	}

	return saved, nil
}

// Signup writes a member's tag set for one day. The amount is computed here
// from the fixed tag prices, never trusted from the client, and signups on a
// canceled day are refused.
func (s *MealService) Signup(ctx context.Context, year, week, dayIndex int, memberID string, tags []domain.MealTag) (domain.MealSignup, error) {
	for _, t := range tags {
		if !t.Valid() {
			return domain.MealSignup{}, ErrInvalidMealTag
		}
	}

	meals, err := s.repo.FindWeek(ctx, year, week)
	if err != nil {
		return domain.MealSignup{}, fmt.Errorf("s.repo.FindWeek -> %w", err)
	}
	for _, m := range meals {
		if m.DayIndex == dayIndex && m.Status.Canceled() {
			return domain.MealSignup{}, ErrMealCanceled
		}
	}

	saved, err := s.repo.UpsertSignup(ctx, year, week, dayIndex, memberID, tags, domain.SignupAmount(tags))
	if err != nil {
		return domain.MealSignup{}, fmt.Errorf("s.repo.UpsertSignup -> %w", err)
	}

	return saved, nil
}
