package dashboard

import (
	"context"
	"time"

	"github.com/kbteutonia/mitgliederbereich/internal/client"
	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

// MealDay is one weekday of the meal plan, always present even when no meal
// row exists yet for that day.
type MealDay struct {
	Date time.Time
	Meal domain.Meal
}

// Week returns the meal plan cursor.
func (d *Dashboard) Week() (year, week int) {
	return d.year, d.week
}

// NextWeek advances the meal plan cursor by one week.
func (d *Dashboard) NextWeek() {
	d.year, d.week = domain.NextWeek(d.year, d.week)
}

// PrevWeek moves the meal plan cursor back by one week.
func (d *Dashboard) PrevWeek() {
	d.year, d.week = domain.PrevWeek(d.year, d.week)
}

// ResetWeek points the cursor back at the current ISO week.
func (d *Dashboard) ResetWeek(now time.Time) {
	d.year, d.week = domain.ISOWeek(now)
}

// WeekPlan fetches the meal plan of the cursor week, normalized to exactly
// five days Monday through Friday. Days without a stored meal row get an
// empty meal carrying the week key.
func (d *Dashboard) WeekPlan(ctx context.Context) ([5]MealDay, error) {
	var plan [5]MealDay

	meals, err := d.backend.MealsForWeek(ctx, d.year, d.week)
	if err != nil {
		return plan, err
	}
	byDay := make(map[int]domain.Meal, len(meals))
	for _, m := range meals {
		byDay[m.DayIndex] = m
	}

	dates := domain.WeekDates(d.year, d.week)
	for i := range plan {
		meal, ok := byDay[i]
		if !ok {
			meal = domain.Meal{Year: d.year, Week: d.week, DayIndex: i}
		}
		plan[i] = MealDay{Date: dates[i], Meal: meal}
	}
	return plan, nil
}

// ToggleTag flips one participation tag on the active user's signup for a
// weekday and persists the resulting tag set with its recomputed amount in a
// single write. Tag dependencies hold afterwards: enabling gast or reste
// drags aktiv in, disabling aktiv clears everything.
func (d *Dashboard) ToggleTag(ctx context.Context, dayIndex int, tag domain.MealTag, enabled bool) error {
	user := d.ActiveUser()
	if user == nil {
		return ErrNotLoggedIn
	}
	if dayIndex < 0 || dayIndex > 4 || !tag.Valid() {
		return ErrValidation
	}

	// Re-fetch rather than trusting a stale plan: the day may have been
	// canceled since it was last rendered.
	meals, err := d.backend.MealsForWeek(ctx, d.year, d.week)
	if err != nil {
		return err
	}
	var current domain.MealSignup
	for _, m := range meals {
		if m.DayIndex != dayIndex {
			continue
		}
		if m.Status.Canceled() {
			return ErrMealCanceled
		}
		current, _ = m.SignupFor(user.ID)
		break
	}

	tags := applyTagToggle(current.Tags, tag, enabled)
	_, err = d.backend.UpsertMealSignup(ctx, client.MealSignupUpsert{
		Year:     d.year,
		Week:     d.week,
		DayIndex: dayIndex,
		MemberID: user.ID,
		Tags:     tags,
		Amount:   domain.SignupAmount(tags),
	})
	return err
}

// applyTagToggle computes the new tag set after flipping one tag, enforcing
// that gast and reste only exist alongside aktiv.
func applyTagToggle(tags []domain.MealTag, tag domain.MealTag, enabled bool) []domain.MealTag {
	set := make(map[domain.MealTag]bool, 3)
	for _, t := range tags {
		set[t] = true
	}

	if enabled {
		set[tag] = true
		if tag == domain.TagGast || tag == domain.TagReste {
			set[domain.TagAktiv] = true
		}
	} else {
		delete(set, tag)
		if tag == domain.TagAktiv {
			delete(set, domain.TagGast)
			delete(set, domain.TagReste)
		}
	}

	var out []domain.MealTag
	for _, t := range []domain.MealTag{domain.TagAktiv, domain.TagGast, domain.TagReste} {
		if set[t] {
			out = append(out, t)
		}
	}
	return out
}

// SetMenu writes the menu of one weekday. Editing the plan is reserved to
// the Koch role. The signup state of the day is untouched.
func (d *Dashboard) SetMenu(ctx context.Context, dayIndex int, vorspeise, hauptgericht, nachspeise, kochteam string) error {
	if !d.IsKoch() {
		return ErrPermissionDenied
	}
	if dayIndex < 0 || dayIndex > 4 {
		return ErrValidation
	}

	meal, err := d.mealForDay(ctx, dayIndex)
	if err != nil {
		return err
	}
	meal.Vorspeise = vorspeise
	meal.Hauptgericht = hauptgericht
	meal.Nachspeise = nachspeise
	meal.Kochteam = kochteam

	_, err = d.backend.UpsertMeal(ctx, meal)
	return err
}

// SetStatus marks a weekday active, canceled, sick or vacation, preserving
// the stored menu.
func (d *Dashboard) SetStatus(ctx context.Context, dayIndex int, status domain.MealStatus) error {
	if !d.IsKoch() {
		return ErrPermissionDenied
	}
	if dayIndex < 0 || dayIndex > 4 {
		return ErrValidation
	}
	if !status.Valid() {
		return ErrBadMealStatus
	}

	meal, err := d.mealForDay(ctx, dayIndex)
	if err != nil {
		return err
	}
	meal.Status = status

	_, err = d.backend.UpsertMeal(ctx, meal)
	return err
}

// mealForDay fetches the stored meal of one cursor-week day, or an empty
// meal carrying the week key when none exists.
func (d *Dashboard) mealForDay(ctx context.Context, dayIndex int) (domain.Meal, error) {
	meals, err := d.backend.MealsForWeek(ctx, d.year, d.week)
	if err != nil {
		return domain.Meal{}, err
	}
	for _, m := range meals {
		if m.DayIndex == dayIndex {
			m.Signups = nil
			return m, nil
		}
	}
	return domain.Meal{Year: d.year, Week: d.week, DayIndex: dayIndex}, nil
}
