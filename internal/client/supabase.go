package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

// SupabaseBackend talks to a Supabase-style table endpoint: one generic
// query path per table with `column=operator.value` filters, the project
// key in the apikey/Authorization headers, and a Prefer header controlling
// whether mutations echo the row. Rows are mapped into the canonical
// member-type + admin-role model regardless of what the tables call things.
type SupabaseBackend struct {
	baseURL string
	key     string
	http    *http.Client
}

func NewSupabaseBackend(projectURL, key string) *SupabaseBackend {
	return &SupabaseBackend{
		baseURL: strings.TrimRight(projectURL, "/") + "/rest/v1",
		key:     key,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// request performs one table query. prefer may be empty; out may be nil.
func (b *SupabaseBackend) request(ctx context.Context, method, query, prefer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body -> %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+"/"+query, reader)
	if err != nil {
		return fmt.Errorf("build request -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", b.key)
	req.Header.Set("Authorization", "Bearer "+b.key)
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.Body, resp.StatusCode),
		}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response -> %w", err)
	}

	return nil
}

// upsert posts a row with merge-duplicates semantics and returns the stored
// representation.
func (b *SupabaseBackend) upsert(ctx context.Context, table, onConflict string, row, out any) error {
	query := table + "?on_conflict=" + url.QueryEscape(onConflict)
	return b.request(ctx, http.MethodPost, query, "resolution=merge-duplicates,return=representation", row, out)
}

// first unwraps the single-element representation arrays the table endpoint
// returns for filtered mutations.
func first[T any](rows []T, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, &RequestError{Status: http.StatusNotFound, Message: "no matching row"}
	}
	return rows[0], nil
}

func (b *SupabaseBackend) ListMembers(ctx context.Context) ([]domain.Member, error) {
	var members []domain.Member
	if err := b.request(ctx, http.MethodGet, "allowed_members?select=*&order=surname", "", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (b *SupabaseBackend) GetMember(ctx context.Context, id string) (domain.Member, error) {
	var members []domain.Member
	err := b.request(ctx, http.MethodGet, "allowed_members?id=eq."+url.QueryEscape(id), "", nil, &members)
	return first(members, err)
}

func (b *SupabaseBackend) LoginLookup(ctx context.Context, name string) ([]domain.Member, error) {
	var members []domain.Member
	query := "allowed_members?full_name=ilike." + url.QueryEscape(name)
	if err := b.request(ctx, http.MethodGet, query, "", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (b *SupabaseBackend) CreateMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	var created []domain.Member
	err := b.request(ctx, http.MethodPost, "allowed_members", "return=representation", m, &created)
	return first(created, err)
}

func (b *SupabaseBackend) UpdateMember(ctx context.Context, id string, fields map[string]any) (domain.Member, error) {
	var updated []domain.Member
	query := "allowed_members?id=eq." + url.QueryEscape(id)
	err := b.request(ctx, http.MethodPatch, query, "return=representation", fields, &updated)
	return first(updated, err)
}

func (b *SupabaseBackend) DeleteMember(ctx context.Context, id string) error {
	return b.request(ctx, http.MethodDelete, "allowed_members?id=eq."+url.QueryEscape(id), "", nil, nil)
}

func (b *SupabaseBackend) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := b.request(ctx, http.MethodGet, "events?select=*&order=date.asc", "", nil, &events); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return events, nil
	}

	var regs []domain.Registration
	if err := b.request(ctx, http.MethodGet, "event_registrations?select=*", "", nil, &regs); err != nil {
		return nil, err
	}
	byEvent := make(map[string][]domain.Registration, len(events))
	for _, r := range regs {
		byEvent[r.EventID] = append(byEvent[r.EventID], r)
	}
	for i := range events {
		events[i].Registrations = byEvent[events[i].ID]
	}
	return events, nil
}

func (b *SupabaseBackend) CreateEvent(ctx context.Context, ev domain.Event) (domain.Event, error) {
	var created []domain.Event
	err := b.request(ctx, http.MethodPost, "events", "return=representation", ev, &created)
	return first(created, err)
}

func (b *SupabaseBackend) UpdateEvent(ctx context.Context, id string, fields map[string]any) (domain.Event, error) {
	var updated []domain.Event
	query := "events?id=eq." + url.QueryEscape(id)
	err := b.request(ctx, http.MethodPatch, query, "return=representation", fields, &updated)
	return first(updated, err)
}

func (b *SupabaseBackend) DeleteEvent(ctx context.Context, id string) error {
	return b.request(ctx, http.MethodDelete, "events?id=eq."+url.QueryEscape(id), "", nil, nil)
}

func (b *SupabaseBackend) UpsertRegistration(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	var saved []domain.Registration
	err := b.upsert(ctx, "event_registrations", "event_id,member_id", reg, &saved)
	return first(saved, err)
}

func (b *SupabaseBackend) MealsForWeek(ctx context.Context, year, week int) ([]domain.Meal, error) {
	var meals []domain.Meal
	query := fmt.Sprintf("meals?year=eq.%d&week=eq.%d", year, week)
	if err := b.request(ctx, http.MethodGet, query, "", nil, &meals); err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return meals, nil
	}

	ids := make([]string, len(meals))
	for i, m := range meals {
		ids[i] = m.ID
	}
	var signups []domain.MealSignup
	query = "meal_signups?meal_id=in.(" + url.QueryEscape(strings.Join(ids, ",")) + ")"
	if err := b.request(ctx, http.MethodGet, query, "", nil, &signups); err != nil {
		return nil, err
	}
	byMeal := make(map[string][]domain.MealSignup, len(meals))
	for _, s := range signups {
		byMeal[s.MealID] = append(byMeal[s.MealID], s)
	}
	for i := range meals {
		meals[i].Signups = byMeal[meals[i].ID]
	}
	return meals, nil
}

func (b *SupabaseBackend) UpsertMeal(ctx context.Context, meal domain.Meal) (domain.Meal, error) {
	var saved []domain.Meal
	err := b.upsert(ctx, "meals", "year,week,day_index", meal, &saved)
	return first(saved, err)
}

func (b *SupabaseBackend) UpsertMealSignup(ctx context.Context, signup MealSignupUpsert) (domain.MealSignup, error) {
	// The table contract keys signups by meal id, so the meal row has to
	// exist first.
	meal, err := b.UpsertMeal(ctx, domain.Meal{
		Year:     signup.Year,
		Week:     signup.Week,
		DayIndex: signup.DayIndex,
	})
	if err != nil {
		return domain.MealSignup{}, err
	}

	var saved []domain.MealSignup
	err = b.upsert(ctx, "meal_signups", "meal_id,member_id", domain.MealSignup{
		MealID:   meal.ID,
		MemberID: signup.MemberID,
		Tags:     signup.Tags,
		Amount:   signup.Amount,
	}, &saved)
	return first(saved, err)
}

func (b *SupabaseBackend) ListAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	var announcements []domain.Announcement
	query := "announcements?is_active=eq.true&order=created_at.desc&limit=10"
	if err := b.request(ctx, http.MethodGet, query, "", nil, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

func (b *SupabaseBackend) ListExpenses(ctx context.Context, startDate string) ([]domain.Expense, error) {
	query := "expenses?select=*&order=date.desc"
	if startDate != "" {
		query = "expenses?date=gte." + url.QueryEscape(startDate) + "&order=date.desc"
	}
	var expenses []domain.Expense
	if err := b.request(ctx, http.MethodGet, query, "", nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}
