// Package client talks to the members-area backend. Two adapters satisfy
// the same Backend contract: the plain REST API and the legacy
// Supabase-style table endpoint.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

// DefaultTimeout bounds every request. The original dashboard had none and
// could hang forever on a stalled fetch.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNetwork marks transport-level failures (DNS, refused connection,
	// broken pipe) as opposed to HTTP error responses.
	ErrNetwork = errors.New("network failure")

	// ErrTimeout marks requests that exceeded the client timeout.
	ErrTimeout = errors.New("request timed out")
)

// RequestError is a non-2xx HTTP response. Message carries the server's
// error/message body field when present, otherwise "HTTP <status>".
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

// MealSignupUpsert is the write shape for a meal signup: the meal key, the
// member and the full tag set with its recomputed amount. Tags and amount
// are always persisted together in one call.
type MealSignupUpsert struct {
	Year     int              `json:"year"`
	Week     int              `json:"week"`
	DayIndex int              `json:"day_index"`
	MemberID string           `json:"member_id"`
	Tags     []domain.MealTag `json:"types"`
	Amount   float64          `json:"amount"`
}

// Backend is the abstract persistence contract of the members area. Both
// the Flask-style REST API and the Supabase table endpoint implement it, so
// everything above this line is backend-agnostic.
type Backend interface {
	ListMembers(ctx context.Context) ([]domain.Member, error)
	GetMember(ctx context.Context, id string) (domain.Member, error)
	// LoginLookup returns all members whose full name matches, case
	// insensitively. Ambiguity handling is the caller's business.
	LoginLookup(ctx context.Context, name string) ([]domain.Member, error)
	CreateMember(ctx context.Context, m domain.Member) (domain.Member, error)
	UpdateMember(ctx context.Context, id string, fields map[string]any) (domain.Member, error)
	DeleteMember(ctx context.Context, id string) error

	ListEvents(ctx context.Context) ([]domain.Event, error)
	CreateEvent(ctx context.Context, ev domain.Event) (domain.Event, error)
	UpdateEvent(ctx context.Context, id string, fields map[string]any) (domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	UpsertRegistration(ctx context.Context, reg domain.Registration) (domain.Registration, error)

	MealsForWeek(ctx context.Context, year, week int) ([]domain.Meal, error)
	UpsertMeal(ctx context.Context, meal domain.Meal) (domain.Meal, error)
	UpsertMealSignup(ctx context.Context, signup MealSignupUpsert) (domain.MealSignup, error)

	ListAnnouncements(ctx context.Context) ([]domain.Announcement, error)
	ListExpenses(ctx context.Context, startDate string) ([]domain.Expense, error)
}
