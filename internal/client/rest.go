package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

// RESTBackend talks to the members API (the Flask contract): JSON bodies,
// error details in the response body's "error" field, 204 on deletes.
type RESTBackend struct {
	baseURL string
	http    *http.Client
}

func NewRESTBackend(baseURL string) *RESTBackend {
	return &RESTBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// NewRESTBackendWithClient lets callers supply their own http.Client, e.g.
// for tests or a custom timeout.
func NewRESTBackendWithClient(baseURL string, httpClient *http.Client) *RESTBackend {
	return &RESTBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// call performs one request. out may be nil for calls whose response body is
// irrelevant. A 204 or empty body leaves out untouched.
func (b *RESTBackend) call(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body -> %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

// errorMessage extracts the server's error text from a failed response,
// falling back to a generic "HTTP <status>".
func errorMessage(body io.Reader, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

func (b *RESTBackend) ListMembers(ctx context.Context) ([]domain.Member, error) {
	var members []domain.Member
	if err := b.call(ctx, http.MethodGet, "/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (b *RESTBackend) GetMember(ctx context.Context, id string) (domain.Member, error) {
	var member domain.Member
	if err := b.call(ctx, http.MethodGet, "/members/"+url.PathEscape(id), nil, &member); err != nil {
		return domain.Member{}, err
	}
	return member, nil
}

func (b *RESTBackend) LoginLookup(ctx context.Context, name string) ([]domain.Member, error) {
	var matches []domain.Member
	body := map[string]string{"name": name}
	if err := b.call(ctx, http.MethodPost, "/members/login", body, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (b *RESTBackend) CreateMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	var created domain.Member
	if err := b.call(ctx, http.MethodPost, "/members", m, &created); err != nil {
		return domain.Member{}, err
	}
	return created, nil
}

func (b *RESTBackend) UpdateMember(ctx context.Context, id string, fields map[string]any) (domain.Member, error) {
	var updated domain.Member
	if err := b.call(ctx, http.MethodPatch, "/members/"+url.PathEscape(id), fields, &updated); err != nil {
		return domain.Member{}, err
	}
	return updated, nil
}

func (b *RESTBackend) DeleteMember(ctx context.Context, id string) error {
	return b.call(ctx, http.MethodDelete, "/members/"+url.PathEscape(id), nil, nil)
}

func (b *RESTBackend) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := b.call(ctx, http.MethodGet, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (b *RESTBackend) CreateEvent(ctx context.Context, ev domain.Event) (domain.Event, error) {
	var created domain.Event
	if err := b.call(ctx, http.MethodPost, "/events", ev, &created); err != nil {
		return domain.Event{}, err
	}
	return created, nil
}

func (b *RESTBackend) UpdateEvent(ctx context.Context, id string, fields map[string]any) (domain.Event, error) {
	var updated domain.Event
	if err := b.call(ctx, http.MethodPatch, "/events/"+url.PathEscape(id), fields, &updated); err != nil {
		return domain.Event{}, err
	}
	return updated, nil
}

func (b *RESTBackend) DeleteEvent(ctx context.Context, id string) error {
	return b.call(ctx, http.MethodDelete, "/events/"+url.PathEscape(id), nil, nil)
}

func (b *RESTBackend) UpsertRegistration(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	var saved domain.Registration
	if err := b.call(ctx, http.MethodPost, "/event-registrations", reg, &saved); err != nil {
		return domain.Registration{}, err
	}
	return saved, nil
}

func (b *RESTBackend) MealsForWeek(ctx context.Context, year, week int) ([]domain.Meal, error) {
	var meals []domain.Meal
	endpoint := fmt.Sprintf("/meals?year=%d&week=%d", year, week)
	if err := b.call(ctx, http.MethodGet, endpoint, nil, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (b *RESTBackend) UpsertMeal(ctx context.Context, meal domain.Meal) (domain.Meal, error) {
	var saved domain.Meal
	if err := b.call(ctx, http.MethodPost, "/meals", meal, &saved); err != nil {
		return domain.Meal{}, err
	}
	return saved, nil
}

func (b *RESTBackend) UpsertMealSignup(ctx context.Context, signup MealSignupUpsert) (domain.MealSignup, error) {
	var saved domain.MealSignup
	if err := b.call(ctx, http.MethodPost, "/meal-signups", signup, &saved); err != nil {
		return domain.MealSignup{}, err
	}
	return saved, nil
}

func (b *RESTBackend) ListAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	var announcements []domain.Announcement
	if err := b.call(ctx, http.MethodGet, "/announcements", nil, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

func (b *RESTBackend) ListExpenses(ctx context.Context, startDate string) ([]domain.Expense, error) {
	endpoint := "/expenses"
	if startDate != "" {
		endpoint += "?start_date=" + url.QueryEscape(startDate)
	}
	var expenses []domain.Expense
	if err := b.call(ctx, http.MethodGet, endpoint, nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}
