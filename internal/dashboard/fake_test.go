package dashboard

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/kbteutonia/mitgliederbereich/internal/client"
	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/session"
)

// fakeBackend is an in-memory Backend with the same upsert semantics as the
// real API: registrations keyed by (event, member), meals by (year, week,
// day), signups by (meal, member).
type fakeBackend struct {
	members       []domain.Member
	events        []domain.Event
	meals         []domain.Meal
	announcements []domain.Announcement
	expenses      []domain.Expense

	nextID  int
	failAll error // when set, every call fails with it
}

func (f *fakeBackend) id() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeBackend) ListMembers(context.Context) ([]domain.Member, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return append([]domain.Member(nil), f.members...), nil
}

func (f *fakeBackend) GetMember(_ context.Context, id string) (domain.Member, error) {
	if f.failAll != nil {
		return domain.Member{}, f.failAll
	}
	for _, m := range f.members {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Member{}, &client.RequestError{Status: 404, Message: "member not found"}
}

func (f *fakeBackend) LoginLookup(_ context.Context, name string) ([]domain.Member, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []domain.Member
	for _, m := range f.members {
		if strings.EqualFold(m.FullName, name) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateMember(_ context.Context, m domain.Member) (domain.Member, error) {
	if f.failAll != nil {
		return domain.Member{}, f.failAll
	}
	m.ID = f.id()
	f.members = append(f.members, m)
	return m, nil
}

func (f *fakeBackend) UpdateMember(_ context.Context, id string, fields map[string]any) (domain.Member, error) {
	if f.failAll != nil {
		return domain.Member{}, f.failAll
	}
	for i, m := range f.members {
		if m.ID != id {
			continue
		}
		if v, ok := fields["password_hash"]; ok {
			if v == nil {
				f.members[i].PasswordHash = ""
			} else {
				f.members[i].PasswordHash = v.(string)
			}
		}
		if v, ok := fields["member_type"]; ok {
			f.members[i].MemberType = domain.MemberType(v.(string))
		}
		if v, ok := fields["admin_role"]; ok {
			f.members[i].AdminRole = domain.AdminRole(v.(string))
		}
		return f.members[i], nil
	}
	return domain.Member{}, &client.RequestError{Status: 404, Message: "member not found"}
}

func (f *fakeBackend) DeleteMember(_ context.Context, id string) error {
	if f.failAll != nil {
		return f.failAll
	}
	for i, m := range f.members {
		if m.ID == id {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return &client.RequestError{Status: 404, Message: "member not found"}
}

func (f *fakeBackend) ListEvents(context.Context) ([]domain.Event, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return append([]domain.Event(nil), f.events...), nil
}

func (f *fakeBackend) CreateEvent(_ context.Context, ev domain.Event) (domain.Event, error) {
	if f.failAll != nil {
		return domain.Event{}, f.failAll
	}
	ev.ID = f.id()
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeBackend) UpdateEvent(_ context.Context, id string, fields map[string]any) (domain.Event, error) {
	if f.failAll != nil {
		return domain.Event{}, f.failAll
	}
	for i, ev := range f.events {
		if ev.ID != id {
			continue
		}
		if v, ok := fields["title"]; ok {
			f.events[i].Title = v.(string)
		}
		if v, ok := fields["date"]; ok {
			f.events[i].Date = v.(string)
		}
		return f.events[i], nil
	}
	return domain.Event{}, &client.RequestError{Status: 404, Message: "event not found"}
}

func (f *fakeBackend) DeleteEvent(_ context.Context, id string) error {
	if f.failAll != nil {
		return f.failAll
	}
	for i, ev := range f.events {
		if ev.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return &client.RequestError{Status: 404, Message: "event not found"}
}

func (f *fakeBackend) UpsertRegistration(_ context.Context, reg domain.Registration) (domain.Registration, error) {
	if f.failAll != nil {
		return domain.Registration{}, f.failAll
	}
	for i := range f.events {
		if f.events[i].ID != reg.EventID {
			continue
		}
		for j, existing := range f.events[i].Registrations {
			if existing.MemberID == reg.MemberID {
				reg.ID = existing.ID
				f.events[i].Registrations[j] = reg
				return reg, nil
			}
		}
		reg.ID = f.id()
		f.events[i].Registrations = append(f.events[i].Registrations, reg)
		return reg, nil
	}
	return domain.Registration{}, &client.RequestError{Status: 404, Message: "event not found"}
}

func (f *fakeBackend) MealsForWeek(_ context.Context, year, week int) ([]domain.Meal, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []domain.Meal
	for _, m := range f.meals {
		if m.Year == year && m.Week == week {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeBackend) UpsertMeal(_ context.Context, meal domain.Meal) (domain.Meal, error) {
	if f.failAll != nil {
		return domain.Meal{}, f.failAll
	}
	for i, m := range f.meals {
		if m.Year == meal.Year && m.Week == meal.Week && m.DayIndex == meal.DayIndex {
			meal.ID = m.ID
			meal.Signups = m.Signups
			f.meals[i] = meal
			return meal, nil
		}
	}
	meal.ID = f.id()
	f.meals = append(f.meals, meal)
	return meal, nil
}

func (f *fakeBackend) UpsertMealSignup(_ context.Context, signup client.MealSignupUpsert) (domain.MealSignup, error) {
	if f.failAll != nil {
		return domain.MealSignup{}, f.failAll
	}
	meal, err := f.UpsertMealOrKeep(signup.Year, signup.Week, signup.DayIndex)
	if err != nil {
		return domain.MealSignup{}, err
	}
	row := domain.MealSignup{
		MealID:   meal.ID,
		MemberID: signup.MemberID,
		Tags:     signup.Tags,
		Amount:   signup.Amount,
	}
	for i := range f.meals {
		if f.meals[i].ID != meal.ID {
			continue
		}
		for j, existing := range f.meals[i].Signups {
			if existing.MemberID == signup.MemberID {
				row.ID = existing.ID
				f.meals[i].Signups[j] = row
				return row, nil
			}
		}
		row.ID = f.id()
		f.meals[i].Signups = append(f.meals[i].Signups, row)
		return row, nil
	}
	return domain.MealSignup{}, &client.RequestError{Status: 404, Message: "meal not found"}
}

// UpsertMealOrKeep finds the meal row of a day, creating an empty one when
// missing, without overwriting a stored menu.
func (f *fakeBackend) UpsertMealOrKeep(year, week, dayIndex int) (domain.Meal, error) {
	for _, m := range f.meals {
		if m.Year == year && m.Week == week && m.DayIndex == dayIndex {
			return m, nil
		}
	}
	meal := domain.Meal{ID: f.id(), Year: year, Week: week, DayIndex: dayIndex}
	f.meals = append(f.meals, meal)
	return meal, nil
}

func (f *fakeBackend) ListAnnouncements(context.Context) ([]domain.Announcement, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return append([]domain.Announcement(nil), f.announcements...), nil
}

func (f *fakeBackend) ListExpenses(_ context.Context, startDate string) ([]domain.Expense, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []domain.Expense
	for _, e := range f.expenses {
		if startDate != "" && e.Date != "" && e.Date < startDate {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

var _ client.Backend = (*fakeBackend)(nil)

func member(id, first, sur string, mt domain.MemberType, role domain.AdminRole) domain.Member {
	return domain.Member{
		ID:         id,
		FirstName:  first,
		Surname:    sur,
		FullName:   first + " " + sur,
		MemberType: mt,
		AdminRole:  role,
	}
}

// newTestDashboard builds a dashboard over the fake backend with a session
// store in a test temp dir.
func newTestDashboard(t *testing.T, backend *fakeBackend) *Dashboard {
	t.Helper()
	return New(backend, session.NewStore(t.TempDir()))
}

// loginAs seeds the dashboard with an authenticated identity and fresh
// caches, skipping the password flow.
func loginAs(t *testing.T, d *Dashboard, backend *fakeBackend, memberID string) {
	t.Helper()
	m, err := backend.GetMember(context.Background(), memberID)
	if err != nil {
		t.Fatalf("seed member %s missing: %v", memberID, err)
	}
	d.user = &m
	d.Refresh(context.Background())
}
