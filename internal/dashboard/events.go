package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

// RegistrationView is a member's effective attendance for one event: either
// their explicit answer or the default their member type implies.
type RegistrationView struct {
	Status    domain.RegistrationStatus
	Confirmed bool
	Explicit  bool // an actual registration row exists
	Extras    string
}

// StatusFor resolves a member's effective attendance for an event. Employees
// have no effective status; ok is false for them when they never answered.
func StatusFor(ev domain.Event, m domain.Member) (RegistrationView, bool) {
	if reg, found := ev.RegistrationFor(m.ID); found {
		return RegistrationView{
			Status:    reg.Status,
			Confirmed: reg.Confirmed,
			Explicit:  true,
			Extras:    reg.Extras,
		}, true
	}
	status, ok := m.Type().DefaultEventStatus()
	if !ok {
		return RegistrationView{}, false
	}
	return RegistrationView{Status: status}, true
}

// Upcoming returns the events not yet past, soonest first.
func Upcoming(events []domain.Event, now time.Time) []domain.Event {
	var out []domain.Event
	for _, ev := range events {
		if !ev.IsPast(now) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Past returns the events already over, most recent first.
func Past(events []domain.Event, now time.Time) []domain.Event {
	var out []domain.Event
	for _, ev := range events {
		if ev.IsPast(now) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func (d *Dashboard) UpcomingEvents(now time.Time) []domain.Event {
	return Upcoming(d.events, now)
}

func (d *Dashboard) PastEvents(now time.Time) []domain.Event {
	return Past(d.events, now)
}

// StatusFor resolves the active user's effective attendance for the event.
func (d *Dashboard) StatusFor(eventID string) (RegistrationView, error) {
	user := d.ActiveUser()
	if user == nil {
		return RegistrationView{}, ErrNotLoggedIn
	}
	ev, ok := d.eventByID(eventID)
	if !ok {
		return RegistrationView{}, ErrUnknownEvent
	}
	view, _ := StatusFor(ev, *user)
	return view, nil
}

// Confirm records the active user's attendance answer. Writing always sets
// confirmed, so repeating an answer that matches the default still counts as
// an explicit confirmation.
func (d *Dashboard) Confirm(ctx context.Context, eventID string, status domain.RegistrationStatus, extras string) error {
	user := d.ActiveUser()
	if user == nil {
		return ErrNotLoggedIn
	}
	if !status.Valid() {
		return ErrNoStatus
	}
	if _, ok := d.eventByID(eventID); !ok {
		return ErrUnknownEvent
	}

	_, err := d.backend.UpsertRegistration(ctx, domain.Registration{
		EventID:   eventID,
		MemberID:  user.ID,
		Status:    status,
		Confirmed: true,
		Extras:    extras,
	})
	if err != nil {
		return err
	}
	return d.LoadEvents(ctx)
}

// Attendee is one row of an event attendance list.
type Attendee struct {
	Member domain.Member
	View   RegistrationView
}

// AttendeeGroups is the attendance list of one event, split the way the
// event detail renders it. Yes, Maybe and No hold confirmed answers only;
// everyone still on a default or an unconfirmed row lands in Unconfirmed.
type AttendeeGroups struct {
	Yes         []Attendee
	Maybe       []Attendee
	No          []Attendee
	Unconfirmed []Attendee
}

// GroupAttendees builds the attendance list for an event. Employees are left
// out entirely. Extras are only disclosed to event admins; for everyone else
// they are blanked.
func GroupAttendees(ev domain.Event, members []domain.Member, showExtras bool) AttendeeGroups {
	var groups AttendeeGroups
	sorted := make([]domain.Member, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].DisplayName()) < strings.ToLower(sorted[j].DisplayName())
	})

	for _, m := range sorted {
		view, ok := StatusFor(ev, m)
		if !ok {
			continue
		}
		if !showExtras {
			view.Extras = ""
		}
		a := Attendee{Member: m, View: view}
		if !view.Confirmed {
			groups.Unconfirmed = append(groups.Unconfirmed, a)
			continue
		}
		switch view.Status {
		case domain.StatusYes:
			groups.Yes = append(groups.Yes, a)
		case domain.StatusMaybe:
			groups.Maybe = append(groups.Maybe, a)
		case domain.StatusNo:
			groups.No = append(groups.No, a)
		}
	}
	return groups
}

// Attendees builds the grouped attendance list for an event, disclosing
// extras only when the active user manages events.
func (d *Dashboard) Attendees(eventID string) (AttendeeGroups, error) {
	ev, ok := d.eventByID(eventID)
	if !ok {
		return AttendeeGroups{}, ErrUnknownEvent
	}
	return GroupAttendees(ev, d.members, d.IsVA()), nil
}

// UnconfirmedCount counts the upcoming events the active user has no
// confirmed registration for. A row written with confirmed false still
// counts. It drives the reminder badge on the dashboard.
func (d *Dashboard) UnconfirmedCount(now time.Time) int {
	user := d.ActiveUser()
	if user == nil || !user.Type().MustConfirm() {
		return 0
	}
	var n int
	for _, ev := range Upcoming(d.events, now) {
		if reg, found := ev.RegistrationFor(user.ID); !found || !reg.Confirmed {
			n++
		}
	}
	return n
}

// CreateEvent creates an event. Event management is reserved to the VA role.
func (d *Dashboard) CreateEvent(ctx context.Context, ev domain.Event) (domain.Event, error) {
	if !d.IsVA() {
		return domain.Event{}, ErrPermissionDenied
	}
	if strings.TrimSpace(ev.Title) == "" || strings.TrimSpace(ev.Date) == "" {
		return domain.Event{}, ErrEventFields
	}
	if user := d.ActiveUser(); user != nil {
		ev.CreatedBy = user.ID
	}
	created, err := d.backend.CreateEvent(ctx, ev)
	if err != nil {
		return domain.Event{}, err
	}
	return created, d.LoadEvents(ctx)
}

func (d *Dashboard) UpdateEvent(ctx context.Context, id string, fields map[string]any) error {
	if !d.IsVA() {
		return ErrPermissionDenied
	}
	if _, ok := d.eventByID(id); !ok {
		return ErrUnknownEvent
	}
	if _, err := d.backend.UpdateEvent(ctx, id, fields); err != nil {
		return err
	}
	return d.LoadEvents(ctx)
}

func (d *Dashboard) DeleteEvent(ctx context.Context, id string) error {
	if !d.IsVA() {
		return ErrPermissionDenied
	}
	if err := d.backend.DeleteEvent(ctx, id); err != nil {
		return err
	}
	return d.LoadEvents(ctx)
}
