package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

var testNow = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

func seedEvents(backend *fakeBackend) {
	backend.events = []domain.Event{
		{ID: "e1", Title: "Stiftungsfest", Date: "2026-03-20"},
		{ID: "e2", Title: "Kneipe", Date: "2026-03-06"},
		{ID: "e3", Title: "Wanderung", Date: "2026-03-08", EndDate: "2026-03-10"},
		{ID: "e4", Title: "Putztag", Date: "2026-04-01"},
	}
}

func TestUpcomingAndPast(t *testing.T) {
	backend := seedRoster()
	seedEvents(backend)
	d := newTestDashboard(t, backend)
	loginAs(t, d, backend, "m1")

	// e3 ends today, so it still counts as upcoming
	upcoming := d.UpcomingEvents(testNow)
	require.Len(t, upcoming, 3)
	assert.Equal(t, "e3", upcoming[0].ID)
	assert.Equal(t, "e1", upcoming[1].ID)
	assert.Equal(t, "e4", upcoming[2].ID)

	past := d.PastEvents(testNow)
	require.Len(t, past, 1)
	assert.Equal(t, "e2", past[0].ID)
}

func TestStatusForDefaults(t *testing.T) {
	ev := domain.Event{ID: "e1", Date: "2026-03-20"}

	// Bursche and fux default to yes, inaktiv to no, all unconfirmed
	for _, mt := range []domain.MemberType{domain.MemberTypeBursche, domain.MemberTypeFux} {
		view, ok := StatusFor(ev, domain.Member{ID: "x", MemberType: mt})
		require.True(t, ok)
		assert.Equal(t, domain.StatusYes, view.Status)
		assert.False(t, view.Confirmed)
		assert.False(t, view.Explicit)
	}
	view, ok := StatusFor(ev, domain.Member{ID: "x", MemberType: domain.MemberTypeInaktiv})
	require.True(t, ok)
	assert.Equal(t, domain.StatusNo, view.Status)

	// Employees have no default status
	_, ok = StatusFor(ev, domain.Member{ID: "x", MemberType: domain.MemberTypeEmployee})
	assert.False(t, ok)

	// An explicit answer wins over the default
	ev.Registrations = []domain.Registration{
		{EventID: "e1", MemberID: "x", Status: domain.StatusNo, Confirmed: true, Extras: "kommt später"},
	}
	view, ok = StatusFor(ev, domain.Member{ID: "x", MemberType: domain.MemberTypeBursche})
	require.True(t, ok)
	assert.Equal(t, domain.StatusNo, view.Status)
	assert.True(t, view.Confirmed)
	assert.True(t, view.Explicit)
	assert.Equal(t, "kommt später", view.Extras)
}

func TestConfirm(t *testing.T) {
	backend := seedRoster()
	seedEvents(backend)
	d := newTestDashboard(t, backend)
	loginAs(t, d, backend, "m1")
	ctx := context.Background()

	// Invalid status
	assert.ErrorIs(t, d.Confirm(ctx, "e1", "jein", ""), ErrNoStatus)

	// Unknown event
	assert.ErrorIs(t, d.Confirm(ctx, "nope", domain.StatusYes, ""), ErrUnknownEvent)

	// Confirming the default still records an explicit confirmed answer
	require.NoError(t, d.Confirm(ctx, "e1", domain.StatusYes, ""))
	view, err := d.StatusFor("e1")
	require.NoError(t, err)
	assert.True(t, view.Confirmed)
	assert.True(t, view.Explicit)

	// Changing the answer upserts instead of duplicating
	require.NoError(t, d.Confirm(ctx, "e1", domain.StatusMaybe, "nur abends"))
	ev, _ := d.eventByID("e1")
	require.Len(t, ev.Registrations, 1)
	assert.Equal(t, domain.StatusMaybe, ev.Registrations[0].Status)
	assert.Equal(t, "nur abends", ev.Registrations[0].Extras)
}

func TestGroupAttendees(t *testing.T) {
	backend := seedRoster()
	backend.members = append(backend.members,
		member("m8", "Paula", "Koch", domain.MemberTypeEmployee, domain.RoleNone),
	)
	ev := domain.Event{
		ID:   "e1",
		Date: "2026-03-20",
		Registrations: []domain.Registration{
			{EventID: "e1", MemberID: "m1", Status: domain.StatusNo, Confirmed: true},
			{EventID: "e1", MemberID: "m3", Status: domain.StatusMaybe, Confirmed: true, Extras: "bringt Gast mit"},
		},
	}

	groups := GroupAttendees(ev, backend.members, false)

	// The status columns hold confirmed answers only: m1 no, m3 maybe.
	// Everyone still on a type default sits in Unconfirmed alone, and the
	// employee m8 is absent everywhere.
	assert.Empty(t, groups.Yes)
	require.Len(t, groups.Maybe, 1)
	assert.Equal(t, "m3", groups.Maybe[0].Member.ID)
	require.Len(t, groups.No, 1)
	assert.Equal(t, "m1", groups.No[0].Member.ID)

	unconfirmedIDs := make(map[string]bool)
	for _, a := range groups.Unconfirmed {
		unconfirmedIDs[a.Member.ID] = true
	}
	assert.Equal(t, map[string]bool{"m2": true, "m4": true, "m5": true}, unconfirmedIDs)

	// Extras are blanked for non-admin viewers
	assert.Empty(t, groups.Maybe[0].View.Extras)

	// and disclosed for event admins
	groups = GroupAttendees(ev, backend.members, true)
	assert.Equal(t, "bringt Gast mit", groups.Maybe[0].View.Extras)
}

func TestGroupAttendeesPartitionIsExclusive(t *testing.T) {
	backend := seedRoster()

	// An unconfirmed row keeps the member out of the status columns
	ev := domain.Event{
		ID:   "e1",
		Date: "2026-03-20",
		Registrations: []domain.Registration{
			{EventID: "e1", MemberID: "m1", Status: domain.StatusYes, Confirmed: false},
		},
	}
	groups := GroupAttendees(ev, backend.members, false)
	assert.Empty(t, groups.Yes)
	assert.Empty(t, groups.Maybe)
	assert.Empty(t, groups.No)
	assert.Len(t, groups.Unconfirmed, 5)

	// With no registrations at all, every member is unconfirmed only
	groups = GroupAttendees(domain.Event{ID: "e2", Date: "2026-03-21"}, backend.members, false)
	assert.Empty(t, groups.Yes)
	assert.Empty(t, groups.No)
	assert.Len(t, groups.Unconfirmed, 5)

	// Each member appears in exactly one group
	total := len(groups.Yes) + len(groups.Maybe) + len(groups.No) + len(groups.Unconfirmed)
	assert.Equal(t, len(backend.members), total)
}

func TestUnconfirmedCount(t *testing.T) {
	backend := seedRoster()
	seedEvents(backend)
	d := newTestDashboard(t, backend)

	// Logged out counts nothing
	assert.Equal(t, 0, d.UnconfirmedCount(testNow))

	// Three upcoming events, none answered
	loginAs(t, d, backend, "m1")
	assert.Equal(t, 3, d.UnconfirmedCount(testNow))

	// Answering one reduces the badge; past events never count
	require.NoError(t, d.Confirm(context.Background(), "e1", domain.StatusYes, ""))
	assert.Equal(t, 2, d.UnconfirmedCount(testNow))

	// A registration row written without confirmed still counts
	_, err := backend.UpsertRegistration(context.Background(),
		domain.Registration{EventID: "e4", MemberID: "m1", Status: domain.StatusYes, Confirmed: false})
	require.NoError(t, err)
	require.NoError(t, d.LoadEvents(context.Background()))
	assert.Equal(t, 2, d.UnconfirmedCount(testNow))
}

func TestEventAdmin(t *testing.T) {
	backend := seedRoster()
	backend.members = append(backend.members,
		member("m6", "Vera", "Anstalt", domain.MemberTypeBursche, domain.RoleVA),
	)
	seedEvents(backend)
	d := newTestDashboard(t, backend)
	ctx := context.Background()

	// Plain member may not manage events
	loginAs(t, d, backend, "m1")
	_, err := d.CreateEvent(ctx, domain.Event{Title: "Neu", Date: "2026-05-01"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, d.DeleteEvent(ctx, "e1"), ErrPermissionDenied)

	// VA creates, updates and deletes
	loginAs(t, d, backend, "m6")

	_, err = d.CreateEvent(ctx, domain.Event{Title: "", Date: "2026-05-01"})
	assert.ErrorIs(t, err, ErrEventFields)

	created, err := d.CreateEvent(ctx, domain.Event{Title: "Sommerfest", Date: "2026-06-12"})
	require.NoError(t, err)
	assert.Equal(t, "m6", created.CreatedBy)
	_, found := d.eventByID(created.ID)
	assert.True(t, found)

	require.NoError(t, d.UpdateEvent(ctx, created.ID, map[string]any{"title": "Sommerfest 2026"}))
	ev, _ := d.eventByID(created.ID)
	assert.Equal(t, "Sommerfest 2026", ev.Title)

	require.NoError(t, d.DeleteEvent(ctx, created.ID))
	_, found = d.eventByID(created.ID)
	assert.False(t, found)
}
