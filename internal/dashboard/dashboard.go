// Package dashboard owns the members-area application state: the
// authenticated user, the entity caches and the week cursor, plus the
// managers operating on them. One Dashboard is built per session and
// replaced wholesale on login/logout.
package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kbteutonia/mitgliederbereich/internal/client"
	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/session"
)

type Dashboard struct {
	backend  client.Backend
	sessions *session.Store
	log      *zap.Logger

	user      *domain.Member // authenticated identity
	debugUser *domain.Member // impersonated identity, system admin only

	members       []domain.Member
	events        []domain.Event
	announcements []domain.Announcement

	year, week int // meal plan cursor
}

func New(backend client.Backend, sessions *session.Store) *Dashboard {
	year, week := domain.ISOWeek(time.Now())
	return &Dashboard{
		backend:  backend,
		sessions: sessions,
		log:      zap.L(),
		year:     year,
		week:     week,
	}
}

// Restore revalidates a saved session on startup. It reports whether the
// user is logged in; a stale or unverifiable session is cleared so the
// caller can show the login view.
func (d *Dashboard) Restore(ctx context.Context) (bool, error) {
	saved, ok := d.sessions.Load()
	if !ok {
		return false, nil
	}

	member, err := d.backend.GetMember(ctx, saved.ID)
	if err != nil || member.ID == "" {
		d.log.Info("session revalidation failed, forcing re-login", zap.Error(err))
		if clearErr := d.sessions.Clear(); clearErr != nil {
			return false, clearErr
		}
		return false, nil
	}

	d.user = &member
	d.Refresh(ctx)
	return true, nil
}

// Refresh reloads the entity caches. Individual read failures degrade to an
// empty cache for that entity instead of failing the whole dashboard.
func (d *Dashboard) Refresh(ctx context.Context) {
	if err := d.LoadMembers(ctx); err != nil {
		d.log.Warn("failed to load members", zap.Error(err))
		d.members = nil
	}
	if err := d.LoadEvents(ctx); err != nil {
		d.log.Warn("failed to load events", zap.Error(err))
		d.events = nil
	}
	if err := d.LoadAnnouncements(ctx); err != nil {
		d.log.Warn("failed to load announcements", zap.Error(err))
		d.announcements = nil
	}
}

func (d *Dashboard) LoadMembers(ctx context.Context) error {
	members, err := d.backend.ListMembers(ctx)
	if err != nil {
		return err
	}
	d.members = members
	return nil
}

func (d *Dashboard) LoadEvents(ctx context.Context) error {
	events, err := d.backend.ListEvents(ctx)
	if err != nil {
		return err
	}
	d.events = events
	return nil
}

func (d *Dashboard) LoadAnnouncements(ctx context.Context) error {
	announcements, err := d.backend.ListAnnouncements(ctx)
	if err != nil {
		return err
	}
	d.announcements = announcements
	return nil
}

// Members returns the cached member list.
func (d *Dashboard) Members() []domain.Member { return d.members }

// Events returns the cached event list.
func (d *Dashboard) Events() []domain.Event { return d.events }

// Announcements returns the cached announcements, newest first.
func (d *Dashboard) Announcements() []domain.Announcement { return d.announcements }

func (d *Dashboard) memberByID(id string) (domain.Member, bool) {
	for _, m := range d.members {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Member{}, false
}

func (d *Dashboard) eventByID(id string) (domain.Event, bool) {
	for _, e := range d.events {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Event{}, false
}
