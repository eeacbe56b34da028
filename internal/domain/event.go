package domain

import "time"

// DateLayout is the wire format for calendar dates (ISO 8601 date).
const DateLayout = "2006-01-02"

// RegistrationStatus is a member's attendance answer for an event.
type RegistrationStatus string

const (
	StatusYes   RegistrationStatus = "ja"
	StatusNo    RegistrationStatus = "nein"
	StatusMaybe RegistrationStatus = "vielleicht"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusYes, StatusNo, StatusMaybe:
		return true
	}
	return false
}

type Event struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Date          string         `json:"date"`
	EndDate       string         `json:"end_date,omitempty"`
	Time          string         `json:"time,omitempty"`
	MeetingTime   string         `json:"meeting_time,omitempty"`
	Location      string         `json:"location"`
	Description   string         `json:"description,omitempty"`
	Category      string         `json:"category,omitempty"`
	CreatedBy     string         `json:"created_by,omitempty"`
	CreatedAt     time.Time      `json:"created_at,omitempty"`
	Registrations []Registration `json:"registrations,omitempty"`
}

// EffectiveEnd is the date the event is over: the end date for multi-day
// events, the start date otherwise.
func (e Event) EffectiveEnd() string {
	if e.EndDate != "" {
		return e.EndDate
	}
	return e.Date
}

// IsPast reports whether the event lies entirely before now. The event day
// counts until its end, now counts from its start, so an event ending today
// is not past yet.
func (e Event) IsPast(now time.Time) bool {
	end, err := time.ParseInLocation(DateLayout, e.EffectiveEnd(), now.Location())
	if err != nil {
		return false
	}
	end = end.AddDate(0, 0, 1)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return end.Before(today) || end.Equal(today)
}

// RegistrationFor returns the member's explicit registration, if any.
func (e Event) RegistrationFor(memberID string) (Registration, bool) {
	for _, r := range e.Registrations {
		if r.MemberID == memberID {
			return r, true
		}
	}
	return Registration{}, false
}

// Registration is one member's answer for one event. At most one exists per
// (event, member) pair; the backend upserts on conflict.
type Registration struct {
	ID         string             `json:"id,omitempty"`
	EventID    string             `json:"event_id"`
	MemberID   string             `json:"member_id"`
	Status     RegistrationStatus `json:"status"`
	Confirmed  bool               `json:"confirmed"`
	Extras     string             `json:"extras,omitempty"`
	GuestCount int                `json:"guest_count,omitempty"`
}
