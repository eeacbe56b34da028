package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`

	Title                string `gorm:"size:255;not null"`
	Date                 time.Time
	EndDate              *time.Time
	Time                 string `gorm:"size:10"`
	MeetingTime          string `gorm:"size:10"`
	Location             string `gorm:"size:255;default:Auf dem Haus"`
	Description          string
	Category             string `gorm:"size:50;default:intern"`
	ConfirmationDeadline *time.Time
	CreatedBy            *string `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Registrations []Registration `gorm:"foreignKey:EventID"`
}

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

type Registration struct {
	ID string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`

	EventID  string `gorm:"type:uuid;uniqueIndex:idx_event_member"`
	MemberID string `gorm:"type:uuid;uniqueIndex:idx_event_member"`

	Status     string `gorm:"size:20;not null;default:ja"`
	Confirmed  bool
	Extras     string
	GuestCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Registration) TableName() string {
	return "event_registrations"
}

func (r *Registration) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) List(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Preload("Registrations").Order("date").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Omit("Registrations").Create(&event)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return Event{}, ErrMemberNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Update(ctx context.Context, id string, fields map[string]any) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	var event Event
	if err := d.db.WithContext(ctx).Preload("Registrations").First(&event, "id = ?", id).Error; err != nil {
		return Event{}, err
	}

	return event, nil
}

// Delete removes the event; registrations go with it via ON DELETE CASCADE.
func (d *EventDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// UpsertRegistration writes a member's answer, overwriting an earlier one
// for the same event.
func (d *EventDAO) UpsertRegistration(ctx context.Context, reg Registration) (Registration, error) {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "member_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "confirmed", "extras", "guest_count", "updated_at",
		}),
	}).Create(&reg)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return Registration{}, ErrEventNotFound
		}

		return Registration{}, result.Error
	}

	return reg, nil
}
