package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	List(ctx context.Context) ([]dao.Event, error)
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	Update(ctx context.Context, id string, fields map[string]any) (dao.Event, error)
	Delete(ctx context.Context, id string) error
	UpsertRegistration(ctx context.Context, reg dao.Registration) (dao.Registration, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = r.daoToDomain(e)
	}

	return events, nil
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	daoEvent, err := r.domainToDAO(event)
	if err != nil {
		return domain.Event{}, err
	}

	created, err := r.dao.Insert(ctx, daoEvent)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) Update(ctx context.Context, id string, fields map[string]any) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) UpsertRegistration(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	saved, err := r.dao.UpsertRegistration(ctx, dao.Registration{
		EventID:    reg.EventID,
		MemberID:   reg.MemberID,
		Status:     string(reg.Status),
		Confirmed:  reg.Confirmed,
		Extras:     reg.Extras,
		GuestCount: reg.GuestCount,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.UpsertRegistration -> %w", err)
	}

	return r.registrationDAOToDomain(saved), nil
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date.Format(domain.DateLayout),
		Time:        e.Time,
		MeetingTime: e.MeetingTime,
		Location:    e.Location,
		Description: e.Description,
		Category:    e.Category,
		CreatedAt:   e.CreatedAt,
	}
	if e.EndDate != nil {
		event.EndDate = e.EndDate.Format(domain.DateLayout)
	}
	if e.CreatedBy != nil {
		event.CreatedBy = *e.CreatedBy
	}
	if len(e.Registrations) > 0 {
		event.Registrations = make([]domain.Registration, len(e.Registrations))
		for i, reg := range e.Registrations {
			event.Registrations[i] = r.registrationDAOToDomain(reg)
		}
	}

	return event
}

func (r *EventRepository) registrationDAOToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:         reg.ID,
		EventID:    reg.EventID,
		MemberID:   reg.MemberID,
		Status:     domain.RegistrationStatus(reg.Status),
		Confirmed:  reg.Confirmed,
		Extras:     reg.Extras,
		GuestCount: reg.GuestCount,
	}
}

func (r *EventRepository) domainToDAO(e domain.Event) (dao.Event, error) {
	date, err := time.Parse(domain.DateLayout, e.Date)
	if err != nil {
		return dao.Event{}, fmt.Errorf("parse event date -> %w", err)
	}

	event := dao.Event{
		ID:          e.ID,
		Title:       e.Title,
		Date:        date,
		Time:        e.Time,
		MeetingTime: e.MeetingTime,
		Location:    e.Location,
		Description: e.Description,
		Category:    e.Category,
	}
	if e.EndDate != "" {
		endDate, err := time.Parse(domain.DateLayout, e.EndDate)
		if err != nil {
			return dao.Event{}, fmt.Errorf("parse event end date -> %w", err)
		}
		event.EndDate = &endDate
	}
	if e.CreatedBy != "" {
		createdBy := e.CreatedBy
		event.CreatedBy = &createdBy
	}

	return event, nil
}
