package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/repository"
)

var (
	ErrEventNotFound    = repository.ErrEventNotFound
	ErrInvalidRegStatus = errors.New("unknown registration status")
)

type EventRepository interface {
	List(ctx context.Context) ([]domain.Event, error)
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, id string, fields map[string]any) (domain.Event, error)
	Delete(ctx context.Context, id string) error
	UpsertRegistration(ctx context.Context, reg domain.Registration) (domain.Registration, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return events, nil
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id string, fields map[string]any) (domain.Event, error) {
	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Register upserts a member's attendance answer for an event.
func (s *EventService) Register(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	if !reg.Status.Valid() {
		return domain.Registration{}, ErrInvalidRegStatus
	}

	saved, err := s.repo.UpsertRegistration(ctx, reg)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.UpsertRegistration -> %w", err)
	}

	return saved, nil
}
