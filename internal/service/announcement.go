package service

import (
	"context"
	"fmt"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

// activeAnnouncementLimit caps the dashboard feed; older announcements stay
// in the table but are not served.
const activeAnnouncementLimit = 10

type AnnouncementRepository interface {
	ListActive(ctx context.Context, limit int) ([]domain.Announcement, error)
	Create(ctx context.Context, a domain.Announcement) (domain.Announcement, error)
}

type AnnouncementService struct {
	repo AnnouncementRepository
}

func NewAnnouncementService(repo AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{
		repo: repo,
	}
}

func (s *AnnouncementService) ListAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	announcements, err := s.repo.ListActive(ctx, activeAnnouncementLimit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListActive -> %w", err)
	}

	return announcements, nil
}

func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	if a.Category == "" {
		a.Category = "info"
	}
	a.IsActive = true

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}
