package repository

import (
	"context"
	"fmt"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/repository/dao"
)

type AnnouncementDAO interface {
	ListActive(ctx context.Context, limit int) ([]dao.Announcement, error)
	Insert(ctx context.Context, a dao.Announcement) (dao.Announcement, error)
}

type AnnouncementRepository struct {
	dao AnnouncementDAO
}

func NewAnnouncementRepository(dao AnnouncementDAO) *AnnouncementRepository {
	return &AnnouncementRepository{
		dao: dao,
	}
}

func (r *AnnouncementRepository) ListActive(ctx context.Context, limit int) ([]domain.Announcement, error) {
	found, err := r.dao.ListActive(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListActive -> %w", err)
	}

	announcements := make([]domain.Announcement, len(found))
	for i, a := range found {
		announcements[i] = r.daoToDomain(a)
	}

	return announcements, nil
}

func (r *AnnouncementRepository) Create(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	daoAnnouncement := dao.Announcement{
		Title:    a.Title,
		Content:  a.Content,
		Category: a.Category,
		IsActive: a.IsActive,
		ExpiresAt: a.ExpiresAt,
	}
	if a.AuthorID != "" {
		authorID := a.AuthorID
		daoAnnouncement.AuthorID = &authorID
	}

	created, err := r.dao.Insert(ctx, daoAnnouncement)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AnnouncementRepository) daoToDomain(a dao.Announcement) domain.Announcement {
	announcement := domain.Announcement{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Category:  a.Category,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		ExpiresAt: a.ExpiresAt,
	}
	if a.AuthorID != nil {
		announcement.AuthorID = *a.AuthorID
	}

	return announcement
}
