package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Announcement struct {
	ID string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`

	Title    string `gorm:"size:255;not null"`
	Content  string `gorm:"not null"`
	AuthorID *string `gorm:"type:uuid"`
	Category string `gorm:"size:50;default:info"`
	IsActive bool   `gorm:"default:true"`

	CreatedAt time.Time
	ExpiresAt *time.Time
}

func (a *Announcement) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type AnnouncementDAO struct {
	db *gorm.DB
}

func NewAnnouncementDAO(db *gorm.DB) *AnnouncementDAO {
	return &AnnouncementDAO{
		db: db,
	}
}

// ListActive returns the newest active announcements, capped at limit.
func (d *AnnouncementDAO) ListActive(ctx context.Context, limit int) ([]Announcement, error) {
	var announcements []Announcement

	result := d.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&announcements)
	if result.Error != nil {
		return nil, result.Error
	}

	return announcements, nil
}

func (d *AnnouncementDAO) Insert(ctx context.Context, a Announcement) (Announcement, error) {
	result := d.db.WithContext(ctx).Create(&a)
	if result.Error != nil {
		return Announcement{}, result.Error
	}

	return a, nil
}
