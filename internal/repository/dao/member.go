package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrMemberNotFound = errors.New("member not found")

type Member struct {
	ID string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`

	Surname      string  `gorm:"size:100;not null"`
	FirstName    string  `gorm:"size:100"`
	FullName     string  `gorm:"size:200"`
	MemberType   string  `gorm:"size:50;default:bursche"`
	AdminRole    *string `gorm:"size:50"`
	PasswordHash *string `gorm:"size:255"`
	LastLogin    *time.Time

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Member) TableName() string {
	return "allowed_members"
}

func (m *Member) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type MemberDAO struct {
	db *gorm.DB
}

func NewMemberDAO(db *gorm.DB) *MemberDAO {
	return &MemberDAO{
		db: db,
	}
}

func (d *MemberDAO) Insert(ctx context.Context, member Member) (Member, error) {
	result := d.db.WithContext(ctx).Create(&member)
	if result.Error != nil {
		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) FindByID(ctx context.Context, id string) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).First(&member, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}

// FindByFullName matches the full name exactly but case-insensitively. More
// than one row can come back; name collisions are the caller's business.
func (d *MemberDAO) FindByFullName(ctx context.Context, name string) ([]Member, error) {
	var members []Member

	result := d.db.WithContext(ctx).Where("full_name ILIKE ?", name).Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

func (d *MemberDAO) List(ctx context.Context) ([]Member, error) {
	var members []Member

	result := d.db.WithContext(ctx).Order("surname").Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

// Update patches the given columns and returns the fresh row.
func (d *MemberDAO) Update(ctx context.Context, id string, fields map[string]any) (Member, error) {
	result := d.db.WithContext(ctx).Model(&Member{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return Member{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Member{}, ErrMemberNotFound
	}

	return d.FindByID(ctx, id)
}

// Delete soft-deletes the member; the row stays for historic registrations
// and expenses.
func (d *MemberDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Member{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}
