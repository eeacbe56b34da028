package dao

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMealNotFound = errors.New("meal not found")

// TagList maps a Postgres text[] column. The stored values are plain
// lowercase words, so the simple {a,b} form is enough on both directions.
type TagList []string

func (l TagList) Value() (driver.Value, error) {
	return "{" + strings.Join(l, ",") + "}", nil
}

func (l *TagList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TagList", src)
	}

	raw = strings.Trim(raw, "{}")
	if raw == "" {
		*l = nil
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.Trim(parts[i], `"`)
	}
	*l = parts
	return nil
}

func (TagList) GormDataType() string {
	return "text[]"
}

type Meal struct {
	ID string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`

	Year     int `gorm:"not null;uniqueIndex:idx_meal_day"`
	Week     int `gorm:"not null;uniqueIndex:idx_meal_day"`
	DayIndex int `gorm:"not null;uniqueIndex:idx_meal_day"`

	Vorspeise      string `gorm:"size:255"`
	Hauptgericht   string `gorm:"size:255"`
	Nachspeise     string `gorm:"size:255"`
	Kochteam       string `gorm:"size:255"`
	Status         string `gorm:"size:20;default:active"`
	SignupDeadline string `gorm:"size:10;default:10:00"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Signups []MealSignup `gorm:"foreignKey:MealID"`
}

func (m *Meal) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type MealSignup struct {
	ID string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`

	MealID   string `gorm:"type:uuid;uniqueIndex:idx_meal_member"`
	MemberID string `gorm:"type:uuid;uniqueIndex:idx_meal_member"`

	Types  TagList `gorm:"type:text[]"`
	Amount float64 `gorm:"type:decimal(10,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *MealSignup) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type MealDAO struct {
	db *gorm.DB
}

func NewMealDAO(db *gorm.DB) *MealDAO {
	return &MealDAO{
		db: db,
	}
}

func (d *MealDAO) FindWeek(ctx context.Context, year, week int) ([]Meal, error) {
	var meals []Meal

	result := d.db.WithContext(ctx).
		Preload("Signups").
		Where("year = ? AND week = ?", year, week).
		Order("day_index").
		Find(&meals)
	if result.Error != nil {
		return nil, result.Error
	}

	return meals, nil
}

// Upsert writes a meal row keyed by (year, week, day_index), overwriting
// menu and status of an existing day.
func (d *MealDAO) Upsert(ctx context.Context, meal Meal) (Meal, error) {
	result := d.db.WithContext(ctx).Omit("Signups").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "year"}, {Name: "week"}, {Name: "day_index"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"vorspeise", "hauptgericht", "nachspeise", "kochteam", "status", "updated_at",
		}),
	}).Create(&meal)
	if result.Error != nil {
		return Meal{}, result.Error
	}

	// The conflict path keeps the original id; read the row back so callers
	// always see the stored key.
	var stored Meal
	err := d.db.WithContext(ctx).
		First(&stored, "year = ? AND week = ? AND day_index = ?", meal.Year, meal.Week, meal.DayIndex).
		Error
	if err != nil {
		return Meal{}, err
	}

	return stored, nil
}

// FindOrCreate returns the meal row of a day, creating a bare one when the
// day has no menu yet. Signups reference meals, so the row must exist before
// the first signup.
func (d *MealDAO) FindOrCreate(ctx context.Context, year, week, dayIndex int) (Meal, error) {
	var meal Meal

	err := d.db.WithContext(ctx).
		Where(Meal{Year: year, Week: week, DayIndex: dayIndex}).
		FirstOrCreate(&meal).
		Error
	if err != nil {
		return Meal{}, err
	}

	return meal, nil
}

func (d *MealDAO) UpsertSignup(ctx context.Context, signup MealSignup) (MealSignup, error) {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "meal_id"}, {Name: "member_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"types", "amount", "updated_at",
		}),
	}).Create(&signup)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return MealSignup{}, ErrMealNotFound
		}

		return MealSignup{}, result.Error
	}

	return signup, nil
}
