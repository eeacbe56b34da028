package dao

import "gorm.io/gorm"

// InitTables creates the schema via gorm's migrator. Deployments normally
// run the SQL migrations in internal/db instead; this exists for throwaway
// databases in tests.
func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Member{},
		&Event{},
		&Registration{},
		&Meal{},
		&MealSignup{},
		&Announcement{},
		&Expense{},
	)
}
