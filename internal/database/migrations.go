package database

import (
	"gorm.io/gorm"
)

// createIndexes creates database indexes
func createIndexes(db *gorm.DB) error {
	// Index for date-range queries (today's list, pending cases)
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_case_records_upcoming_date
		ON case_records(upcoming_date)
	`).Error; err != nil {
		return err
	}

	// Backstop for the application-level duplicate check
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_case_number_location
		ON case_records(case_number, location)
	`).Error; err != nil {
		return err
	}

	return nil
}
