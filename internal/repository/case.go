package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lawdesk/advocate-diary/internal/database"
	"github.com/lawdesk/advocate-diary/internal/dates"
	"github.com/lawdesk/advocate-diary/pkg/logger"
)

// CaseRepository performs all reads and writes of the case_records
// table. Every mutating call commits before returning; nothing here
// spans user interactions.
type CaseRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCaseRepository(db *gorm.DB, log *logger.Logger) *CaseRepository {
	return &CaseRepository{db: db, log: log}
}

// FindByCaseNumber returns all cases matching the number exactly.
// The same number may exist at several locations.
func (r *CaseRepository) FindByCaseNumber(number string) ([]database.CaseRecord, error) {
	var records []database.CaseRecord
	if err := r.db.Where("case_number = ?", number).Find(&records).Error; err != nil {
		return nil, storageErr("find by case number", err)
	}
	return records, nil
}

// FindByTitle returns cases whose title contains the given substring,
// case-insensitively.
func (r *CaseRepository) FindByTitle(substring string) ([]database.CaseRecord, error) {
	var records []database.CaseRecord
	pattern := "%" + strings.ToLower(substring) + "%"
	if err := r.db.Where("LOWER(case_title) LIKE ?", pattern).Find(&records).Error; err != nil {
		return nil, storageErr("find by title", err)
	}
	return records, nil
}

// FindByCompanyName returns cases whose company name contains the given
// substring, case-insensitively.
func (r *CaseRepository) FindByCompanyName(substring string) ([]database.CaseRecord, error) {
	var records []database.CaseRecord
	pattern := "%" + strings.ToLower(substring) + "%"
	if err := r.db.Where("LOWER(company_name) LIKE ?", pattern).Find(&records).Error; err != nil {
		return nil, storageErr("find by company name", err)
	}
	return records, nil
}

// FindByNumberOrTitle returns the first case whose number matches q
// exactly or whose title contains q.
func (r *CaseRepository) FindByNumberOrTitle(q string) (*database.CaseRecord, error) {
	var record database.CaseRecord
	pattern := "%" + strings.ToLower(q) + "%"
	err := r.db.Where("case_number = ? OR LOWER(case_title) LIKE ?", q, pattern).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("find by number or title", err)
	}
	return &record, nil
}

// Exists reports whether a case with this number is already filed at
// this location.
func (r *CaseRepository) Exists(caseNumber, location string) (bool, error) {
	var count int64
	err := r.db.Model(&database.CaseRecord{}).
		Where("case_number = ? AND location = ?", caseNumber, location).
		Count(&count).Error
	if err != nil {
		return false, storageErr("existence check", err)
	}
	return count > 0, nil
}

// FindByDate returns all cases listed for the given hearing date.
func (r *CaseRepository) FindByDate(date string) ([]database.CaseRecord, error) {
	var records []database.CaseRecord
	if err := r.db.Where("upcoming_date = ?", date).Find(&records).Error; err != nil {
		return nil, storageErr("find by date", err)
	}
	return records, nil
}

// FindPending returns cases whose hearing date is asOf or earlier.
// ISO date strings order correctly under string comparison.
func (r *CaseRepository) FindPending(asOf string) ([]database.CaseRecord, error) {
	var records []database.CaseRecord
	err := r.db.Where("upcoming_date <> '' AND upcoming_date <= ?", asOf).
		Order("upcoming_date").
		Find(&records).Error
	if err != nil {
		return nil, storageErr("find pending", err)
	}
	return records, nil
}

// Insert files a new case. The duplicate check and the insert run in
// one transaction; the unique index on (case_number, location) is the
// backstop for anything that slips past it.
func (r *CaseRepository) Insert(record *database.CaseRecord) error {
	if record.CaseNumber == "" {
		return fmt.Errorf("%w: case number", ErrValidation)
	}
	if record.CaseTitle == "" {
		return fmt.Errorf("%w: case title", ErrValidation)
	}
	if record.UpcomingDate != "" && !dates.Valid(record.UpcomingDate) {
		return fmt.Errorf("%w: upcoming date must be %s", ErrValidation, dates.Layout)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&database.CaseRecord{}).
			Where("case_number = ? AND location = ?", record.CaseNumber, record.Location).
			Count(&count).Error
		if err != nil {
			return storageErr("existence check", err)
		}
		if count > 0 {
			return ErrDuplicateCase
		}

		if err := tx.Create(record).Error; err != nil {
			return storageErr("insert case", err)
		}

		r.log.Info("case filed",
			"case_number", record.CaseNumber,
			"location", record.Location,
		)
		return nil
	})
}

// UpdateFull overwrites every mutable field of the case, including
// previous_dates. Callers that need the date history maintained must go
// through ApplyDateChange instead.
func (r *CaseRepository) UpdateFull(id uint, record database.CaseRecord) error {
	result := r.db.Model(&database.CaseRecord{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"case_number":                     record.CaseNumber,
			"case_title":                      record.CaseTitle,
			"case_type":                       record.CaseType,
			"location":                        record.Location,
			"company_name":                    record.CompanyName,
			"upcoming_date":                   record.UpcomingDate,
			"previous_dates":                  record.PreviousDates,
			"stage":                           record.Stage,
			"remarks":                         record.Remarks,
			"status":                          record.Status,
			"claimant_advocate_name":          record.ClaimantAdvocateName,
			"claimant_advocate_mobile_number": record.ClaimantAdvocateMobileNumber,
		})
	if result.Error != nil {
		return storageErr("update case", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LookupByID fetches a single case.
func (r *CaseRepository) LookupByID(id uint) (*database.CaseRecord, error) {
	var record database.CaseRecord
	if err := r.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("lookup by id", err)
	}
	return &record, nil
}

// ApplyDateChange reschedules a case's upcoming hearing date while
// maintaining the date history. The current date is merged into the
// history first, then the new date is checked against it; a date that
// was ever used for this case is rejected with ErrDuplicateDate and
// nothing is written. The whole read-merge-write runs in one
// transaction with the row locked.
func (r *CaseRepository) ApplyDateChange(caseID uint, newDate string) (string, error) {
	if !dates.Valid(newDate) {
		return "", fmt.Errorf("%w: upcoming date must be %s", ErrValidation, dates.Layout)
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var record database.CaseRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, caseID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return storageErr("fetch case for date change", err)
		}

		history := dates.Parse(record.PreviousDates)
		history = dates.Merge(history, record.UpcomingDate)

		if dates.Contains(history, newDate) {
			return ErrDuplicateDate
		}

		err = tx.Model(&database.CaseRecord{}).Where("id = ?", caseID).
			Updates(map[string]interface{}{
				"upcoming_date":  newDate,
				"previous_dates": dates.Join(history),
			}).Error
		if err != nil {
			return storageErr("apply date change", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	r.log.Info("hearing rescheduled", "case_id", caseID, "upcoming_date", newDate)
	return "Case updated successfully.", nil
}
