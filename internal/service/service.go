// Package service implements the diary use cases on top of the
// repositories: filing cases, the search and list views, and the bulk
// date update driven by an edited table.
package service

import (
	"fmt"

	"github.com/lawdesk/advocate-diary/internal/cache"
	"github.com/lawdesk/advocate-diary/internal/database"
	"github.com/lawdesk/advocate-diary/internal/dates"
	"github.com/lawdesk/advocate-diary/internal/repository"
	"github.com/lawdesk/advocate-diary/pkg/logger"
)

// Search criteria accepted by Search.
const (
	SearchByNumber  = "number"
	SearchByTitle   = "title"
	SearchByCompany = "company"
	SearchByAny     = "any"
)

type CaseService struct {
	repo  *repository.CaseRepository
	cache cache.Cache
	log   *logger.Logger
}

func NewCaseService(repo *repository.CaseRepository, c cache.Cache, log *logger.Logger) *CaseService {
	return &CaseService{repo: repo, cache: c, log: log}
}

// AddCase files a new case and invalidates any list views it would
// appear in.
func (s *CaseService) AddCase(record *database.CaseRecord) error {
	if err := s.repo.Insert(record); err != nil {
		return err
	}
	s.invalidateDate(record.UpcomingDate)
	return nil
}

// Search dispatches to the repository search matching the criteria.
func (s *CaseService) Search(criteria, query string) ([]database.CaseRecord, error) {
	switch criteria {
	case SearchByNumber:
		return s.repo.FindByCaseNumber(query)
	case SearchByTitle:
		return s.repo.FindByTitle(query)
	case SearchByCompany:
		return s.repo.FindByCompanyName(query)
	case SearchByAny:
		record, err := s.repo.FindByNumberOrTitle(query)
		if err != nil {
			return nil, err
		}
		return []database.CaseRecord{*record}, nil
	default:
		return nil, fmt.Errorf("%w: unknown search criteria %q", repository.ErrValidation, criteria)
	}
}

// GetCase fetches one case by id.
func (s *CaseService) GetCase(id uint) (*database.CaseRecord, error) {
	return s.repo.LookupByID(id)
}

// TodaysCases lists cases with a hearing today.
func (s *CaseService) TodaysCases() ([]database.CaseRecord, error) {
	return s.CasesByDate(dates.Today())
}

// CasesByDate lists cases with a hearing on the given date, serving
// from cache when possible.
func (s *CaseService) CasesByDate(date string) ([]database.CaseRecord, error) {
	if !dates.Valid(date) {
		return nil, fmt.Errorf("%w: date must be %s", repository.ErrValidation, dates.Layout)
	}

	key := cache.DateKey(date)
	if records, found := s.cache.Get(key); found {
		return records, nil
	}

	records, err := s.repo.FindByDate(date)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, records)
	return records, nil
}

// PendingCases lists cases whose hearing date is asOf or earlier.
func (s *CaseService) PendingCases(asOf string) ([]database.CaseRecord, error) {
	if asOf == "" {
		asOf = dates.Today()
	}
	if !dates.Valid(asOf) {
		return nil, fmt.Errorf("%w: date must be %s", repository.ErrValidation, dates.Layout)
	}

	key := cache.PendingKey(asOf)
	if records, found := s.cache.Get(key); found {
		return records, nil
	}

	records, err := s.repo.FindPending(asOf)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, records)
	return records, nil
}

// UpdateCase overwrites all mutable fields of a case. The date history
// is written as given; this is the raw table-edit path.
func (s *CaseService) UpdateCase(id uint, record database.CaseRecord) error {
	old, err := s.repo.LookupByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateFull(id, record); err != nil {
		return err
	}
	s.invalidateDate(old.UpcomingDate)
	s.invalidateDate(record.UpcomingDate)
	return nil
}

// ChangeDate reschedules one case through the date-history rule.
func (s *CaseService) ChangeDate(id uint, newDate string) (string, error) {
	old, err := s.repo.LookupByID(id)
	if err != nil {
		return "", err
	}

	msg, err := s.repo.ApplyDateChange(id, newDate)
	if err != nil {
		return "", err
	}

	s.invalidateDate(old.UpcomingDate)
	s.invalidateDate(newDate)
	return msg, nil
}

// DateEdit is one row of an edited table: the case and its new hearing
// date.
type DateEdit struct {
	CaseID       uint   `json:"case_id" binding:"required"`
	UpcomingDate string `json:"upcoming_date" binding:"required"`
}

// RowResult is the outcome for one edited row.
type RowResult struct {
	CaseID  uint   `json:"case_id"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BatchResult aggregates a bulk date update.
type BatchResult struct {
	Rows    []RowResult `json:"rows"`
	Updated int         `json:"updated"`
	Failed  int         `json:"failed"`
	Summary string      `json:"summary"`
}

// UpdateEditedRows applies the date-history rule to each edited row
// independently; one row failing does not stop the rest. Afterwards the
// affected dates are re-read from the repository so list views serve
// fresh data.
func (s *CaseService) UpdateEditedRows(edits []DateEdit) BatchResult {
	result := BatchResult{Rows: make([]RowResult, 0, len(edits))}
	affected := make(map[string]struct{})

	for _, edit := range edits {
		old, err := s.repo.LookupByID(edit.CaseID)
		if err == nil && old.UpcomingDate != "" {
			affected[old.UpcomingDate] = struct{}{}
		}

		msg, err := s.repo.ApplyDateChange(edit.CaseID, edit.UpcomingDate)
		if err != nil {
			result.Failed++
			result.Rows = append(result.Rows, RowResult{
				CaseID:  edit.CaseID,
				Success: false,
				Message: err.Error(),
			})
			continue
		}

		result.Updated++
		affected[edit.UpcomingDate] = struct{}{}
		result.Rows = append(result.Rows, RowResult{
			CaseID:  edit.CaseID,
			Success: true,
			Message: msg,
		})
	}

	s.refreshDates(affected)

	result.Summary = fmt.Sprintf("%d case(s) updated, %d failed.", result.Updated, result.Failed)
	s.log.Info("bulk date update", "updated", result.Updated, "failed", result.Failed)
	return result
}

// refreshDates re-reads each affected date list and replaces its cache
// entry. Pending lists depend on every date, so they are dropped
// wholesale.
func (s *CaseService) refreshDates(affected map[string]struct{}) {
	for date := range affected {
		records, err := s.repo.FindByDate(date)
		if err != nil {
			s.log.Error("failed to refresh date list", "date", date, "error", err)
			s.cache.Delete(cache.DateKey(date))
			continue
		}
		s.cache.Set(cache.DateKey(date), records)
	}
	s.cache.DeletePrefix(cache.PendingPrefix)
}

func (s *CaseService) invalidateDate(date string) {
	if date != "" {
		s.cache.Delete(cache.DateKey(date))
	}
	s.cache.DeletePrefix(cache.PendingPrefix)
}
