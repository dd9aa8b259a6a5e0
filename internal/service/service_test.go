package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawdesk/advocate-diary/internal/cache"
	"github.com/lawdesk/advocate-diary/internal/database"
	"github.com/lawdesk/advocate-diary/internal/repository"
	"github.com/lawdesk/advocate-diary/pkg/logger"
)

func newService(t *testing.T) (*CaseService, cache.Cache) {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	log, err := logger.NewLogger("error", "json")
	require.NoError(t, err)

	c := cache.NewCache(100, 30*time.Minute)
	return NewCaseService(repository.NewCaseRepository(db, log), c, log), c
}

func addCase(t *testing.T, s *CaseService, number, date string) *database.CaseRecord {
	t.Helper()

	record := &database.CaseRecord{
		CaseNumber:   number,
		CaseTitle:    "Title " + number,
		CaseType:     "MACT",
		Location:     "Kanpur Nagar - North",
		CompanyName:  "BAGIC",
		UpcomingDate: date,
		Status:       "OPEN",
	}
	require.NoError(t, s.AddCase(record))
	return record
}

func TestSearchDispatch(t *testing.T) {
	s, _ := newService(t)
	addCase(t, s, "C100", "2024-01-10")

	tests := []struct {
		name     string
		criteria string
		query    string
		want     int
	}{
		{"by number", SearchByNumber, "C100", 1},
		{"by number misses", SearchByNumber, "C999", 0},
		{"by title substring", SearchByTitle, "title c1", 1},
		{"by company substring", SearchByCompany, "bagic", 1},
		{"any matches number", SearchByAny, "C100", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := s.Search(tt.criteria, tt.query)
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}

	_, err := s.Search("judge", "anything")
	assert.ErrorIs(t, err, repository.ErrValidation)

	_, err = s.Search(SearchByAny, "no such case")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCasesByDateUsesCache(t *testing.T) {
	s, c := newService(t)
	addCase(t, s, "C100", "2024-01-10")

	records, err := s.CasesByDate("2024-01-10")
	require.NoError(t, err)
	require.Len(t, records, 1)

	again, err := s.CasesByDate("2024-01-10")
	require.NoError(t, err)
	require.Len(t, again, 1)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)

	_, err = s.CasesByDate("not-a-date")
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestAddCaseInvalidatesLists(t *testing.T) {
	s, _ := newService(t)
	addCase(t, s, "C100", "2024-01-10")

	records, err := s.CasesByDate("2024-01-10")
	require.NoError(t, err)
	require.Len(t, records, 1)

	addCase(t, s, "C200", "2024-01-10")

	records, err = s.CasesByDate("2024-01-10")
	require.NoError(t, err)
	assert.Len(t, records, 2, "cached list must not survive an insert for the same date")
}

func TestChangeDateRefreshesBothDates(t *testing.T) {
	s, _ := newService(t)
	record := addCase(t, s, "C100", "2024-01-10")

	// Warm both list views.
	_, err := s.CasesByDate("2024-01-10")
	require.NoError(t, err)
	_, err = s.PendingCases("2024-01-10")
	require.NoError(t, err)

	msg, err := s.ChangeDate(record.ID, "2024-02-15")
	require.NoError(t, err)
	assert.Equal(t, "Case updated successfully.", msg)

	old, err := s.CasesByDate("2024-01-10")
	require.NoError(t, err)
	assert.Empty(t, old)

	pending, err := s.PendingCases("2024-01-10")
	require.NoError(t, err)
	assert.Empty(t, pending)

	moved, err := s.CasesByDate("2024-02-15")
	require.NoError(t, err)
	assert.Len(t, moved, 1)
}

func TestUpdateEditedRows(t *testing.T) {
	s, _ := newService(t)
	a := addCase(t, s, "C100", "2024-01-10")
	b := addCase(t, s, "C200", "2024-01-10")

	result := s.UpdateEditedRows([]DateEdit{
		{CaseID: a.ID, UpcomingDate: "2024-02-15"},
		{CaseID: b.ID, UpcomingDate: "2024-01-10"}, // current date, rejected by merge-then-check
		{CaseID: 9999, UpcomingDate: "2024-02-15"}, // unknown case
	})

	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, "1 case(s) updated, 2 failed.", result.Summary)
	require.Len(t, result.Rows, 3)

	assert.True(t, result.Rows[0].Success)
	assert.False(t, result.Rows[1].Success)
	assert.False(t, result.Rows[2].Success)

	// One row failing does not roll back the others.
	got, err := s.GetCase(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-15", got.UpcomingDate)
	assert.Equal(t, "2024-01-10", got.PreviousDates)

	untouched, err := s.GetCase(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", untouched.UpcomingDate)

	// The refreshed cache serves the post-update lists.
	moved, err := s.CasesByDate("2024-02-15")
	require.NoError(t, err)
	assert.Len(t, moved, 1)
}

func TestUpdateCaseOverwrites(t *testing.T) {
	s, _ := newService(t)
	record := addCase(t, s, "C100", "2024-01-10")

	updated := *record
	updated.Stage = "Arguments"
	updated.UpcomingDate = "2024-03-01"
	require.NoError(t, s.UpdateCase(record.ID, updated))

	got, err := s.GetCase(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arguments", got.Stage)
	assert.Equal(t, "2024-03-01", got.UpcomingDate)
	assert.Empty(t, got.PreviousDates, "full overwrite bypasses the date-history rule")

	assert.ErrorIs(t, s.UpdateCase(9999, updated), repository.ErrNotFound)
}
