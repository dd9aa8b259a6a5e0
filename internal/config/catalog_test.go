package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogDefaults(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join(t.TempDir(), "catalog.yaml"))
	require.NoError(t, err)

	assert.Contains(t, catalog.Locations(), "Kanpur Nagar - North")
	assert.Contains(t, catalog.CaseTypes(), "MACT")
	assert.Contains(t, catalog.CompanyNames(), "BAGIC")
	assert.Contains(t, catalog.Statuses(), "OPEN")
	assert.Contains(t, catalog.Headers(), "Upcoming Date")
	assert.Equal(t, []string{"Upcoming Date", "Stage"}, catalog.EditableHeaders())
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "locations:\n  - Lucknow\ncase_types:\n  - MACT\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Lucknow"}, catalog.Locations())
	// Keys absent from the file keep their defaults.
	assert.Contains(t, catalog.Statuses(), "AWARD")
}

func TestCatalogReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locations:\n  - Lucknow\n"), 0644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lucknow"}, catalog.Locations())

	require.NoError(t, os.WriteFile(path, []byte("locations:\n  - Lucknow\n  - Agra\n"), 0644))
	require.NoError(t, catalog.Reload())
	assert.Equal(t, []string{"Lucknow", "Agra"}, catalog.Locations())
}

func TestCatalogSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.NoError(t, catalog.Save())

	reloaded, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, catalog.Locations(), reloaded.Locations())
	assert.Equal(t, catalog.EditableHeaders(), reloaded.EditableHeaders())
}

func TestAllowedValues(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join(t.TempDir(), "catalog.yaml"))
	require.NoError(t, err)

	assert.True(t, catalog.AllowedLocation("Kannauj"))
	assert.False(t, catalog.AllowedLocation("Mumbai"))
	assert.True(t, catalog.AllowedLocation(""), "empty values are the repository's concern")

	assert.True(t, catalog.AllowedCaseType("WCC"))
	assert.False(t, catalog.AllowedCaseType("CIVIL"))

	assert.True(t, catalog.AllowedCompanyName("HDFC"))
	assert.False(t, catalog.AllowedCompanyName("NOPE"))

	assert.True(t, catalog.AllowedStatus("DD"))
	assert.False(t, catalog.AllowedStatus("CLOSED"))
}
