package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

// Catalog is the set of allowed values for the enum-like case fields,
// plus the display metadata the table views use. It is loaded once at
// startup and passed to constructors explicitly; Reload re-reads the
// backing file in place.
type Catalog struct {
	mu   sync.RWMutex
	v    *viper.Viper
	path string
}

// Reference lists from the deployed diary.
var (
	defaultLocations = []string{
		"Farrukhabad", "Kanpur Nagar - North", "Kanpur Nagar - South", "Kannauj",
	}
	defaultCaseTypes = []string{"MACT", "WCC", "DCF", "PLA"}
	defaultCompanies = []string{
		"BAGIC", "SGIC", "OIC", "UIIC", "NIC", "ICICI", "UNIVERSAL", "MAGMA",
		"TAGIC", "CHOLA MS", "FUTURE", "KOTAK", "ACKO", "SBI", "HDFC",
		"RELIANCE", "LIBERTY", "IFFCO", "ZUNO",
	}
	defaultStatuses = []string{"OPEN", "COMPROMISED", "DD", "AWARD"}
	defaultHeaders  = []string{
		"ID", "Case Number", "Case Title", "Case Type", "Location",
		"Company Name", "Upcoming Date", "Previous Dates", "Stage",
		"Remarks", "Status", "Claimant Advocate Name",
		"Claimant Advocate Mobile Number",
	}
	defaultEditableHeaders = []string{"Upcoming Date", "Stage"}
)

// LoadCatalog reads the catalog file at path. A missing file is not an
// error; the built-in defaults apply and Save can create it later.
func LoadCatalog(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("locations", defaultLocations)
	v.SetDefault("case_types", defaultCaseTypes)
	v.SetDefault("company_names", defaultCompanies)
	v.SetDefault("statuses", defaultStatuses)
	v.SetDefault("headers", defaultHeaders)
	v.SetDefault("editable_headers", defaultEditableHeaders)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}
	}

	return &Catalog{v: v, path: path}, nil
}

// Reload re-reads the catalog file, replacing the in-memory lists.
func (c *Catalog) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return fmt.Errorf("failed to reload catalog %s: %w", c.path, err)
		}
	}
	return nil
}

// Save writes the current catalog (defaults included) back to its file.
func (c *Catalog) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", c.path, err)
	}
	return nil
}

func (c *Catalog) Locations() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetStringSlice("locations")
}

func (c *Catalog) CaseTypes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetStringSlice("case_types")
}

func (c *Catalog) CompanyNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetStringSlice("company_names")
}

func (c *Catalog) Statuses() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetStringSlice("statuses")
}

func (c *Catalog) Headers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetStringSlice("headers")
}

func (c *Catalog) EditableHeaders() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetStringSlice("editable_headers")
}

// AllowedLocation reports whether loc is in the configured list.
// Empty values pass; requiredness is the repository's concern.
func (c *Catalog) AllowedLocation(loc string) bool {
	return loc == "" || contains(c.Locations(), loc)
}

func (c *Catalog) AllowedCaseType(t string) bool {
	return t == "" || contains(c.CaseTypes(), t)
}

func (c *Catalog) AllowedCompanyName(name string) bool {
	return name == "" || contains(c.CompanyNames(), name)
}

func (c *Catalog) AllowedStatus(s string) bool {
	return s == "" || contains(c.Statuses(), s)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
