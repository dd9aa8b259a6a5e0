package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lawdesk/advocate-diary/internal/cache"
	"github.com/lawdesk/advocate-diary/internal/config"
	"github.com/lawdesk/advocate-diary/internal/database"
	"github.com/lawdesk/advocate-diary/internal/repository"
	"github.com/lawdesk/advocate-diary/internal/service"
	"github.com/lawdesk/advocate-diary/pkg/logger"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	db      *gorm.DB
	cases   *service.CaseService
	users   *repository.UserRepository
	cache   cache.Cache
	catalog *config.Catalog
	logger  *logger.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(db *gorm.DB, cases *service.CaseService, users *repository.UserRepository, c cache.Cache, catalog *config.Catalog, log *logger.Logger) *Handlers {
	return &Handlers{
		db:      db,
		cases:   cases,
		users:   users,
		cache:   c,
		catalog: catalog,
		logger:  log,
	}
}

type caseRequest struct {
	CaseNumber                   string `json:"case_number"`
	CaseTitle                    string `json:"case_title"`
	CaseType                     string `json:"case_type"`
	Location                     string `json:"location"`
	CompanyName                  string `json:"company_name"`
	UpcomingDate                 string `json:"upcoming_date"`
	Stage                        string `json:"stage"`
	Remarks                      string `json:"remarks"`
	Status                       string `json:"status"`
	ClaimantAdvocateName         string `json:"claimant_advocate_name"`
	ClaimantAdvocateMobileNumber string `json:"claimant_advocate_mobile_number"`
}

func (r *caseRequest) toRecord() database.CaseRecord {
	return database.CaseRecord{
		CaseNumber:                   r.CaseNumber,
		CaseTitle:                    r.CaseTitle,
		CaseType:                     r.CaseType,
		Location:                     r.Location,
		CompanyName:                  r.CompanyName,
		UpcomingDate:                 r.UpcomingDate,
		Stage:                        r.Stage,
		Remarks:                      r.Remarks,
		Status:                       r.Status,
		ClaimantAdvocateName:         r.ClaimantAdvocateName,
		ClaimantAdvocateMobileNumber: r.ClaimantAdvocateMobileNumber,
	}
}

// checkCatalog validates the enum-like fields against the configured
// allow-lists. This stays at the API boundary; the repository stores
// what it is given.
func (h *Handlers) checkCatalog(req *caseRequest) string {
	switch {
	case !h.catalog.AllowedCaseType(req.CaseType):
		return "unknown case type: " + req.CaseType
	case !h.catalog.AllowedLocation(req.Location):
		return "unknown location: " + req.Location
	case !h.catalog.AllowedCompanyName(req.CompanyName):
		return "unknown company name: " + req.CompanyName
	case !h.catalog.AllowedStatus(req.Status):
		return "unknown status: " + req.Status
	}
	return ""
}

// AddCase files a new case
func (h *Handlers) AddCase(c *gin.Context) {
	var req caseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
		return
	}

	if msg := h.checkCatalog(&req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   msg,
		})
		return
	}

	record := req.toRecord()
	if err := h.cases.AddCase(&record); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    record,
	})
}

// SearchCases searches by number, title, company, or any
func (h *Handlers) SearchCases(c *gin.Context) {
	criteria := c.DefaultQuery("by", service.SearchByAny)
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing required parameter: q",
		})
		return
	}

	records, err := h.cases.Search(criteria, query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"count":   len(records),
	})
}

// GetCase returns one case by id
func (h *Handlers) GetCase(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid case ID",
		})
		return
	}

	record, err := h.cases.GetCase(uint(id))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    record,
	})
}

// UpdateCase overwrites all mutable fields of a case
func (h *Handlers) UpdateCase(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid case ID",
		})
		return
	}

	var req caseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
		return
	}

	if msg := h.checkCatalog(&req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   msg,
		})
		return
	}

	if err := h.cases.UpdateCase(uint(id), req.toRecord()); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Case updated successfully.",
	})
}

// ChangeDate reschedules one case's upcoming hearing date
func (h *Handlers) ChangeDate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid case ID",
		})
		return
	}

	var req struct {
		UpcomingDate string `json:"upcoming_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
		return
	}

	msg, err := h.cases.ChangeDate(uint(id), req.UpcomingDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msg,
	})
}

// BulkUpdateDates applies edited hearing dates row by row
func (h *Handlers) BulkUpdateDates(c *gin.Context) {
	var req struct {
		Edits []service.DateEdit `json:"edits" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
		return
	}

	result := h.cases.UpdateEditedRows(req.Edits)

	c.JSON(http.StatusOK, gin.H{
		"success": result.Failed == 0,
		"result":  result,
	})
}

// TodaysCases lists cases with a hearing today
func (h *Handlers) TodaysCases(c *gin.Context) {
	records, err := h.cases.TodaysCases()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"count":   len(records),
	})
}

// CasesByDate lists cases with a hearing on a given date
func (h *Handlers) CasesByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing required parameter: date",
		})
		return
	}

	records, err := h.cases.CasesByDate(date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"count":   len(records),
	})
}

// PendingCases lists cases whose hearing date has arrived or passed
func (h *Handlers) PendingCases(c *gin.Context) {
	records, err := h.cases.PendingCases(c.Query("as_of"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"count":   len(records),
	})
}

// Register creates a new diary login
func (h *Handlers) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.users.Register(req.Username, req.Email, req.Password); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully.",
	})
}

// Login verifies credentials and stamps last_login
func (h *Handlers) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
		return
	}

	user, err := h.users.Login(req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Login successful.",
		"last_login": user.LastLogin,
	})
}

// GetCatalog returns the configured allow-lists and headers
func (h *Handlers) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"locations":        h.catalog.Locations(),
		"case_types":       h.catalog.CaseTypes(),
		"company_names":    h.catalog.CompanyNames(),
		"statuses":         h.catalog.Statuses(),
		"headers":          h.catalog.Headers(),
		"editable_headers": h.catalog.EditableHeaders(),
	})
}

// ReloadCatalog re-reads the catalog file
func (h *Handlers) ReloadCatalog(c *gin.Context) {
	if err := h.catalog.Reload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Catalog reloaded.",
	})
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	var count int64
	dbHealthy := h.db.Model(&database.CaseRecord{}).Count(&count).Error == nil

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": dbHealthy,
		"cache":    h.cache.Stats(),
		"time":     time.Now().Unix(),
	})
}

// CacheStats returns cache statistics
func (h *Handlers) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.cache.Stats(),
	})
}

// respondError maps repository errors to HTTP statuses.
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateCase),
		errors.Is(err, repository.ErrDuplicateDate),
		errors.Is(err, repository.ErrDuplicateUser):
		status = http.StatusConflict
	case errors.Is(err, repository.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
