package database

import (
	"time"

	"gorm.io/gorm"
)

// CaseRecord is one row of the advocate's case diary. UpcomingDate and
// PreviousDates hold ISO date strings; PreviousDates is the delimited
// history of superseded hearing dates (see internal/dates).
type CaseRecord struct {
	gorm.Model
	CaseNumber                   string `json:"case_number" gorm:"size:10;uniqueIndex:idx_case_number_location"`
	CaseTitle                    string `json:"case_title" gorm:"size:255"`
	CaseType                     string `json:"case_type" gorm:"size:20"`
	Location                     string `json:"location" gorm:"size:100;uniqueIndex:idx_case_number_location"`
	CompanyName                  string `json:"company_name" gorm:"size:50"`
	UpcomingDate                 string `json:"upcoming_date" gorm:"size:10;index"`
	PreviousDates                string `json:"previous_dates" gorm:"type:text"`
	Stage                        string `json:"stage" gorm:"size:50"`
	Remarks                      string `json:"remarks" gorm:"type:text"`
	Status                       string `json:"status" gorm:"size:20"`
	ClaimantAdvocateName         string `json:"claimant_advocate_name" gorm:"size:100"`
	ClaimantAdvocateMobileNumber string `json:"claimant_advocate_mobile_number" gorm:"size:15"`
}

// User is a diary login. The salt column is kept alongside the bcrypt
// hash to match the original users schema; verification relies on the
// salt embedded in the hash itself.
type User struct {
	gorm.Model
	Username     string     `json:"username" gorm:"size:50;uniqueIndex"`
	Email        string     `json:"email" gorm:"size:255"`
	PasswordHash string     `json:"-"`
	Salt         string     `json:"-"`
	LastLogin    *time.Time `json:"last_login"`
}

func (CaseRecord) TableName() string {
	return "case_records"
}

func (User) TableName() string {
	return "users"
}
