package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employment links a citizen to the company employing them, with the wage
// used to convert worked shifts into salary payments.
type Employment struct {
	EmploymentID string          `json:"employmentID"` // Primary key (UUID)
	CompanyID    string          `json:"companyID"`
	CitizenID    string          `json:"citizenID"`
	HourlyWage   decimal.Decimal `json:"hourlyWage"`
	AuditFields
}

// Worktime is one recorded shift for an employment. A worktime is paid out
// at most once; PaidTransactionID is set when its salary settles.
type Worktime struct {
	WorktimeID        string    `json:"worktimeID"` // Primary key (UUID)
	EmploymentID      string    `json:"employmentID"`
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
	PaidTransactionID *string   `json:"paidTransactionID,omitempty"`
}

// Hours returns the shift length in hours.
func (w Worktime) Hours() decimal.Decimal {
	return decimal.NewFromFloat(w.End.Sub(w.Start).Hours())
}
