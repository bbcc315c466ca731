package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is the database row for one company's fiscal-year ledger header.
type Ledger struct {
	LedgerID      string           `json:"ledgerID"` // Primary Key (UUID)
	CompanyID     string           `json:"companyID"`
	FiscalYear    int              `json:"fiscalYear"`
	StartDate     time.Time        `json:"startDate"`
	EndDate       time.Time        `json:"endDate"`
	CurrencyCode  string           `json:"currencyCode"`
	Status        string           `json:"status"`
	CurrentPeriod int              `json:"currentPeriod"`
	NetIncome     *decimal.Decimal `json:"netIncome,omitempty"`
	Version       int64            `json:"version"` // Optimistic-lock column
	CreatedAt     time.Time        `json:"createdAt"`
	ClosedAt      *time.Time       `json:"closedAt,omitempty"`
	ClosedBy      string           `json:"closedBy"`
}

// LedgerAccount is the database row for one chart-of-accounts entry together
// with its running balance snapshot.
type LedgerAccount struct {
	AccountID     string          `json:"accountID"` // Primary Key (UUID)
	LedgerID      string          `json:"ledgerID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	NameJa        string          `json:"nameJa"`
	AccountType   string          `json:"accountType"`
	NormalBalance string          `json:"normalBalance"`
	IsActive      bool            `json:"isActive"`
	Balance       decimal.Decimal `json:"balance"`
	AuditFields
}

// LedgerPeriod is the database row for one accounting period.
type LedgerPeriod struct {
	LedgerID  string     `json:"ledgerID"`
	Number    int        `json:"number"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"`
	Status    string     `json:"status"`
	ClosedBy  string     `json:"closedBy"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}
