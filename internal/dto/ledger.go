package dto

import (
	"time"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerRequest defines the data needed to open a fiscal-year ledger.
type CreateLedgerRequest struct {
	CompanyID    string    `json:"companyID" binding:"required"`
	FiscalYear   int       `json:"fiscalYear" binding:"required,min=1900,max=2200"`
	StartDate    time.Time `json:"startDate" binding:"required"`
	EndDate      time.Time `json:"endDate" binding:"required"`
	CurrencyCode string    `json:"currencyCode" binding:"required,len=3"`
	PerformedBy  string    `json:"performedBy" binding:"required"`
}

// InitializePeriodsRequest defines the period layout for a ledger.
type InitializePeriodsRequest struct {
	Count       int    `json:"count" binding:"required,min=1,max=12"`
	PerformedBy string `json:"performedBy" binding:"required"`
}

// ClosePeriodRequest defines the data needed to close one accounting period.
type ClosePeriodRequest struct {
	Hard        bool   `json:"hard"`
	PerformedBy string `json:"performedBy" binding:"required"`
}

// PerformedByRequest carries the acting user for operations with no other body.
type PerformedByRequest struct {
	PerformedBy string `json:"performedBy" binding:"required"`
}

// PeriodResponse defines the data returned for one accounting period.
type PeriodResponse struct {
	Number    int        `json:"number"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"`
	Status    string     `json:"status"`
	ClosedBy  string     `json:"closedBy,omitempty"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}

// LedgerResponse defines the data returned for a general ledger.
type LedgerResponse struct {
	LedgerID      string            `json:"ledgerID"`
	CompanyID     string            `json:"companyID"`
	FiscalYear    int               `json:"fiscalYear"`
	StartDate     time.Time         `json:"startDate"`
	EndDate       time.Time         `json:"endDate"`
	CurrencyCode  string            `json:"currencyCode"`
	Status        string            `json:"status"`
	CurrentPeriod int               `json:"currentPeriod"`
	Periods       []PeriodResponse  `json:"periods"`
	Accounts      []AccountResponse `json:"accounts"`
	NetIncome     *decimal.Decimal  `json:"netIncome,omitempty"`
	Version       int64             `json:"version"`
	CreatedAt     time.Time         `json:"createdAt"`
	ClosedAt      *time.Time        `json:"closedAt,omitempty"`
	ClosedBy      string            `json:"closedBy,omitempty"`
}

// ToPeriodResponse converts a domain.AccountingPeriod to PeriodResponse DTO.
func ToPeriodResponse(p domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		Number:    p.Number,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    string(p.Status),
		ClosedBy:  p.ClosedBy,
		ClosedAt:  p.ClosedAt,
	}
}

// ToLedgerResponse converts a domain.GeneralLedger to LedgerResponse DTO.
func ToLedgerResponse(g *domain.GeneralLedger) LedgerResponse {
	periods := make([]PeriodResponse, len(g.Periods))
	for i, p := range g.Periods {
		periods[i] = ToPeriodResponse(p)
	}
	accounts := make([]AccountResponse, 0, len(g.Accounts))
	for _, a := range g.Accounts {
		accounts = append(accounts, ToAccountResponse(&a))
	}
	resp := LedgerResponse{
		LedgerID:      g.LedgerID,
		CompanyID:     g.CompanyID,
		FiscalYear:    g.FiscalYear,
		StartDate:     g.StartDate,
		EndDate:       g.EndDate,
		CurrencyCode:  g.Currency.Code,
		Status:        string(g.Status),
		CurrentPeriod: g.CurrentPeriod,
		Periods:       periods,
		Accounts:      accounts,
		Version:       g.Version,
		CreatedAt:     g.CreatedAt,
		ClosedAt:      g.ClosedAt,
		ClosedBy:      g.ClosedBy,
	}
	if g.NetIncome != nil {
		amount := g.NetIncome.Amount()
		resp.NetIncome = &amount
	}
	return resp
}

// ToListLedgerResponse converts a slice of domain.GeneralLedger to LedgerResponse DTOs.
func ToListLedgerResponse(ledgers []domain.GeneralLedger) []LedgerResponse {
	res := make([]LedgerResponse, len(ledgers))
	for i := range ledgers {
		res[i] = ToLedgerResponse(&ledgers[i])
	}
	return res
}
