package dto

import (
	"time"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to add an account to a
// ledger's chart of accounts. The account type and normal balance side are
// derived from the code's leading digit, so only the code is accepted here.
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required,accountcode"`
	Name        string `json:"name" binding:"required"`
	NameJa      string `json:"nameJa" binding:"required"`
	PerformedBy string `json:"performedBy" binding:"required"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	NameJa        string          `json:"nameJa"`
	AccountType   string          `json:"accountType"`
	NormalBalance string          `json:"normalBalance"`
	IsActive      bool            `json:"isActive"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currencyCode"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code.String(),
		Name:          acc.Name,
		NameJa:        acc.NameJa,
		AccountType:   string(acc.AccountType),
		NormalBalance: string(acc.NormalBalance),
		IsActive:      acc.IsActive,
		Balance:       acc.Balance.Amount(),
		CurrencyCode:  acc.Balance.Currency().Code,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}
