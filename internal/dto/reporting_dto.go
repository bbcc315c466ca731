package dto

import (
	"time"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	LedgerID     string                    `json:"ledgerID"`
	AsOf         time.Time                 `json:"asOf"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebits  decimal.Decimal           `json:"totalDebits"`
	TotalCredits decimal.Decimal           `json:"totalCredits"`
	Balanced     bool                      `json:"balanced"`
}

// AccountAmountResponse pairs an account with its net amount in a report.
type AccountAmountResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatementResponse represents the profit-and-loss report response
type IncomeStatementResponse struct {
	Revenue       []AccountAmountResponse `json:"revenue"`
	Expenses      []AccountAmountResponse `json:"expenses"`
	TotalRevenue  decimal.Decimal         `json:"totalRevenue"`
	TotalExpenses decimal.Decimal         `json:"totalExpenses"`
	NetIncome     decimal.Decimal         `json:"netIncome"`
}

// BalanceSheetResponse represents the financial-position report response
type BalanceSheetResponse struct {
	Assets           []AccountAmountResponse `json:"assets"`
	Liabilities      []AccountAmountResponse `json:"liabilities"`
	Equity           []AccountAmountResponse `json:"equity"`
	TotalAssets      decimal.Decimal         `json:"totalAssets"`
	TotalLiabilities decimal.Decimal         `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal         `json:"totalEquity"`
	NetIncome        decimal.Decimal         `json:"netIncome"`
	EquationHolds    bool                    `json:"equationHolds"`
}

// ToTrialBalanceResponse converts a domain.TrialBalance to its response DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, row := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit.Amount(),
			Credit:      row.Credit.Amount(),
		}
	}
	return TrialBalanceResponse{
		LedgerID:     tb.LedgerID,
		AsOf:         tb.AsOf,
		Rows:         rows,
		TotalDebits:  tb.TotalDebits.Amount(),
		TotalCredits: tb.TotalCredits.Amount(),
		Balanced:     tb.Balanced,
	}
}

func toAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(amounts))
	for i, a := range amounts {
		res[i] = AccountAmountResponse{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			Name:        a.Name,
			Amount:      a.Amount.Amount(),
		}
	}
	return res
}

// ToIncomeStatementResponse converts a domain.IncomeStatement to its response DTO.
func ToIncomeStatementResponse(is *domain.IncomeStatement) IncomeStatementResponse {
	return IncomeStatementResponse{
		Revenue:       toAccountAmountResponses(is.Revenue),
		Expenses:      toAccountAmountResponses(is.Expenses),
		TotalRevenue:  is.TotalRevenue.Amount(),
		TotalExpenses: is.TotalExpenses.Amount(),
		NetIncome:     is.NetIncome.Amount(),
	}
}

// ToBalanceSheetResponse converts a domain.BalanceSheet to its response DTO.
func ToBalanceSheetResponse(bs *domain.BalanceSheet) BalanceSheetResponse {
	return BalanceSheetResponse{
		Assets:           toAccountAmountResponses(bs.Assets),
		Liabilities:      toAccountAmountResponses(bs.Liabilities),
		Equity:           toAccountAmountResponses(bs.Equity),
		TotalAssets:      bs.TotalAssets.Amount(),
		TotalLiabilities: bs.TotalLiabilities.Amount(),
		TotalEquity:      bs.TotalEquity.Amount(),
		NetIncome:        bs.NetIncome.Amount(),
		EquationHolds:    bs.EquationHolds,
	}
}
