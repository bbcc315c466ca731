package services

import (
	"context"
	"time"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
)

// ReportingSvcFacade defines report generation over a ledger's balances.
type ReportingSvcFacade interface {
	// GetTrialBalance lists every account balance on its normal side and
	// verifies total debits equal total credits.
	GetTrialBalance(ctx context.Context, ledgerID string, asOf time.Time) (*domain.TrialBalance, error)

	// GetIncomeStatement builds the profit-and-loss report.
	GetIncomeStatement(ctx context.Context, ledgerID string) (*domain.IncomeStatement, error)

	// GetBalanceSheet builds the financial-position report and audits the
	// accounting equation.
	GetBalanceSheet(ctx context.Context, ledgerID string) (*domain.BalanceSheet, error)
}
