package services

import (
	"context"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	"github.com/kichoapp/kicho_backend/internal/dto"
)

// LedgerReaderSvc defines read operations for general ledger data.
type LedgerReaderSvc interface {
	// GetLedgerByID retrieves a ledger by its unique identifier.
	GetLedgerByID(ctx context.Context, ledgerID string) (*domain.GeneralLedger, error)

	// GetLedgerByCompanyAndYear retrieves the ledger for one company's fiscal year.
	GetLedgerByCompanyAndYear(ctx context.Context, companyID string, fiscalYear int) (*domain.GeneralLedger, error)

	// ListLedgersByCompany retrieves all ledgers belonging to a company.
	ListLedgersByCompany(ctx context.Context, companyID string) ([]domain.GeneralLedger, error)
}

// LedgerWriterSvc defines chart-of-accounts and ledger creation operations.
type LedgerWriterSvc interface {
	// CreateLedger opens a new fiscal-year ledger for a company.
	CreateLedger(ctx context.Context, req dto.CreateLedgerRequest) (*domain.GeneralLedger, error)

	// AddAccount adds an account to a ledger's chart of accounts.
	AddAccount(ctx context.Context, ledgerID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// DeactivateAccount marks a zero-balance account as inactive.
	DeactivateAccount(ctx context.Context, ledgerID, accountID, performedBy string) error

	// ReactivateAccount marks a previously deactivated account as active again.
	ReactivateAccount(ctx context.Context, ledgerID, accountID, performedBy string) error
}

// LedgerClosingSvc defines period and fiscal-year lifecycle operations.
type LedgerClosingSvc interface {
	// InitializePeriods divides the fiscal year into the requested number of periods.
	InitializePeriods(ctx context.Context, ledgerID string, count int) (*domain.GeneralLedger, error)

	// OpenPeriod opens an accounting period for posting.
	OpenPeriod(ctx context.Context, ledgerID string, number int) error

	// ClosePeriod soft- or hard-closes an accounting period.
	ClosePeriod(ctx context.Context, ledgerID string, number int, performedBy string, hard bool) error

	// BeginClosing freezes the ledger for the year-end closing procedure.
	BeginClosing(ctx context.Context, ledgerID string) error

	// CloseFiscalYear computes net income and permanently closes the books.
	CloseFiscalYear(ctx context.Context, ledgerID, performedBy string) (*domain.GeneralLedger, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerClosingSvc
}
