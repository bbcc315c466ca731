package repositories

import (
	"context"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
)

// LedgerReader defines read operations for general ledger data.
type LedgerReader interface {
	// FindLedgerByID retrieves a ledger snapshot by its unique identifier.
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.GeneralLedger, error)

	// FindLedgerByCompanyAndYear retrieves the ledger for one company's fiscal year.
	FindLedgerByCompanyAndYear(ctx context.Context, companyID string, fiscalYear int) (*domain.GeneralLedger, error)

	// ListLedgersByCompany retrieves all ledgers belonging to a company, newest fiscal year first.
	ListLedgersByCompany(ctx context.Context, companyID string) ([]domain.GeneralLedger, error)
}

// LedgerWriter defines write operations for general ledger data.
type LedgerWriter interface {
	// SaveLedger persists a full ledger snapshot (accounts, periods, balances,
	// posted-entry ids). expectedVersion is the version the caller loaded; the
	// save fails with apperrors.ErrConflict when the stored version differs,
	// and the stored version is bumped on success.
	SaveLedger(ctx context.Context, ledger domain.GeneralLedger, expectedVersion int64) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
// This is a facade for clients that need access to all operations.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
