package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kichoapp/kicho_backend/internal/apperrors"
	"github.com/kichoapp/kicho_backend/internal/core/domain"
	portsrepo "github.com/kichoapp/kicho_backend/internal/core/ports/repositories"
	"github.com/kichoapp/kicho_backend/internal/models"
	"github.com/kichoapp/kicho_backend/internal/utils/mapping"
)

// PgxLedgerRepository persists ledger snapshots: the header row under an
// optimistic version check, child rows replaced wholesale per save.
type PgxLedgerRepository struct {
	BaseRepository
}

// NewPgxLedgerRepository creates a new repository for general ledger data.
func NewPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveLedger writes the full snapshot within one database transaction.
// expectedVersion 0 means the ledger is new and gets inserted; otherwise the
// header update is guarded by the version column and fails with ErrConflict
// when another writer got there first.
func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.GeneralLedger, expectedVersion int64) error {
	header, accounts, periods, postedIDs := mapping.ToLedgerModel(ledger)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if expectedVersion == 0 {
		insertQuery := `
			INSERT INTO ledgers (ledger_id, company_id, fiscal_year, start_date, end_date, currency_code, status, current_period, net_income, version, created_at, closed_at, closed_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11, $12);
		`
		_, err = tx.Exec(ctx, insertQuery,
			header.LedgerID,
			header.CompanyID,
			header.FiscalYear,
			header.StartDate,
			header.EndDate,
			header.CurrencyCode,
			header.Status,
			header.CurrentPeriod,
			header.NetIncome,
			header.CreatedAt,
			header.ClosedAt,
			header.ClosedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: ledger for company %s fiscal year %d", apperrors.ErrDuplicate, header.CompanyID, header.FiscalYear)
			}
			return fmt.Errorf("failed to insert ledger %s: %w", header.LedgerID, err)
		}
	} else {
		updateQuery := `
			UPDATE ledgers
			SET status = $2, current_period = $3, net_income = $4, closed_at = $5, closed_by = $6, version = $7
			WHERE ledger_id = $1 AND version = $8;
		`
		tag, err := tx.Exec(ctx, updateQuery,
			header.LedgerID,
			header.Status,
			header.CurrentPeriod,
			header.NetIncome,
			header.ClosedAt,
			header.ClosedBy,
			expectedVersion+1,
			expectedVersion,
		)
		if err != nil {
			return fmt.Errorf("failed to update ledger %s: %w", header.LedgerID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewConflictError(fmt.Sprintf("ledger %s version %d is stale", header.LedgerID, expectedVersion))
		}
	}

	// Child rows are replaced wholesale; the version guard above makes this safe.
	for _, table := range []string{"ledger_accounts", "ledger_periods", "ledger_posted_entries"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE ledger_id = $1;", table), header.LedgerID); err != nil {
			return fmt.Errorf("failed to clear %s for ledger %s: %w", table, header.LedgerID, err)
		}
	}

	batch := &pgx.Batch{}
	accountQuery := `
		INSERT INTO ledger_accounts (account_id, ledger_id, code, name, name_ja, account_type, normal_balance, is_active, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, account := range accounts {
		batch.Queue(accountQuery,
			account.AccountID,
			account.LedgerID,
			account.Code,
			account.Name,
			account.NameJa,
			account.AccountType,
			account.NormalBalance,
			account.IsActive,
			account.Balance,
			account.CreatedAt,
			account.CreatedBy,
			account.LastUpdatedAt,
			account.LastUpdatedBy,
		)
	}
	periodQuery := `
		INSERT INTO ledger_periods (ledger_id, number, name, start_date, end_date, status, closed_by, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, period := range periods {
		batch.Queue(periodQuery,
			period.LedgerID,
			period.Number,
			period.Name,
			period.StartDate,
			period.EndDate,
			period.Status,
			period.ClosedBy,
			period.ClosedAt,
		)
	}
	postedQuery := `
		INSERT INTO ledger_posted_entries (ledger_id, entry_id)
		VALUES ($1, $2);
	`
	for _, entryID := range postedIDs {
		batch.Queue(postedQuery, header.LedgerID, entryID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to write ledger children for %s: %w", header.LedgerID, err)
	}

	return r.Commit(ctx, tx)
}

// FindLedgerByID retrieves a ledger and all its child rows.
func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.GeneralLedger, error) {
	headerQuery := `
		SELECT ledger_id, company_id, fiscal_year, start_date, end_date, currency_code, status, current_period, net_income, version, created_at, closed_at, closed_by
		FROM ledgers
		WHERE ledger_id = $1;
	`
	var header models.Ledger
	err := r.Pool.QueryRow(ctx, headerQuery, ledgerID).Scan(
		&header.LedgerID,
		&header.CompanyID,
		&header.FiscalYear,
		&header.StartDate,
		&header.EndDate,
		&header.CurrencyCode,
		&header.Status,
		&header.CurrentPeriod,
		&header.NetIncome,
		&header.Version,
		&header.CreatedAt,
		&header.ClosedAt,
		&header.ClosedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: ledger %s", apperrors.ErrNotFound, ledgerID)
		}
		return nil, fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}

	accounts, err := r.findAccounts(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	periods, err := r.findPeriods(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	postedIDs, err := r.findPostedEntryIDs(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	return mapping.ToLedgerDomain(header, accounts, periods, postedIDs)
}

// FindLedgerByCompanyAndYear retrieves the ledger for one company's fiscal year.
func (r *PgxLedgerRepository) FindLedgerByCompanyAndYear(ctx context.Context, companyID string, fiscalYear int) (*domain.GeneralLedger, error) {
	var ledgerID string
	err := r.Pool.QueryRow(ctx,
		`SELECT ledger_id FROM ledgers WHERE company_id = $1 AND fiscal_year = $2;`,
		companyID, fiscalYear,
	).Scan(&ledgerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: ledger for company %s fiscal year %d", apperrors.ErrNotFound, companyID, fiscalYear)
		}
		return nil, fmt.Errorf("failed to find ledger for company %s: %w", companyID, err)
	}
	return r.FindLedgerByID(ctx, ledgerID)
}

// ListLedgersByCompany retrieves all of a company's ledgers, newest fiscal year first.
func (r *PgxLedgerRepository) ListLedgersByCompany(ctx context.Context, companyID string) ([]domain.GeneralLedger, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT ledger_id FROM ledgers WHERE company_id = $1 ORDER BY fiscal_year DESC;`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers for company %s: %w", companyID, err)
	}
	defer rows.Close()

	ledgerIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ledger id for company %s: %w", companyID, err)
		}
		ledgerIDs = append(ledgerIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows for company %s: %w", companyID, err)
	}

	ledgers := make([]domain.GeneralLedger, 0, len(ledgerIDs))
	for _, id := range ledgerIDs {
		ledger, err := r.FindLedgerByID(ctx, id)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, *ledger)
	}
	return ledgers, nil
}

func (r *PgxLedgerRepository) findAccounts(ctx context.Context, ledgerID string) ([]models.LedgerAccount, error) {
	query := `
		SELECT account_id, ledger_id, code, name, name_ja, account_type, normal_balance, is_active, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_accounts
		WHERE ledger_id = $1
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for ledger %s: %w", ledgerID, err)
	}
	defer rows.Close()

	accounts := []models.LedgerAccount{}
	for rows.Next() {
		var account models.LedgerAccount
		if err := rows.Scan(
			&account.AccountID,
			&account.LedgerID,
			&account.Code,
			&account.Name,
			&account.NameJa,
			&account.AccountType,
			&account.NormalBalance,
			&account.IsActive,
			&account.Balance,
			&account.CreatedAt,
			&account.CreatedBy,
			&account.LastUpdatedAt,
			&account.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row for ledger %s: %w", ledgerID, err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *PgxLedgerRepository) findPeriods(ctx context.Context, ledgerID string) ([]models.LedgerPeriod, error) {
	query := `
		SELECT ledger_id, number, name, start_date, end_date, status, closed_by, closed_at
		FROM ledger_periods
		WHERE ledger_id = $1
		ORDER BY number;
	`
	rows, err := r.Pool.Query(ctx, query, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods for ledger %s: %w", ledgerID, err)
	}
	defer rows.Close()

	periods := []models.LedgerPeriod{}
	for rows.Next() {
		var period models.LedgerPeriod
		if err := rows.Scan(
			&period.LedgerID,
			&period.Number,
			&period.Name,
			&period.StartDate,
			&period.EndDate,
			&period.Status,
			&period.ClosedBy,
			&period.ClosedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan period row for ledger %s: %w", ledgerID, err)
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}

func (r *PgxLedgerRepository) findPostedEntryIDs(ctx context.Context, ledgerID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT entry_id FROM ledger_posted_entries WHERE ledger_id = $1;`, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted entries for ledger %s: %w", ledgerID, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan posted entry id for ledger %s: %w", ledgerID, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
