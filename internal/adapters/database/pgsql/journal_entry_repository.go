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
	"github.com/kichoapp/kicho_backend/internal/utils/pagination"
)

// PgxEntryRepository persists journal entries and their lines.
type PgxEntryRepository struct {
	BaseRepository
}

// NewPgxEntryRepository creates a new repository for journal entry data.
func NewPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryHeaderColumns = `entry_id, ledger_id, entry_number, company_id, fiscal_year, currency_code, transaction_date, posting_date, description, source_document_ref, status, approved_at, approved_by, posted_at, posted_by, reversal_entry_id, original_entry_id, created_at, created_by, last_updated_at, last_updated_by`

// SaveEntry inserts a new journal entry with its lines in one transaction.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, ledgerID string, entry domain.JournalEntry) error {
	header, lines := mapping.ToEntryModel(ledgerID, entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	insertQuery := `
		INSERT INTO journal_entries (` + entryHeaderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err = tx.Exec(ctx, insertQuery,
		header.EntryID,
		header.LedgerID,
		header.EntryNumber,
		header.CompanyID,
		header.FiscalYear,
		header.CurrencyCode,
		header.TransactionDate,
		header.PostingDate,
		header.Description,
		header.SourceDocumentRef,
		header.Status,
		header.ApprovedAt,
		header.ApprovedBy,
		header.PostedAt,
		header.PostedBy,
		header.ReversalEntryID,
		header.OriginalEntryID,
		header.CreatedAt,
		header.CreatedBy,
		header.LastUpdatedAt,
		header.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, header.EntryID)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", header.EntryID, err)
	}

	if err := r.insertLines(ctx, tx, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateEntry rewrites an existing entry's header and replaces its lines.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	// ledger_id is immutable once written, so the header update leaves it alone.
	header, lines := mapping.ToEntryModel("", entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	updateQuery := `
		UPDATE journal_entries
		SET posting_date = $2, description = $3, source_document_ref = $4, status = $5,
		    approved_at = $6, approved_by = $7, posted_at = $8, posted_by = $9,
		    reversal_entry_id = $10, original_entry_id = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE entry_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		header.EntryID,
		header.PostingDate,
		header.Description,
		header.SourceDocumentRef,
		header.Status,
		header.ApprovedAt,
		header.ApprovedBy,
		header.PostedAt,
		header.PostedBy,
		header.ReversalEntryID,
		header.OriginalEntryID,
		header.LastUpdatedAt,
		header.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", header.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, header.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, header.EntryID); err != nil {
		return fmt.Errorf("failed to clear lines for entry %s: %w", header.EntryID, err)
	}
	if err := r.insertLines(ctx, tx, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry with its lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryHeaderColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	header, err := r.scanHeader(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := r.findLines(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return mapping.ToEntryDomain(header, lines)
}

// ListEntriesByLedger retrieves a page of a ledger's entries ordered by
// creation time. A non-nil returned token means more entries follow.
func (r *PgxEntryRepository) ListEntriesByLedger(ctx context.Context, ledgerID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `
		SELECT ` + entryHeaderColumns + `
		FROM journal_entries
		WHERE ledger_id = $1
	`
	args := []any{ledgerID}

	if nextToken != nil && *nextToken != "" {
		afterTime, afterID, err := pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, entry_id) > ($2, $3)`
		args = append(args, afterTime, afterID)
	}
	// Fetch one extra row to learn whether a next page exists.
	query += fmt.Sprintf(` ORDER BY created_at, entry_id LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries for ledger %s: %w", ledgerID, err)
	}
	defer rows.Close()

	headers := []models.JournalEntry{}
	for rows.Next() {
		header, err := r.scanHeader(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row for ledger %s: %w", ledgerID, err)
		}
		headers = append(headers, header)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows for ledger %s: %w", ledgerID, err)
	}

	var token *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		encoded := pagination.EncodeEntryToken(last.CreatedAt, last.EntryID)
		token = &encoded
	}

	entries := make([]domain.JournalEntry, 0, len(headers))
	for _, header := range headers {
		lines, err := r.findLines(ctx, header.EntryID)
		if err != nil {
			return nil, nil, err
		}
		entry, err := mapping.ToEntryDomain(header, lines)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, token, nil
}

// NextEntryNumber reserves the next sequence value for a ledger's entry
// numbering. The row update serializes concurrent callers.
func (r *PgxEntryRepository) NextEntryNumber(ctx context.Context, ledgerID string) (int, error) {
	var seq int
	err := r.Pool.QueryRow(ctx,
		`UPDATE ledgers SET entry_seq = entry_seq + 1 WHERE ledger_id = $1 RETURNING entry_seq;`,
		ledgerID,
	).Scan(&seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: ledger %s", apperrors.ErrNotFound, ledgerID)
		}
		return 0, fmt.Errorf("failed to reserve entry number for ledger %s: %w", ledgerID, err)
	}
	return seq, nil
}

func (r *PgxEntryRepository) insertLines(ctx context.Context, tx pgx.Tx, lines []models.EntryLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO entry_lines (line_id, entry_id, account_id, side, amount, memo, tax_code, department_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.EntryID,
			line.AccountID,
			line.Side,
			line.Amount,
			line.Memo,
			line.TaxCode,
			line.DepartmentCode,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to write entry lines: %w", err)
	}
	return nil
}

func (r *PgxEntryRepository) scanHeader(row pgx.Row) (models.JournalEntry, error) {
	var header models.JournalEntry
	err := row.Scan(
		&header.EntryID,
		&header.LedgerID,
		&header.EntryNumber,
		&header.CompanyID,
		&header.FiscalYear,
		&header.CurrencyCode,
		&header.TransactionDate,
		&header.PostingDate,
		&header.Description,
		&header.SourceDocumentRef,
		&header.Status,
		&header.ApprovedAt,
		&header.ApprovedBy,
		&header.PostedAt,
		&header.PostedBy,
		&header.ReversalEntryID,
		&header.OriginalEntryID,
		&header.CreatedAt,
		&header.CreatedBy,
		&header.LastUpdatedAt,
		&header.LastUpdatedBy,
	)
	return header, err
}

func (r *PgxEntryRepository) findLines(ctx context.Context, entryID string) ([]models.EntryLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, side, amount, memo, tax_code, department_code
		FROM entry_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []models.EntryLine{}
	for rows.Next() {
		var line models.EntryLine
		if err := rows.Scan(
			&line.LineID,
			&line.EntryID,
			&line.AccountID,
			&line.Side,
			&line.Amount,
			&line.Memo,
			&line.TaxCode,
			&line.DepartmentCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
