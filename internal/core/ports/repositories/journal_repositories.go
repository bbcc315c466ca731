package repositories

import (
	"context"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
)

// EntryReader defines read operations for journal entry data.
type EntryReader interface {
	// FindEntryByID retrieves a specific journal entry, lines included.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByLedger retrieves a paginated list of entries for a ledger
	// using token-based pagination. It returns the entries, a token for the
	// next page, and an error.
	ListEntriesByLedger(ctx context.Context, ledgerID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// NextEntryNumber reserves the next sequential entry number for a ledger.
	NextEntryNumber(ctx context.Context, ledgerID string) (int, error)
}

// EntryWriter defines write operations for journal entry data.
type EntryWriter interface {
	// SaveEntry persists a new journal entry and its lines.
	SaveEntry(ctx context.Context, ledgerID string, entry domain.JournalEntry) error

	// UpdateEntry replaces a previously saved entry's row and lines.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error
}

// EntryRepositoryFacade combines all journal-entry repository interfaces.
// This is a facade for clients that need access to all operations.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
