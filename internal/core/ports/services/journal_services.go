package services

import (
	"context"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	"github.com/kichoapp/kicho_backend/internal/dto"
)

// EntryReaderSvc defines read operations for journal entry data.
type EntryReaderSvc interface {
	// GetEntryByID retrieves a specific journal entry by its unique identifier.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByLedger retrieves a paginated list of entries for a ledger
	// using token-based pagination. It returns the entries, a token for the
	// next page, and an error.
	ListEntriesByLedger(ctx context.Context, ledgerID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// EntryWriterSvc defines journal entry lifecycle operations.
type EntryWriterSvc interface {
	// CreateEntry creates a draft journal entry with its lines.
	CreateEntry(ctx context.Context, ledgerID string, req dto.CreateEntryRequest) (*domain.JournalEntry, error)

	// SubmitEntry moves a draft entry into pending approval.
	SubmitEntry(ctx context.Context, entryID, performedBy string) (*domain.JournalEntry, error)

	// ApproveEntry approves a pending entry.
	ApproveEntry(ctx context.Context, entryID, performedBy string) (*domain.JournalEntry, error)

	// PostEntry finalizes an entry and folds it into the ledger's balances.
	PostEntry(ctx context.Context, ledgerID, entryID string, req dto.PostEntryRequest) (*domain.JournalEntry, error)

	// ReverseEntry creates, posts and applies the mirror-image correction of a
	// posted entry, returning the reversal entry.
	ReverseEntry(ctx context.Context, ledgerID, entryID string, req dto.ReverseEntryRequest) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-entry service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
