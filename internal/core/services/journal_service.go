package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kichoapp/kicho_backend/internal/apperrors"
	"github.com/kichoapp/kicho_backend/internal/core/domain"
	portsrepo "github.com/kichoapp/kicho_backend/internal/core/ports/repositories"
	portssvc "github.com/kichoapp/kicho_backend/internal/core/ports/services"
	"github.com/kichoapp/kicho_backend/internal/dto"
)

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	entryRepo  portsrepo.EntryRepositoryFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
	dispatcher portssvc.EventDispatcher
}

// NewJournalService creates a new journal entry service.
func NewJournalService(entryRepo portsrepo.EntryRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, dispatcher portssvc.EventDispatcher) portssvc.JournalSvcFacade {
	return &journalService{
		entryRepo:  entryRepo,
		ledgerRepo: ledgerRepo,
		dispatcher: dispatcher,
	}
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) dispatch(ctx context.Context, events ...domain.DomainEvent) {
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, events...)
	}
}

func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.entryRepo.FindEntryByID(ctx, entryID)
}

func (s *journalService) ListEntriesByLedger(ctx context.Context, ledgerID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	return s.entryRepo.ListEntriesByLedger(ctx, ledgerID, limit, nextToken)
}

func (s *journalService) CreateEntry(ctx context.Context, ledgerID string, req dto.CreateEntryRequest) (*domain.JournalEntry, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	seq, err := s.entryRepo.NextEntryNumber(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	entryNumber := fmt.Sprintf("JE-%d-%05d", ledger.FiscalYear, seq)

	now := time.Now()
	entry, err := domain.NewJournalEntry(uuid.NewString(), entryNumber, ledger.CompanyID, ledger.FiscalYear,
		ledger.Currency, req.TransactionDate, req.Description, req.PerformedBy, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	if req.SourceDocumentRef != "" {
		entry, err = entry.UpdateSourceDocument(req.SourceDocumentRef, req.PerformedBy, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
	}

	for _, lineReq := range req.Lines {
		if _, exists := ledger.Accounts[lineReq.AccountID]; !exists {
			return nil, fmt.Errorf("%w: account %s is not in ledger %s", apperrors.ErrValidation, lineReq.AccountID, ledgerID)
		}
		amount, err := domain.NewMoney(lineReq.Amount, ledger.Currency)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		line, err := domain.NewEntryLine(uuid.NewString(), lineReq.AccountID, domain.EntrySide(lineReq.Side),
			amount, lineReq.Memo, lineReq.TaxCode, lineReq.DepartmentCode)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		entry, err = entry.AddLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
	}

	if err := s.entryRepo.SaveEntry(ctx, ledgerID, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("ledger_id", ledgerID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}

func (s *journalService) SubmitEntry(ctx context.Context, entryID, performedBy string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	submitted, err := entry.SubmitForApproval(time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.UpdateEntry(ctx, submitted); err != nil {
		return nil, err
	}
	return &submitted, nil
}

func (s *journalService) ApproveEntry(ctx context.Context, entryID, performedBy string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	approved, err := entry.Approve(performedBy, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.UpdateEntry(ctx, approved); err != nil {
		return nil, err
	}
	return &approved, nil
}

// PostEntry runs the entry's own posting transition, folds the result into the
// ledger's balances and persists both. The ledger snapshot is saved first: its
// optimistic version and posted-entry guard are what make posting idempotent,
// so a crash between the two writes leaves a posted ledger with a stale entry
// row, never double-counted balances.
func (s *journalService) PostEntry(ctx context.Context, ledgerID, entryID string, req dto.PostEntryRequest) (*domain.JournalEntry, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	postingDate := entry.TransactionDate
	if req.PostingDate != nil {
		postingDate = *req.PostingDate
	}

	posted, postedEvent, err := entry.Post(postingDate, req.PerformedBy, time.Now())
	if err != nil {
		return nil, err
	}

	applied, err := ledger.PostEntry(posted)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.SaveLedger(ctx, applied, ledger.Version); err != nil {
		s.LogError(ctx, err, "Failed to save ledger after posting",
			slog.String("ledger_id", ledgerID), slog.String("entry_id", entryID))
		return nil, err
	}
	if err := s.entryRepo.UpdateEntry(ctx, posted); err != nil {
		s.LogError(ctx, err, "Failed to update posted entry",
			slog.String("entry_id", entryID))
		return nil, err
	}

	s.dispatch(ctx, postedEvent)
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", posted.EntryID),
		slog.String("entry_number", posted.EntryNumber),
		slog.String("total", posted.TotalDebits().String()))
	return &posted, nil
}

// ReverseEntry creates the mirror-image correction of a posted entry, posts
// it through the same period checks as any other entry and applies it to the
// ledger. The original is marked reversed, never edited.
func (s *journalService) ReverseEntry(ctx context.Context, ledgerID, entryID string, req dto.ReverseEntryRequest) (*domain.JournalEntry, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	original, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	seq, err := s.entryRepo.NextEntryNumber(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	reversalNumber := fmt.Sprintf("JE-%d-%05d", ledger.FiscalYear, seq)

	now := time.Now()
	reversed, reversal, reversedEvent, err := original.CreateReversal(uuid.NewString(), req.ReversalDate,
		reversalNumber, req.PerformedBy, now)
	if err != nil {
		return nil, err
	}

	postedReversal, postedEvent, err := reversal.Post(req.ReversalDate, req.PerformedBy, now)
	if err != nil {
		return nil, err
	}

	applied, err := ledger.PostEntry(postedReversal)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.SaveLedger(ctx, applied, ledger.Version); err != nil {
		s.LogError(ctx, err, "Failed to save ledger after reversal",
			slog.String("ledger_id", ledgerID), slog.String("entry_id", entryID))
		return nil, err
	}
	if err := s.entryRepo.SaveEntry(ctx, ledgerID, postedReversal); err != nil {
		return nil, err
	}
	if err := s.entryRepo.UpdateEntry(ctx, reversed); err != nil {
		return nil, err
	}

	s.dispatch(ctx, reversedEvent, postedEvent)
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("original_entry_id", reversed.EntryID),
		slog.String("reversal_entry_id", postedReversal.EntryID))
	return &postedReversal, nil
}
