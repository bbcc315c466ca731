package mapping

import (
	"fmt"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	"github.com/kichoapp/kicho_backend/internal/models"
)

// ToEntryModel flattens a domain journal entry into its header row and line rows.
func ToEntryModel(ledgerID string, e domain.JournalEntry) (models.JournalEntry, []models.EntryLine) {
	header := models.JournalEntry{
		EntryID:           e.EntryID,
		LedgerID:          ledgerID,
		EntryNumber:       e.EntryNumber,
		CompanyID:         e.CompanyID,
		FiscalYear:        e.FiscalYear,
		CurrencyCode:      e.Currency.Code,
		TransactionDate:   e.TransactionDate,
		PostingDate:       e.PostingDate,
		Description:       e.Description,
		SourceDocumentRef: e.SourceDocumentRef,
		Status:            string(e.Status),
		ApprovedAt:        e.ApprovedAt,
		ApprovedBy:        e.ApprovedBy,
		PostedAt:          e.PostedAt,
		PostedBy:          e.PostedBy,
		ReversalEntryID:   e.ReversalEntryID,
		OriginalEntryID:   e.OriginalEntryID,
		AuditFields: models.AuditFields{
			CreatedAt:     e.CreatedAt,
			CreatedBy:     e.CreatedBy,
			LastUpdatedAt: e.LastUpdatedAt,
			LastUpdatedBy: e.LastUpdatedBy,
		},
	}

	lines := make([]models.EntryLine, len(e.Lines))
	for i, line := range e.Lines {
		lines[i] = models.EntryLine{
			LineID:         line.LineID,
			EntryID:        e.EntryID,
			AccountID:      line.AccountID,
			Side:           string(line.Side),
			Amount:         line.Amount.Amount(),
			Memo:           line.Memo,
			TaxCode:        line.TaxCode,
			DepartmentCode: line.DepartmentCode,
		}
	}

	return header, lines
}

// ToEntryDomain rebuilds a domain journal entry from its database rows.
func ToEntryDomain(header models.JournalEntry, lines []models.EntryLine) (*domain.JournalEntry, error) {
	currency, err := domain.CurrencyByCode(header.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", header.EntryID, err)
	}

	entry := domain.JournalEntry{
		EntryID:           header.EntryID,
		EntryNumber:       header.EntryNumber,
		CompanyID:         header.CompanyID,
		FiscalYear:        header.FiscalYear,
		Currency:          currency,
		TransactionDate:   header.TransactionDate,
		PostingDate:       header.PostingDate,
		Description:       header.Description,
		SourceDocumentRef: header.SourceDocumentRef,
		Lines:             make([]domain.EntryLine, len(lines)),
		Status:            domain.EntryStatus(header.Status),
		ApprovedAt:        header.ApprovedAt,
		ApprovedBy:        header.ApprovedBy,
		PostedAt:          header.PostedAt,
		PostedBy:          header.PostedBy,
		ReversalEntryID:   header.ReversalEntryID,
		OriginalEntryID:   header.OriginalEntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     header.CreatedAt,
			CreatedBy:     header.CreatedBy,
			LastUpdatedAt: header.LastUpdatedAt,
			LastUpdatedBy: header.LastUpdatedBy,
		},
	}

	for i, row := range lines {
		amount, err := domain.NewMoney(row.Amount, currency)
		if err != nil {
			return nil, fmt.Errorf("entry %s line %s: %w", header.EntryID, row.LineID, err)
		}
		entry.Lines[i] = domain.EntryLine{
			LineID:         row.LineID,
			AccountID:      row.AccountID,
			Side:           domain.EntrySide(row.Side),
			Amount:         amount,
			Memo:           row.Memo,
			TaxCode:        row.TaxCode,
			DepartmentCode: row.DepartmentCode,
		}
	}

	return &entry, nil
}
