package dto

import (
	"time"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest defines one debit or credit line of a new entry.
type CreateEntryLineRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	Side           string          `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Memo           string          `json:"memo"`
	TaxCode        string          `json:"taxCode"`
	DepartmentCode string          `json:"departmentCode"`
}

// CreateEntryRequest defines the data needed to create a draft journal entry.
type CreateEntryRequest struct {
	TransactionDate   time.Time                `json:"transactionDate" binding:"required"`
	Description       string                   `json:"description" binding:"required"`
	SourceDocumentRef string                   `json:"sourceDocumentRef"`
	Lines             []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
	PerformedBy       string                   `json:"performedBy" binding:"required"`
}

// PostEntryRequest defines the data needed to post an entry to the ledger.
// PostingDate defaults to the entry's transaction date when omitted.
type PostEntryRequest struct {
	PostingDate *time.Time `json:"postingDate"`
	PerformedBy string     `json:"performedBy" binding:"required"`
}

// ReverseEntryRequest defines the data needed to reverse a posted entry.
type ReverseEntryRequest struct {
	ReversalDate time.Time `json:"reversalDate" binding:"required"`
	PerformedBy  string    `json:"performedBy" binding:"required"`
}

// EntryLineResponse defines the data returned for one entry line.
type EntryLineResponse struct {
	LineID         string          `json:"lineID"`
	AccountID      string          `json:"accountID"`
	Side           string          `json:"side"`
	Amount         decimal.Decimal `json:"amount"`
	Memo           string          `json:"memo,omitempty"`
	TaxCode        string          `json:"taxCode,omitempty"`
	DepartmentCode string          `json:"departmentCode,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID           string              `json:"entryID"`
	EntryNumber       string              `json:"entryNumber"`
	CompanyID         string              `json:"companyID"`
	FiscalYear        int                 `json:"fiscalYear"`
	CurrencyCode      string              `json:"currencyCode"`
	TransactionDate   time.Time           `json:"transactionDate"`
	PostingDate       *time.Time          `json:"postingDate,omitempty"`
	Description       string              `json:"description"`
	SourceDocumentRef string              `json:"sourceDocumentRef,omitempty"`
	Status            string              `json:"status"`
	Lines             []EntryLineResponse `json:"lines"`
	TotalDebits       decimal.Decimal     `json:"totalDebits"`
	TotalCredits      decimal.Decimal     `json:"totalCredits"`
	ApprovedAt        *time.Time          `json:"approvedAt,omitempty"`
	ApprovedBy        string              `json:"approvedBy,omitempty"`
	PostedAt          *time.Time          `json:"postedAt,omitempty"`
	PostedBy          string              `json:"postedBy,omitempty"`
	ReversalEntryID   *string             `json:"reversalEntryID,omitempty"`
	OriginalEntryID   *string             `json:"originalEntryID,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	CreatedBy         string              `json:"createdBy"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.EntryLine to EntryLineResponse DTO.
func ToEntryLineResponse(line domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:         line.LineID,
		AccountID:      line.AccountID,
		Side:           string(line.Side),
		Amount:         line.Amount.Amount(),
		Memo:           line.Memo,
		TaxCode:        line.TaxCode,
		DepartmentCode: line.DepartmentCode,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, line := range e.Lines {
		lines[i] = ToEntryLineResponse(line)
	}
	return EntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		CompanyID:         e.CompanyID,
		FiscalYear:        e.FiscalYear,
		CurrencyCode:      e.Currency.Code,
		TransactionDate:   e.TransactionDate,
		PostingDate:       e.PostingDate,
		Description:       e.Description,
		SourceDocumentRef: e.SourceDocumentRef,
		Status:            string(e.Status),
		Lines:             lines,
		TotalDebits:       e.TotalDebits().Amount(),
		TotalCredits:      e.TotalCredits().Amount(),
		ApprovedAt:        e.ApprovedAt,
		ApprovedBy:        e.ApprovedBy,
		PostedAt:          e.PostedAt,
		PostedBy:          e.PostedBy,
		ReversalEntryID:   e.ReversalEntryID,
		OriginalEntryID:   e.OriginalEntryID,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ToListEntriesResponse converts a page of domain entries plus its pagination token.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListEntriesResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return ListEntriesResponse{Entries: res, NextToken: nextToken}
}
