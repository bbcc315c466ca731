package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the database row for one journal entry header.
type JournalEntry struct {
	EntryID           string     `json:"entryID"` // Primary Key (UUID)
	LedgerID          string     `json:"ledgerID"`
	EntryNumber       string     `json:"entryNumber"`
	CompanyID         string     `json:"companyID"`
	FiscalYear        int        `json:"fiscalYear"`
	CurrencyCode      string     `json:"currencyCode"`
	TransactionDate   time.Time  `json:"transactionDate"`
	PostingDate       *time.Time `json:"postingDate,omitempty"`
	Description       string     `json:"description"`
	SourceDocumentRef string     `json:"sourceDocumentRef"`
	Status            string     `json:"status"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy        string     `json:"approvedBy"`
	PostedAt          *time.Time `json:"postedAt,omitempty"`
	PostedBy          string     `json:"postedBy"`
	ReversalEntryID   *string    `json:"reversalEntryID,omitempty"`
	OriginalEntryID   *string    `json:"originalEntryID,omitempty"`
	AuditFields
}

// EntryLine is the database row for one debit or credit line.
type EntryLine struct {
	LineID         string          `json:"lineID"` // Primary Key (UUID)
	EntryID        string          `json:"entryID"`
	AccountID      string          `json:"accountID"`
	Side           string          `json:"side"`
	Amount         decimal.Decimal `json:"amount"`
	Memo           string          `json:"memo"`
	TaxCode        string          `json:"taxCode"`
	DepartmentCode string          `json:"departmentCode"`
}
