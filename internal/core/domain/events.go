package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is implemented by every event a command returns. Events are
// plain values handed back alongside the new aggregate state; delivery,
// ordering and retries belong to the dispatcher at the application boundary.
type DomainEvent interface {
	EventName() string
	GetEventID() string
	GetOccurredAt() time.Time
}

// EventMeta carries the identification every published event shares.
type EventMeta struct {
	EventID    string    `json:"eventID"`
	OccurredAt time.Time `json:"occurredAt"`
	CompanyID  string    `json:"companyID"`
	FiscalYear int       `json:"fiscalYear,omitempty"`
}

func newEventMeta(companyID string, fiscalYear int, at time.Time) EventMeta {
	return EventMeta{
		EventID:    uuid.NewString(),
		OccurredAt: at,
		CompanyID:  companyID,
		FiscalYear: fiscalYear,
	}
}

func (m EventMeta) GetEventID() string       { return m.EventID }
func (m EventMeta) GetOccurredAt() time.Time { return m.OccurredAt }

// AccountCreated is emitted when an account joins a ledger's chart of accounts.
type AccountCreated struct {
	EventMeta
	AccountID   string      `json:"accountID"`
	AccountCode string      `json:"accountCode"`
	AccountType AccountType `json:"accountType"`
}

func (AccountCreated) EventName() string { return "ledger.account_created" }

// AccountDeactivated is emitted when an account is deactivated.
type AccountDeactivated struct {
	EventMeta
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
}

func (AccountDeactivated) EventName() string { return "ledger.account_deactivated" }

// JournalEntryPosted is emitted when an entry completes its own posting lifecycle.
type JournalEntryPosted struct {
	EventMeta
	EntryID     string `json:"entryID"`
	EntryNumber string `json:"entryNumber"`
	TotalAmount Money  `json:"totalAmount"` // Debit-side total, the entry's economic value
}

func (JournalEntryPosted) EventName() string { return "ledger.journal_entry_posted" }

// JournalEntryReversed is emitted when a posted entry is reversed.
type JournalEntryReversed struct {
	EventMeta
	OriginalEntryID string `json:"originalEntryID"`
	ReversalEntryID string `json:"reversalEntryID"`
}

func (JournalEntryReversed) EventName() string { return "ledger.journal_entry_reversed" }

// AccountingPeriodOpened is emitted when a period opens (or reopens).
type AccountingPeriodOpened struct {
	EventMeta
	PeriodNumber int `json:"periodNumber"`
}

func (AccountingPeriodOpened) EventName() string { return "ledger.period_opened" }

// AccountingPeriodClosed is emitted when a period soft- or hard-closes.
type AccountingPeriodClosed struct {
	EventMeta
	PeriodNumber int  `json:"periodNumber"`
	Hard         bool `json:"hard"`
}

func (AccountingPeriodClosed) EventName() string { return "ledger.period_closed" }

// FiscalYearOpened is emitted when a ledger is created for a fiscal year.
type FiscalYearOpened struct {
	EventMeta
	LedgerID  string    `json:"ledgerID"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (FiscalYearOpened) EventName() string { return "ledger.fiscal_year_opened" }

// FiscalYearClosed is emitted when a ledger closes its fiscal year. It carries
// the frozen net income and the retained-earnings carry-forward for the next
// fiscal year's opening entry.
type FiscalYearClosed struct {
	EventMeta
	LedgerID                     string `json:"ledgerID"`
	NetIncome                    Money  `json:"netIncome"`
	RetainedEarningsCarryForward Money  `json:"retainedEarningsCarryForward"`
}

func (FiscalYearClosed) EventName() string { return "ledger.fiscal_year_closed" }
