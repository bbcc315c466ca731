package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EntrySide indicates whether a line debits or credits its account.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// flip returns the opposite side.
func (s EntrySide) flip() EntrySide {
	if s == Debit {
		return Credit
	}
	return Debit
}

// EntryStatus is the lifecycle state of a journal entry.
// Draft -> PendingApproval -> Approved -> Posted -> Reversed (terminal).
type EntryStatus string

const (
	EntryDraft    EntryStatus = "DRAFT"
	EntryPending  EntryStatus = "PENDING_APPROVAL"
	EntryApproved EntryStatus = "APPROVED"
	EntryPosted   EntryStatus = "POSTED"
	EntryReversed EntryStatus = "REVERSED"
)

var (
	ErrInvalidEntrySide     = errors.New("entry side must be DEBIT or CREDIT")
	ErrEntryNumberRequired  = errors.New("entry number is required")
	ErrEntryDateRequired    = errors.New("transaction date is required")
	ErrEntryDescRequired    = errors.New("entry description is required")
	ErrEntryCompanyRequired = errors.New("company reference is required")
	ErrEntryNotMutable      = errors.New("entry lines may only change in draft or pending status")
	ErrEntryEmpty           = errors.New("entry must have at least one line")
	ErrEntryUnbalanced      = errors.New("entry debits do not equal credits")
	ErrEntryStatus          = errors.New("entry is not in a valid status for this transition")
	ErrLineNotFound         = errors.New("entry line not found")
	ErrLineCurrency         = errors.New("line currency does not match entry currency")
)

// EntryLine is one debit or credit against a single account.
type EntryLine struct {
	LineID         string    `json:"lineID"`
	AccountID      string    `json:"accountID"`
	Side           EntrySide `json:"side"`
	Amount         Money     `json:"amount"` // Always positive
	Memo           string    `json:"memo"`
	TaxCode        string    `json:"taxCode"`        // Consumption-tax classification tag
	DepartmentCode string    `json:"departmentCode"` // Cost-center tag
}

// NewEntryLine validates and constructs a line. The amount must be strictly positive.
func NewEntryLine(lineID, accountID string, side EntrySide, amount Money, memo, taxCode, departmentCode string) (EntryLine, error) {
	if side != Debit && side != Credit {
		return EntryLine{}, fmt.Errorf("%w: %q", ErrInvalidEntrySide, side)
	}
	if accountID == "" {
		return EntryLine{}, fmt.Errorf("%w: line account", ErrAccountNameRequired)
	}
	if amount.IsNegative() || amount.IsZero() {
		return EntryLine{}, fmt.Errorf("%w: line amount must be positive, got %s", ErrNegativeAmount, amount)
	}
	return EntryLine{
		LineID:         lineID,
		AccountID:      accountID,
		Side:           side,
		Amount:         amount,
		Memo:           memo,
		TaxCode:        taxCode,
		DepartmentCode: departmentCode,
	}, nil
}

// JournalEntry is a named, dated set of balanced debit/credit lines with its
// own approval and posting lifecycle. Commands return new copies.
type JournalEntry struct {
	EntryID           string      `json:"entryID"`
	EntryNumber       string      `json:"entryNumber"`
	CompanyID         string      `json:"companyID"`
	FiscalYear        int         `json:"fiscalYear"`
	Currency          Currency    `json:"currency"`
	TransactionDate   time.Time   `json:"transactionDate"`
	PostingDate       *time.Time  `json:"postingDate,omitempty"`
	Description       string      `json:"description"`
	SourceDocumentRef string      `json:"sourceDocumentRef"`
	Lines             []EntryLine `json:"lines"`
	Status            EntryStatus `json:"status"`
	ApprovedAt        *time.Time  `json:"approvedAt,omitempty"`
	ApprovedBy        string      `json:"approvedBy"`
	PostedAt          *time.Time  `json:"postedAt,omitempty"`
	PostedBy          string      `json:"postedBy"`
	ReversalEntryID   *string     `json:"reversalEntryID,omitempty"` // Set on the original once reversed
	OriginalEntryID   *string     `json:"originalEntryID,omitempty"` // Set on a reversal entry
	AuditFields
}

// NewJournalEntry creates a draft entry with no lines.
func NewJournalEntry(entryID, entryNumber, companyID string, fiscalYear int, currency Currency, transactionDate time.Time, description, createdBy string, now time.Time) (JournalEntry, error) {
	if entryNumber == "" {
		return JournalEntry{}, ErrEntryNumberRequired
	}
	if companyID == "" {
		return JournalEntry{}, ErrEntryCompanyRequired
	}
	if transactionDate.IsZero() {
		return JournalEntry{}, ErrEntryDateRequired
	}
	if description == "" {
		return JournalEntry{}, ErrEntryDescRequired
	}
	return JournalEntry{
		EntryID:         entryID,
		EntryNumber:     entryNumber,
		CompanyID:       companyID,
		FiscalYear:      fiscalYear,
		Currency:        currency,
		TransactionDate: transactionDate,
		Description:     description,
		Status:          EntryDraft,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}, nil
}

// isMutable reports whether lines and header fields may still change.
func (e JournalEntry) isMutable() bool {
	return e.Status == EntryDraft || e.Status == EntryPending
}

// cloneLines copies the line slice so commands never alias the receiver's backing array.
func (e JournalEntry) cloneLines() []EntryLine {
	lines := make([]EntryLine, len(e.Lines))
	copy(lines, e.Lines)
	return lines
}

// AddLine appends a line. Only permitted in Draft or PendingApproval.
func (e JournalEntry) AddLine(line EntryLine) (JournalEntry, error) {
	if !e.isMutable() {
		return JournalEntry{}, fmt.Errorf("%w: status is %s", ErrEntryNotMutable, e.Status)
	}
	if line.Amount.Currency().Code != e.Currency.Code {
		return JournalEntry{}, fmt.Errorf("%w: %s vs %s", ErrLineCurrency, line.Amount.Currency().Code, e.Currency.Code)
	}
	updated := e
	updated.Lines = append(e.cloneLines(), line)
	return updated, nil
}

// RemoveLine deletes the line with the given id. Only permitted in Draft or PendingApproval.
func (e JournalEntry) RemoveLine(lineID string) (JournalEntry, error) {
	if !e.isMutable() {
		return JournalEntry{}, fmt.Errorf("%w: status is %s", ErrEntryNotMutable, e.Status)
	}
	lines := e.cloneLines()
	for i, line := range lines {
		if line.LineID == lineID {
			updated := e
			updated.Lines = append(lines[:i], lines[i+1:]...)
			return updated, nil
		}
	}
	return JournalEntry{}, fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
}

// UpdateDescription changes the description while the entry is still mutable.
func (e JournalEntry) UpdateDescription(description string, by string, now time.Time) (JournalEntry, error) {
	if !e.isMutable() {
		return JournalEntry{}, fmt.Errorf("%w: status is %s", ErrEntryNotMutable, e.Status)
	}
	if description == "" {
		return JournalEntry{}, ErrEntryDescRequired
	}
	updated := e
	updated.Description = description
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = by
	return updated, nil
}

// UpdateSourceDocument changes the source-document reference while the entry is still mutable.
func (e JournalEntry) UpdateSourceDocument(ref string, by string, now time.Time) (JournalEntry, error) {
	if !e.isMutable() {
		return JournalEntry{}, fmt.Errorf("%w: status is %s", ErrEntryNotMutable, e.Status)
	}
	updated := e
	updated.SourceDocumentRef = ref
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = by
	return updated, nil
}

// TotalDebits sums the debit-side line amounts.
func (e JournalEntry) TotalDebits() Money {
	return e.totalForSide(Debit)
}

// TotalCredits sums the credit-side line amounts.
func (e JournalEntry) TotalCredits() Money {
	return e.totalForSide(Credit)
}

func (e JournalEntry) totalForSide(side EntrySide) Money {
	total := ZeroMoney(e.Currency)
	for _, line := range e.Lines {
		if line.Side != side {
			continue
		}
		// Lines are currency-checked at AddLine, so Add cannot fail here.
		total, _ = total.Add(line.Amount)
	}
	return total
}

// IsBalanced reports whether total debits equal total credits.
func (e JournalEntry) IsBalanced() bool {
	return e.TotalDebits().Equal(e.TotalCredits())
}

// validatePostable enforces the posting invariant: at least one line and
// balanced debit/credit totals.
func (e JournalEntry) validatePostable() error {
	if len(e.Lines) == 0 {
		return ErrEntryEmpty
	}
	if !e.IsBalanced() {
		return fmt.Errorf("%w: debits %s, credits %s", ErrEntryUnbalanced, e.TotalDebits(), e.TotalCredits())
	}
	return nil
}

// SubmitForApproval transitions Draft -> PendingApproval after validating the
// entry is non-empty and balanced.
func (e JournalEntry) SubmitForApproval(now time.Time) (JournalEntry, error) {
	if e.Status != EntryDraft {
		return JournalEntry{}, fmt.Errorf("%w: expected %s, got %s", ErrEntryStatus, EntryDraft, e.Status)
	}
	if err := e.validatePostable(); err != nil {
		return JournalEntry{}, err
	}
	updated := e
	updated.Status = EntryPending
	updated.LastUpdatedAt = now
	return updated, nil
}

// Approve transitions PendingApproval -> Approved.
func (e JournalEntry) Approve(by string, now time.Time) (JournalEntry, error) {
	if e.Status != EntryPending {
		return JournalEntry{}, fmt.Errorf("%w: expected %s, got %s", ErrEntryStatus, EntryPending, e.Status)
	}
	updated := e
	updated.Status = EntryApproved
	updated.ApprovedBy = by
	approvedAt := now
	updated.ApprovedAt = &approvedAt
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = by
	return updated, nil
}

// Post transitions Approved (or Draft, for unreviewed books) -> Posted.
// It re-validates the balancing invariant and stamps posting metadata.
// The returned event carries the entry's own company and fiscal-year
// references; GeneralLedger.PostEntry verifies them against the ledger owner.
func (e JournalEntry) Post(postingDate time.Time, by string, now time.Time) (JournalEntry, JournalEntryPosted, error) {
	if e.Status != EntryApproved && e.Status != EntryDraft {
		return JournalEntry{}, JournalEntryPosted{}, fmt.Errorf("%w: expected %s or %s, got %s",
			ErrEntryStatus, EntryApproved, EntryDraft, e.Status)
	}
	if err := e.validatePostable(); err != nil {
		return JournalEntry{}, JournalEntryPosted{}, err
	}
	updated := e
	updated.Status = EntryPosted
	pd := postingDate
	updated.PostingDate = &pd
	postedAt := now
	updated.PostedAt = &postedAt
	updated.PostedBy = by
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = by

	event := JournalEntryPosted{
		EventMeta:   newEventMeta(e.CompanyID, e.FiscalYear, now),
		EntryID:     e.EntryID,
		EntryNumber: e.EntryNumber,
		TotalAmount: updated.TotalDebits(),
	}
	return updated, event, nil
}

// CreateReversal produces a new draft entry with every line's side flipped and
// marks the original Reversed. Corrections are additive, never edits.
func (e JournalEntry) CreateReversal(reversalID string, date time.Time, entryNumber, by string, now time.Time) (JournalEntry, JournalEntry, JournalEntryReversed, error) {
	if e.Status != EntryPosted {
		return JournalEntry{}, JournalEntry{}, JournalEntryReversed{}, fmt.Errorf("%w: expected %s, got %s",
			ErrEntryStatus, EntryPosted, e.Status)
	}
	reversal, err := NewJournalEntry(reversalID, entryNumber, e.CompanyID, e.FiscalYear, e.Currency, date,
		fmt.Sprintf("Reversal of %s: %s", e.EntryNumber, e.Description), by, now)
	if err != nil {
		return JournalEntry{}, JournalEntry{}, JournalEntryReversed{}, err
	}
	originalID := e.EntryID
	reversal.OriginalEntryID = &originalID
	reversal.SourceDocumentRef = e.SourceDocumentRef

	lines := make([]EntryLine, len(e.Lines))
	for i, line := range e.Lines {
		flipped := line
		flipped.LineID = uuid.NewString()
		flipped.Side = line.Side.flip()
		lines[i] = flipped
	}
	reversal.Lines = lines

	original := e
	original.Status = EntryReversed
	original.ReversalEntryID = &reversalID
	original.LastUpdatedAt = now
	original.LastUpdatedBy = by

	event := JournalEntryReversed{
		EventMeta:       newEventMeta(e.CompanyID, e.FiscalYear, now),
		OriginalEntryID: e.EntryID,
		ReversalEntryID: reversalID,
	}
	return original, reversal, event, nil
}

// EffectiveDate is the posting date when present, otherwise the transaction date.
func (e JournalEntry) EffectiveDate() time.Time {
	if e.PostingDate != nil {
		return *e.PostingDate
	}
	return e.TransactionDate
}
