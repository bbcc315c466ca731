package domain_test

import (
	"testing"
	"time"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID  = "comp-1"
	testFiscalYear = 2024
)

var testNow = time.Date(2024, 4, 15, 9, 0, 0, 0, time.UTC)

func newDraftEntry(t *testing.T) domain.JournalEntry {
	t.Helper()
	entry, err := domain.NewJournalEntry("je-1", "JE-2024-0001", testCompanyID, testFiscalYear,
		domain.JPY, testNow, "Cash sale", "maker", testNow)
	require.NoError(t, err)
	return entry
}

func mustLine(t *testing.T, lineID, accountID string, side domain.EntrySide, amount string) domain.EntryLine {
	t.Helper()
	line, err := domain.NewEntryLine(lineID, accountID, side, mustMoney(t, amount, domain.JPY), "", "", "")
	require.NoError(t, err)
	return line
}

// balancedEntry returns a draft entry debiting cash and crediting sales for the same amount.
func balancedEntry(t *testing.T, amount string) domain.JournalEntry {
	t.Helper()
	entry := newDraftEntry(t)
	entry, err := entry.AddLine(mustLine(t, "l-1", "acc-cash", domain.Debit, amount))
	require.NoError(t, err)
	entry, err = entry.AddLine(mustLine(t, "l-2", "acc-sales", domain.Credit, amount))
	require.NoError(t, err)
	return entry
}

func TestNewJournalEntry_Validation(t *testing.T) {
	tests := []struct {
		name        string
		entryNumber string
		companyID   string
		date        time.Time
		description string
		wantErr     error
	}{
		{name: "valid", entryNumber: "JE-1", companyID: testCompanyID, date: testNow, description: "ok"},
		{name: "missing number", companyID: testCompanyID, date: testNow, description: "ok", wantErr: domain.ErrEntryNumberRequired},
		{name: "missing company", entryNumber: "JE-1", date: testNow, description: "ok", wantErr: domain.ErrEntryCompanyRequired},
		{name: "missing date", entryNumber: "JE-1", companyID: testCompanyID, description: "ok", wantErr: domain.ErrEntryDateRequired},
		{name: "missing description", entryNumber: "JE-1", companyID: testCompanyID, date: testNow, wantErr: domain.ErrEntryDescRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := domain.NewJournalEntry("je-x", tt.entryNumber, tt.companyID, testFiscalYear,
				domain.JPY, tt.date, tt.description, "maker", testNow)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.EntryDraft, entry.Status)
			assert.Empty(t, entry.Lines)
		})
	}
}

func TestNewEntryLine_Validation(t *testing.T) {
	_, err := domain.NewEntryLine("l-1", "acc-1", domain.EntrySide("SIDEWAYS"), mustMoney(t, "10", domain.JPY), "", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidEntrySide)

	_, err = domain.NewEntryLine("l-1", "acc-1", domain.Debit, mustMoney(t, "0", domain.JPY), "", "", "")
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	_, err = domain.NewEntryLine("l-1", "acc-1", domain.Debit, mustMoney(t, "-10", domain.JPY), "", "", "")
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	line, err := domain.NewEntryLine("l-1", "acc-1", domain.Credit, mustMoney(t, "10", domain.JPY), "memo", "TAX10", "D01")
	require.NoError(t, err)
	assert.Equal(t, "TAX10", line.TaxCode)
	assert.Equal(t, "D01", line.DepartmentCode)
}

func TestJournalEntry_AddRemoveLines(t *testing.T) {
	entry := newDraftEntry(t)

	withLine, err := entry.AddLine(mustLine(t, "l-1", "acc-cash", domain.Debit, "10000"))
	require.NoError(t, err)
	assert.Len(t, withLine.Lines, 1)
	assert.Empty(t, entry.Lines) // receiver untouched

	_, err = withLine.AddLine(domain.EntryLine{LineID: "l-usd", AccountID: "acc-x", Side: domain.Debit, Amount: mustMoney(t, "1.00", domain.USD)})
	assert.ErrorIs(t, err, domain.ErrLineCurrency)

	removed, err := withLine.RemoveLine("l-1")
	require.NoError(t, err)
	assert.Empty(t, removed.Lines)

	_, err = withLine.RemoveLine("l-nope")
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
}

func TestJournalEntry_LinesFrozenAfterApproval(t *testing.T) {
	entry := balancedEntry(t, "10000")
	pending, err := entry.SubmitForApproval(testNow)
	require.NoError(t, err)
	approved, err := pending.Approve("checker", testNow)
	require.NoError(t, err)

	_, err = approved.AddLine(mustLine(t, "l-3", "acc-x", domain.Debit, "1"))
	assert.ErrorIs(t, err, domain.ErrEntryNotMutable)
	_, err = approved.RemoveLine("l-1")
	assert.ErrorIs(t, err, domain.ErrEntryNotMutable)
	_, err = approved.UpdateDescription("new", "maker", testNow)
	assert.ErrorIs(t, err, domain.ErrEntryNotMutable)
	_, err = approved.UpdateSourceDocument("doc-1", "maker", testNow)
	assert.ErrorIs(t, err, domain.ErrEntryNotMutable)
}

func TestJournalEntry_UpdateWhileMutable(t *testing.T) {
	entry := balancedEntry(t, "10000")

	updated, err := entry.UpdateDescription("Adjusted description", "maker", testNow)
	require.NoError(t, err)
	assert.Equal(t, "Adjusted description", updated.Description)

	pending, err := updated.SubmitForApproval(testNow)
	require.NoError(t, err)
	withDoc, err := pending.UpdateSourceDocument("invoice-42", "maker", testNow)
	require.NoError(t, err)
	assert.Equal(t, "invoice-42", withDoc.SourceDocumentRef)
}

func TestJournalEntry_SubmitForApproval(t *testing.T) {
	empty := newDraftEntry(t)
	_, err := empty.SubmitForApproval(testNow)
	assert.ErrorIs(t, err, domain.ErrEntryEmpty)

	unbalanced := newDraftEntry(t)
	unbalanced, err = unbalanced.AddLine(mustLine(t, "l-1", "acc-cash", domain.Debit, "10000"))
	require.NoError(t, err)
	unbalanced, err = unbalanced.AddLine(mustLine(t, "l-2", "acc-sales", domain.Credit, "9000"))
	require.NoError(t, err)
	_, err = unbalanced.SubmitForApproval(testNow)
	assert.ErrorIs(t, err, domain.ErrEntryUnbalanced)
	assert.Contains(t, err.Error(), "10000")
	assert.Contains(t, err.Error(), "9000")

	balanced := balancedEntry(t, "10000")
	pending, err := balanced.SubmitForApproval(testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.EntryPending, pending.Status)

	// Submitting twice fails
	_, err = pending.SubmitForApproval(testNow)
	assert.ErrorIs(t, err, domain.ErrEntryStatus)
}

func TestJournalEntry_Approve(t *testing.T) {
	draft := balancedEntry(t, "10000")
	_, err := draft.Approve("checker", testNow)
	assert.ErrorIs(t, err, domain.ErrEntryStatus)

	pending, err := draft.SubmitForApproval(testNow)
	require.NoError(t, err)
	approved, err := pending.Approve("checker", testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.EntryApproved, approved.Status)
	assert.Equal(t, "checker", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)
}

func TestJournalEntry_Post(t *testing.T) {
	postingDate := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)

	t.Run("from approved", func(t *testing.T) {
		entry := balancedEntry(t, "10000")
		pending, err := entry.SubmitForApproval(testNow)
		require.NoError(t, err)
		approved, err := pending.Approve("checker", testNow)
		require.NoError(t, err)

		posted, event, err := approved.Post(postingDate, "poster", testNow)
		require.NoError(t, err)
		assert.Equal(t, domain.EntryPosted, posted.Status)
		require.NotNil(t, posted.PostingDate)
		assert.True(t, posted.PostingDate.Equal(postingDate))
		assert.Equal(t, "poster", posted.PostedBy)
		assert.Equal(t, posted.EntryID, event.EntryID)
		assert.Equal(t, testCompanyID, event.CompanyID)
		assert.Equal(t, testFiscalYear, event.FiscalYear)
		assert.True(t, event.TotalAmount.Equal(mustMoney(t, "10000", domain.JPY)))
	})

	t.Run("directly from draft", func(t *testing.T) {
		entry := balancedEntry(t, "5000")
		posted, _, err := entry.Post(postingDate, "poster", testNow)
		require.NoError(t, err)
		assert.Equal(t, domain.EntryPosted, posted.Status)
	})

	t.Run("pending cannot post", func(t *testing.T) {
		entry := balancedEntry(t, "5000")
		pending, err := entry.SubmitForApproval(testNow)
		require.NoError(t, err)
		_, _, err = pending.Post(postingDate, "poster", testNow)
		assert.ErrorIs(t, err, domain.ErrEntryStatus)
	})

	t.Run("revalidates balance", func(t *testing.T) {
		entry := newDraftEntry(t)
		entry, err := entry.AddLine(mustLine(t, "l-1", "acc-cash", domain.Debit, "10000"))
		require.NoError(t, err)
		_, _, err = entry.Post(postingDate, "poster", testNow)
		assert.ErrorIs(t, err, domain.ErrEntryUnbalanced)
	})
}

func TestJournalEntry_CreateReversal(t *testing.T) {
	entry := balancedEntry(t, "10000")
	posted, _, err := entry.Post(testNow, "poster", testNow)
	require.NoError(t, err)

	original, reversal, event, err := posted.CreateReversal("je-2", testNow, "JE-2024-0002", "poster", testNow)
	require.NoError(t, err)

	assert.Equal(t, domain.EntryReversed, original.Status)
	require.NotNil(t, original.ReversalEntryID)
	assert.Equal(t, "je-2", *original.ReversalEntryID)

	assert.Equal(t, domain.EntryDraft, reversal.Status)
	require.NotNil(t, reversal.OriginalEntryID)
	assert.Equal(t, posted.EntryID, *reversal.OriginalEntryID)
	require.Len(t, reversal.Lines, 2)
	assert.Equal(t, domain.Credit, reversal.Lines[0].Side) // was debit
	assert.Equal(t, domain.Debit, reversal.Lines[1].Side)  // was credit
	assert.True(t, reversal.Lines[0].Amount.Equal(posted.Lines[0].Amount))

	assert.Equal(t, posted.EntryID, event.OriginalEntryID)
	assert.Equal(t, "je-2", event.ReversalEntryID)

	// Only posted entries can be reversed; a reversed one is terminal.
	_, _, _, err = original.CreateReversal("je-3", testNow, "JE-2024-0003", "poster", testNow)
	assert.ErrorIs(t, err, domain.ErrEntryStatus)
	_, _, _, err = entry.CreateReversal("je-3", testNow, "JE-2024-0003", "poster", testNow)
	assert.ErrorIs(t, err, domain.ErrEntryStatus)
}

func TestJournalEntry_EffectiveDate(t *testing.T) {
	entry := balancedEntry(t, "100")
	assert.True(t, entry.EffectiveDate().Equal(entry.TransactionDate))

	postingDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	posted, _, err := entry.Post(postingDate, "poster", testNow)
	require.NoError(t, err)
	assert.True(t, posted.EffectiveDate().Equal(postingDate))
}

func TestJournalEntry_PostedBalancedInvariant(t *testing.T) {
	// Any entry reaching Posted has equal debit and credit totals.
	entry := newDraftEntry(t)
	var err error
	entry, err = entry.AddLine(mustLine(t, "l-1", "acc-cash", domain.Debit, "7000"))
	require.NoError(t, err)
	entry, err = entry.AddLine(mustLine(t, "l-2", "acc-fees", domain.Debit, "3000"))
	require.NoError(t, err)
	entry, err = entry.AddLine(mustLine(t, "l-3", "acc-sales", domain.Credit, "10000"))
	require.NoError(t, err)

	posted, _, err := entry.Post(testNow, "poster", testNow)
	require.NoError(t, err)
	assert.True(t, posted.TotalDebits().Equal(posted.TotalCredits()))
}
