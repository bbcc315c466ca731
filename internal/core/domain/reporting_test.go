package domain_test

import (
	"testing"
	"time"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newReportingLedger posts a small set of transactions across all five
// account types: a 50000 yen loan, a 30000 yen cash sale, 8000 yen rent paid
// and a 20000 yen capital injection.
func newReportingLedger(t *testing.T) domain.GeneralLedger {
	t.Helper()
	ledger := newTestLedger(t)
	for _, spec := range []struct{ id, code, name string }{
		{"acc-cash", "101", "Cash"},
		{"acc-loan", "201", "Bank Loan"},
		{"acc-capital", "301", "Share Capital"},
		{"acc-sales", "401", "Sales"},
		{"acc-rent", "501", "Rent Expense"},
	} {
		account, err := domain.NewAccount(spec.id, spec.code, spec.name, spec.name+" (ja)", domain.JPY, testNow, "tester")
		require.NoError(t, err)
		ledger, _, err = ledger.AddAccount(account, testNow)
		require.NoError(t, err)
	}
	var err error
	ledger, err = ledger.InitializePeriods(12)
	require.NoError(t, err)
	ledger, _, err = ledger.OpenPeriod(1, testNow)
	require.NoError(t, err)

	date := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	postings := []struct {
		id, desc, debitAcc, creditAcc, amount string
	}{
		{"je-loan", "Bank loan received", "acc-cash", "acc-loan", "50000"},
		{"je-sale", "Cash sale", "acc-cash", "acc-sales", "30000"},
		{"je-rent", "Rent paid", "acc-rent", "acc-cash", "8000"},
		{"je-cap", "Capital injection", "acc-cash", "acc-capital", "20000"},
	}
	for _, p := range postings {
		entry, err := domain.NewJournalEntry(p.id, "N-"+p.id, testCompanyID, testFiscalYear,
			domain.JPY, date, p.desc, "maker", testNow)
		require.NoError(t, err)
		entry, err = entry.AddLine(mustLine(t, p.id+"-d", p.debitAcc, domain.Debit, p.amount))
		require.NoError(t, err)
		entry, err = entry.AddLine(mustLine(t, p.id+"-c", p.creditAcc, domain.Credit, p.amount))
		require.NoError(t, err)
		posted, _, err := entry.Post(date, "poster", testNow)
		require.NoError(t, err)
		ledger, err = ledger.PostEntry(posted)
		require.NoError(t, err)
	}
	return ledger
}

func TestGenerateTrialBalance(t *testing.T) {
	ledger := newReportingLedger(t)
	asOf := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

	tb := ledger.GenerateTrialBalance(asOf)
	assert.True(t, tb.Balanced)
	// Cash 92000 + Rent 8000 on the debit side; Loan + Capital + Sales on credit.
	assert.True(t, tb.TotalDebits.Equal(mustMoney(t, "100000", domain.JPY)))
	assert.True(t, tb.TotalCredits.Equal(mustMoney(t, "100000", domain.JPY)))
	require.Len(t, tb.Rows, 5)

	// Rows are ordered by account code.
	codes := make([]string, 0, len(tb.Rows))
	for _, row := range tb.Rows {
		codes = append(codes, row.AccountCode)
	}
	assert.Equal(t, []string{"101", "201", "301", "401", "501"}, codes)

	cash := tb.Rows[0]
	assert.True(t, cash.Debit.Equal(mustMoney(t, "92000", domain.JPY)))
	assert.True(t, cash.Credit.IsZero())
	loan := tb.Rows[1]
	assert.True(t, loan.Credit.Equal(mustMoney(t, "50000", domain.JPY)))
	assert.True(t, loan.Debit.IsZero())
}

func TestGenerateTrialBalance_NegativeBalanceFlipsSide(t *testing.T) {
	ledger := newTestLedger(t)
	cash, err := domain.NewAccount("acc-cash", "101", "Cash", "現金", domain.JPY, testNow, "tester")
	require.NoError(t, err)
	loan, err := domain.NewAccount("acc-loan", "201", "Bank Loan", "借入金", domain.JPY, testNow, "tester")
	require.NoError(t, err)
	ledger, _, err = ledger.AddAccount(cash, testNow)
	require.NoError(t, err)
	ledger, _, err = ledger.AddAccount(loan, testNow)
	require.NoError(t, err)
	ledger, err = ledger.InitializePeriods(12)
	require.NoError(t, err)
	ledger, _, err = ledger.OpenPeriod(1, testNow)
	require.NoError(t, err)

	// Crediting cash with no prior balance drives the asset negative; the
	// trial balance must show it as a positive credit and stay balanced.
	date := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	entry, err := domain.NewJournalEntry("je-1", "JE-1", testCompanyID, testFiscalYear,
		domain.JPY, date, "Loan repayment", "maker", testNow)
	require.NoError(t, err)
	entry, err = entry.AddLine(mustLine(t, "l1", "acc-loan", domain.Debit, "5000"))
	require.NoError(t, err)
	entry, err = entry.AddLine(mustLine(t, "l2", "acc-cash", domain.Credit, "5000"))
	require.NoError(t, err)
	posted, _, err := entry.Post(date, "poster", testNow)
	require.NoError(t, err)
	ledger, err = ledger.PostEntry(posted)
	require.NoError(t, err)

	tb := ledger.GenerateTrialBalance(date)
	assert.True(t, tb.Balanced)

	cashRow := tb.Rows[0]
	assert.True(t, cashRow.Debit.IsZero())
	assert.True(t, cashRow.Credit.Equal(mustMoney(t, "5000", domain.JPY)))
	loanRow := tb.Rows[1]
	assert.True(t, loanRow.Debit.Equal(mustMoney(t, "5000", domain.JPY)))
	assert.True(t, loanRow.Credit.IsZero())
}

func TestGenerateTrialBalance_EmptyLedger(t *testing.T) {
	ledger := newTestLedger(t)
	tb := ledger.GenerateTrialBalance(testNow)
	assert.True(t, tb.Balanced)
	assert.Empty(t, tb.Rows)
	assert.True(t, tb.TotalDebits.IsZero())
	assert.True(t, tb.TotalCredits.IsZero())
}

func TestBalancesByType(t *testing.T) {
	ledger := newReportingLedger(t)
	totals, err := ledger.BalancesByType()
	require.NoError(t, err)

	assert.True(t, totals[domain.Asset].Equal(mustMoney(t, "92000", domain.JPY)))
	assert.True(t, totals[domain.Liability].Equal(mustMoney(t, "50000", domain.JPY)))
	assert.True(t, totals[domain.Equity].Equal(mustMoney(t, "20000", domain.JPY)))
	assert.True(t, totals[domain.Revenue].Equal(mustMoney(t, "30000", domain.JPY)))
	assert.True(t, totals[domain.Expense].Equal(mustMoney(t, "8000", domain.JPY)))
}

func TestGenerateIncomeStatement(t *testing.T) {
	ledger := newReportingLedger(t)

	statement, err := ledger.GenerateIncomeStatement()
	require.NoError(t, err)
	require.Len(t, statement.Revenue, 1)
	require.Len(t, statement.Expenses, 1)
	assert.Equal(t, "401", statement.Revenue[0].AccountCode)
	assert.True(t, statement.TotalRevenue.Equal(mustMoney(t, "30000", domain.JPY)))
	assert.True(t, statement.TotalExpenses.Equal(mustMoney(t, "8000", domain.JPY)))
	assert.True(t, statement.NetIncome.Equal(mustMoney(t, "22000", domain.JPY)))
}

func TestGenerateBalanceSheet(t *testing.T) {
	ledger := newReportingLedger(t)

	sheet, err := ledger.GenerateBalanceSheet()
	require.NoError(t, err)
	assert.True(t, sheet.TotalAssets.Equal(mustMoney(t, "92000", domain.JPY)))
	assert.True(t, sheet.TotalLiabilities.Equal(mustMoney(t, "50000", domain.JPY)))
	assert.True(t, sheet.TotalEquity.Equal(mustMoney(t, "20000", domain.JPY)))
	assert.True(t, sheet.NetIncome.Equal(mustMoney(t, "22000", domain.JPY)))
	// 92000 = 50000 + 20000 + 22000
	assert.True(t, sheet.EquationHolds)
}
