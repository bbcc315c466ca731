package domain_test

import (
	"testing"
	"time"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

func newTestAccount(t *testing.T, code, name string) domain.Account {
	t.Helper()
	account, err := domain.NewAccount("acc-"+code, code, name, name+" (ja)", domain.JPY, testDate, "tester")
	require.NoError(t, err)
	return account
}

func TestNewAccountCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		wantType domain.AccountType
		wantErr  bool
	}{
		{name: "asset code", code: "101", wantType: domain.Asset},
		{name: "liability code", code: "201", wantType: domain.Liability},
		{name: "equity code", code: "301", wantType: domain.Equity},
		{name: "revenue code", code: "401", wantType: domain.Revenue},
		{name: "expense code 5", code: "501", wantType: domain.Expense},
		{name: "expense code 8", code: "801", wantType: domain.Expense},
		{name: "alphanumeric suffix", code: "1A2B", wantType: domain.Asset},
		{name: "six characters", code: "110001", wantType: domain.Asset},
		{name: "leading nine rejected", code: "901", wantErr: true},
		{name: "leading zero rejected", code: "001", wantErr: true},
		{name: "too short", code: "10", wantErr: true},
		{name: "too long", code: "1000001", wantErr: true},
		{name: "lowercase rejected", code: "1a2", wantErr: true},
		{name: "empty", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := domain.NewAccountCode(tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidAccountCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.code, code.String())
			assert.Equal(t, tt.wantType, code.AccountType())
		})
	}
}

func TestNormalBalanceFor_Exhaustive(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		want        domain.EntrySide
	}{
		{domain.Asset, domain.Debit},
		{domain.Expense, domain.Debit},
		{domain.Liability, domain.Credit},
		{domain.Equity, domain.Credit},
		{domain.Revenue, domain.Credit},
	}
	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			side, err := domain.NormalBalanceFor(tt.accountType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, side)
		})
	}

	_, err := domain.NormalBalanceFor(domain.AccountType("BOGUS"))
	assert.ErrorIs(t, err, domain.ErrUnknownAccountType)
}

func TestNewAccount(t *testing.T) {
	account, err := domain.NewAccount("acc-1", "101", "Cash", "現金", domain.JPY, testDate, "tester")
	require.NoError(t, err)
	assert.Equal(t, domain.Asset, account.AccountType)
	assert.Equal(t, domain.Debit, account.NormalBalance)
	assert.True(t, account.IsActive)
	assert.True(t, account.Balance.IsZero())
	assert.Equal(t, "tester", account.CreatedBy)

	_, err = domain.NewAccount("acc-2", "9X1", "Bad", "Bad", domain.JPY, testDate, "tester")
	assert.ErrorIs(t, err, domain.ErrInvalidAccountCode)

	_, err = domain.NewAccount("acc-3", "101", "", "現金", domain.JPY, testDate, "tester")
	assert.ErrorIs(t, err, domain.ErrAccountNameRequired)

	_, err = domain.NewAccount("acc-4", "101", "Cash", "", domain.JPY, testDate, "tester")
	assert.ErrorIs(t, err, domain.ErrAccountNameRequired)
}

func TestAccount_NormalBalanceRule(t *testing.T) {
	amount := mustMoney(t, "10000", domain.JPY)

	tests := []struct {
		name    string
		code    string
		debit   bool
		wantBal string
	}{
		{name: "debit increases asset", code: "101", debit: true, wantBal: "10000"},
		{name: "credit decreases asset", code: "101", debit: false, wantBal: "-10000"},
		{name: "credit increases liability", code: "201", debit: false, wantBal: "10000"},
		{name: "debit decreases liability", code: "201", debit: true, wantBal: "-10000"},
		{name: "credit increases equity", code: "301", debit: false, wantBal: "10000"},
		{name: "credit increases revenue", code: "401", debit: false, wantBal: "10000"},
		{name: "debit decreases revenue", code: "401", debit: true, wantBal: "-10000"},
		{name: "debit increases expense", code: "501", debit: true, wantBal: "10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := newTestAccount(t, tt.code, "Account "+tt.code)
			var (
				posted domain.Account
				err    error
			)
			if tt.debit {
				posted, err = account.PostDebit(amount, testDate)
			} else {
				posted, err = account.PostCredit(amount, testDate)
			}
			require.NoError(t, err)
			assert.True(t, posted.Balance.Equal(mustMoney(t, tt.wantBal, domain.JPY)))
			// Receiver unchanged
			assert.True(t, account.Balance.IsZero())
		})
	}
}

func TestAccount_PostingOrderIndependence(t *testing.T) {
	account := newTestAccount(t, "101", "Cash")
	amounts := []string{"100", "250", "75"}

	forward := account
	for _, a := range amounts {
		var err error
		forward, err = forward.PostDebit(mustMoney(t, a, domain.JPY), testDate)
		require.NoError(t, err)
	}

	backward := account
	for i := len(amounts) - 1; i >= 0; i-- {
		var err error
		backward, err = backward.PostDebit(mustMoney(t, amounts[i], domain.JPY), testDate)
		require.NoError(t, err)
	}

	assert.True(t, forward.Balance.Equal(backward.Balance))
	assert.True(t, forward.Balance.Equal(mustMoney(t, "425", domain.JPY)))
}

func TestAccount_PostingValidation(t *testing.T) {
	account := newTestAccount(t, "101", "Cash")

	_, err := account.PostDebit(mustMoney(t, "-1", domain.JPY), testDate)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	inactive, err := account.Deactivate(testDate, "tester")
	require.NoError(t, err)
	_, err = inactive.PostDebit(mustMoney(t, "100", domain.JPY), testDate)
	assert.ErrorIs(t, err, domain.ErrAccountInactive)

	_, err = account.PostDebit(mustMoney(t, "1.00", domain.USD), testDate)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestAccount_DeactivateReactivate(t *testing.T) {
	account := newTestAccount(t, "101", "Cash")

	funded, err := account.PostDebit(mustMoney(t, "100", domain.JPY), testDate)
	require.NoError(t, err)

	_, err = funded.Deactivate(testDate, "tester")
	assert.ErrorIs(t, err, domain.ErrAccountHasBalance)

	emptied, err := funded.PostCredit(mustMoney(t, "100", domain.JPY), testDate)
	require.NoError(t, err)

	inactive, err := emptied.Deactivate(testDate, "tester")
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)

	active := inactive.Reactivate(testDate, "tester")
	assert.True(t, active.IsActive)
}
