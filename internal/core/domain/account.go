package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

var (
	ErrInvalidAccountCode  = errors.New("invalid account code")
	ErrAccountNameRequired = errors.New("account name is required")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrAccountHasBalance   = errors.New("account balance must be zero to deactivate")
	ErrUnknownAccountType  = errors.New("unknown account type")
)

// accountCodePattern: leading digit selects the account type, followed by
// two to five alphanumeric characters.
var accountCodePattern = regexp.MustCompile(`^[1-8][0-9A-Z]{2,5}$`)

// AccountCode is a validated, immutable chart-of-accounts code.
// The leading digit determines the account type:
// 1=Asset, 2=Liability, 3=Equity, 4=Revenue, 5-8=Expense.
type AccountCode struct {
	value string
}

// NewAccountCode validates and constructs an account code.
func NewAccountCode(code string) (AccountCode, error) {
	if !accountCodePattern.MatchString(code) {
		return AccountCode{}, fmt.Errorf("%w: %q", ErrInvalidAccountCode, code)
	}
	return AccountCode{value: code}, nil
}

func (c AccountCode) String() string { return c.value }

// IsZero reports whether the code is the unvalidated zero value.
func (c AccountCode) IsZero() bool { return c.value == "" }

// AccountType derives the account classification from the leading digit.
func (c AccountCode) AccountType() AccountType {
	switch c.value[0] {
	case '1':
		return Asset
	case '2':
		return Liability
	case '3':
		return Equity
	case '4':
		return Revenue
	default: // '5'..'8', guaranteed by the pattern
		return Expense
	}
}

// NormalBalanceFor returns the side on which the given account type increases.
// Exhaustive over the five account types.
func NormalBalanceFor(t AccountType) (EntrySide, error) {
	switch t {
	case Asset, Expense:
		return Debit, nil
	case Liability, Equity, Revenue:
		return Credit, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownAccountType, t)
	}
}

// Account represents a ledger account with its running balance.
// All commands are value-receiver and return a new copy.
type Account struct {
	AccountID     string      `json:"accountID"`     // Primary Key (UUID)
	Code          AccountCode `json:"code"`          // Validated chart-of-accounts code
	Name          string      `json:"name"`          // Display name
	NameJa        string      `json:"nameJa"`        // Localized (Japanese) name
	AccountType   AccountType `json:"accountType"`   // Derived from Code
	NormalBalance EntrySide   `json:"normalBalance"` // Derived from AccountType
	IsActive      bool        `json:"isActive"`
	Balance       Money       `json:"balance"`
	AuditFields
}

// NewAccount validates the code and names, derives type and normal balance,
// and yields an active account with a zero balance.
func NewAccount(id, code, name, nameJa string, currency Currency, createdDate time.Time, createdBy string) (Account, error) {
	accountCode, err := NewAccountCode(code)
	if err != nil {
		return Account{}, err
	}
	if name == "" || nameJa == "" {
		return Account{}, ErrAccountNameRequired
	}
	accountType := accountCode.AccountType()
	normal, err := NormalBalanceFor(accountType)
	if err != nil {
		return Account{}, err
	}
	return Account{
		AccountID:     id,
		Code:          accountCode,
		Name:          name,
		NameJa:        nameJa,
		AccountType:   accountType,
		NormalBalance: normal,
		IsActive:      true,
		Balance:       ZeroMoney(currency),
		AuditFields: AuditFields{
			CreatedAt:     createdDate,
			CreatedBy:     createdBy,
			LastUpdatedAt: createdDate,
			LastUpdatedBy: createdBy,
		},
	}, nil
}

// PostDebit applies a debit to the account balance.
func (a Account) PostDebit(amount Money, date time.Time) (Account, error) {
	return a.applyPosting(Debit, amount, date)
}

// PostCredit applies a credit to the account balance.
func (a Account) PostCredit(amount Money, date time.Time) (Account, error) {
	return a.applyPosting(Credit, amount, date)
}

// applyPosting folds a posting into the balance: the amount is added when the
// side matches the account's normal balance and subtracted otherwise. This
// single rule makes asset/expense accounts grow on debits and
// liability/equity/revenue accounts grow on credits.
func (a Account) applyPosting(side EntrySide, amount Money, date time.Time) (Account, error) {
	if !a.IsActive {
		return Account{}, fmt.Errorf("%w: account %s", ErrAccountInactive, a.AccountID)
	}
	if amount.IsNegative() {
		return Account{}, fmt.Errorf("%w: got %s", ErrNegativeAmount, amount)
	}
	var (
		newBalance Money
		err        error
	)
	if side == a.NormalBalance {
		newBalance, err = a.Balance.Add(amount)
	} else {
		newBalance, err = a.Balance.Subtract(amount)
	}
	if err != nil {
		return Account{}, err
	}
	updated := a
	updated.Balance = newBalance
	updated.LastUpdatedAt = date
	return updated, nil
}

// Deactivate marks the account inactive. Fails while a balance remains.
func (a Account) Deactivate(now time.Time, by string) (Account, error) {
	if !a.Balance.IsZero() {
		return Account{}, fmt.Errorf("%w: account %s holds %s", ErrAccountHasBalance, a.AccountID, a.Balance)
	}
	updated := a
	updated.IsActive = false
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = by
	return updated, nil
}

// Reactivate marks the account active again. Always succeeds.
func (a Account) Reactivate(now time.Time, by string) Account {
	updated := a
	updated.IsActive = true
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = by
	return updated
}
