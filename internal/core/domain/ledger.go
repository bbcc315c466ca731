package domain

import (
	"errors"
	"fmt"
	"time"
)

// LedgerStatus is the lifecycle state of a general ledger.
type LedgerStatus string

const (
	LedgerActive            LedgerStatus = "ACTIVE"
	LedgerClosingInProgress LedgerStatus = "CLOSING_IN_PROGRESS"
	LedgerClosed            LedgerStatus = "CLOSED"
)

// MaxPeriods bounds InitializePeriods: monthly periods at most.
const MaxPeriods = 12

var (
	ErrLedgerNotActive        = errors.New("ledger is not active")
	ErrLedgerDates            = errors.New("fiscal year start date must be before end date")
	ErrDuplicateAccountCode   = errors.New("account code already exists in ledger")
	ErrDuplicateAccountID     = errors.New("account id already exists in ledger")
	ErrLedgerAccountNotFound  = errors.New("account not found in ledger")
	ErrPeriodsInitialized     = errors.New("periods are already initialized")
	ErrPeriodCount            = errors.New("period count must be between 1 and 12")
	ErrPeriodNotFound         = errors.New("period not found")
	ErrEntryNotPosted         = errors.New("entry must be in posted status before ledger posting")
	ErrEntryAlreadyPosted     = errors.New("entry has already been posted to this ledger")
	ErrEntryWrongLedger       = errors.New("entry does not belong to this ledger")
	ErrNoPeriodForDate        = errors.New("no accounting period covers the entry date")
	ErrPeriodClosed           = errors.New("accounting period is not open for posting")
	ErrPeriodsNotHardClosed   = errors.New("all periods must be hard closed before closing the fiscal year")
	ErrPeriodsNotInitialized  = errors.New("periods have not been initialized")
	ErrLedgerNotClosable      = errors.New("ledger is not in a closable status")
	ErrLedgerAlreadyClosing   = errors.New("ledger closing is already in progress")
	ErrLedgerCurrencyMismatch = errors.New("currency does not match ledger currency")
)

// GeneralLedger is the aggregate root for one company's fiscal-year books:
// the chart of accounts, the period list, the balance snapshot and the
// posting/closing orchestration. Every command returns a brand-new ledger
// value; maps are copied on write so prior values stay intact.
type GeneralLedger struct {
	LedgerID       string              `json:"ledgerID"`
	CompanyID      string              `json:"companyID"`
	FiscalYear     int                 `json:"fiscalYear"`
	StartDate      time.Time           `json:"startDate"`
	EndDate        time.Time           `json:"endDate"`
	Currency       Currency            `json:"currency"`
	Status         LedgerStatus        `json:"status"`
	Accounts       map[string]Account  `json:"accounts"` // Keyed by AccountID
	Balances       map[string]Money    `json:"balances"` // Snapshot keyed by AccountID
	Periods        []AccountingPeriod  `json:"periods"`
	CurrentPeriod  int                 `json:"currentPeriod"` // 1-based; 0 before periods open
	PostedEntryIDs map[string]struct{} `json:"-"`             // Idempotency guard
	NetIncome      *Money              `json:"netIncome,omitempty"`
	Version        int64               `json:"version"` // Optimistic-concurrency token, bumped at save
	CreatedAt      time.Time           `json:"createdAt"`
	ClosedAt       *time.Time          `json:"closedAt,omitempty"`
	ClosedBy       string              `json:"closedBy"`
}

// NewGeneralLedger creates an active, empty ledger for one fiscal year.
func NewGeneralLedger(ledgerID, companyID string, fiscalYear int, startDate, endDate time.Time, currency Currency, now time.Time) (GeneralLedger, FiscalYearOpened, error) {
	if companyID == "" {
		return GeneralLedger{}, FiscalYearOpened{}, ErrEntryCompanyRequired
	}
	if startDate.IsZero() || endDate.IsZero() || !dateOnly(startDate).Before(dateOnly(endDate)) {
		return GeneralLedger{}, FiscalYearOpened{}, ErrLedgerDates
	}
	if currency.Code == "" {
		return GeneralLedger{}, FiscalYearOpened{}, ErrUnknownCurrency
	}
	ledger := GeneralLedger{
		LedgerID:       ledgerID,
		CompanyID:      companyID,
		FiscalYear:     fiscalYear,
		StartDate:      dateOnly(startDate),
		EndDate:        dateOnly(endDate),
		Currency:       currency,
		Status:         LedgerActive,
		Accounts:       map[string]Account{},
		Balances:       map[string]Money{},
		PostedEntryIDs: map[string]struct{}{},
		CreatedAt:      now,
	}
	event := FiscalYearOpened{
		EventMeta: newEventMeta(companyID, fiscalYear, now),
		LedgerID:  ledgerID,
		StartDate: ledger.StartDate,
		EndDate:   ledger.EndDate,
	}
	return ledger, event, nil
}

func (g GeneralLedger) cloneAccounts() map[string]Account {
	accounts := make(map[string]Account, len(g.Accounts)+1)
	for id, a := range g.Accounts {
		accounts[id] = a
	}
	return accounts
}

func (g GeneralLedger) cloneBalances() map[string]Money {
	balances := make(map[string]Money, len(g.Balances)+1)
	for id, b := range g.Balances {
		balances[id] = b
	}
	return balances
}

func (g GeneralLedger) clonePeriods() []AccountingPeriod {
	periods := make([]AccountingPeriod, len(g.Periods))
	copy(periods, g.Periods)
	return periods
}

func (g GeneralLedger) clonePostedEntryIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(g.PostedEntryIDs)+1)
	for id := range g.PostedEntryIDs {
		ids[id] = struct{}{}
	}
	return ids
}

// AccountByCode looks an account up by its chart-of-accounts code.
func (g GeneralLedger) AccountByCode(code string) (Account, bool) {
	for _, account := range g.Accounts {
		if account.Code.String() == code {
			return account, true
		}
	}
	return Account{}, false
}

// AddAccount inserts an account into the chart of accounts with a zero
// balance. Fails when the ledger is not active or the code already exists.
func (g GeneralLedger) AddAccount(account Account, now time.Time) (GeneralLedger, AccountCreated, error) {
	if g.Status != LedgerActive {
		return GeneralLedger{}, AccountCreated{}, fmt.Errorf("%w: status is %s", ErrLedgerNotActive, g.Status)
	}
	if _, exists := g.Accounts[account.AccountID]; exists {
		return GeneralLedger{}, AccountCreated{}, fmt.Errorf("%w: %s", ErrDuplicateAccountID, account.AccountID)
	}
	if _, exists := g.AccountByCode(account.Code.String()); exists {
		return GeneralLedger{}, AccountCreated{}, fmt.Errorf("%w: %s", ErrDuplicateAccountCode, account.Code)
	}
	if account.Balance.Currency().Code != g.Currency.Code {
		return GeneralLedger{}, AccountCreated{}, fmt.Errorf("%w: account %s is %s",
			ErrLedgerCurrencyMismatch, account.Code, account.Balance.Currency().Code)
	}
	updated := g
	updated.Accounts = g.cloneAccounts()
	updated.Accounts[account.AccountID] = account
	updated.Balances = g.cloneBalances()
	updated.Balances[account.AccountID] = ZeroMoney(g.Currency)

	event := AccountCreated{
		EventMeta:   newEventMeta(g.CompanyID, g.FiscalYear, now),
		AccountID:   account.AccountID,
		AccountCode: account.Code.String(),
		AccountType: account.AccountType,
	}
	return updated, event, nil
}

// DeactivateAccount deactivates an account; fails while it holds a balance.
func (g GeneralLedger) DeactivateAccount(accountID, by string, now time.Time) (GeneralLedger, AccountDeactivated, error) {
	if g.Status != LedgerActive {
		return GeneralLedger{}, AccountDeactivated{}, fmt.Errorf("%w: status is %s", ErrLedgerNotActive, g.Status)
	}
	account, exists := g.Accounts[accountID]
	if !exists {
		return GeneralLedger{}, AccountDeactivated{}, fmt.Errorf("%w: %s", ErrLedgerAccountNotFound, accountID)
	}
	deactivated, err := account.Deactivate(now, by)
	if err != nil {
		return GeneralLedger{}, AccountDeactivated{}, err
	}
	updated := g
	updated.Accounts = g.cloneAccounts()
	updated.Accounts[accountID] = deactivated

	event := AccountDeactivated{
		EventMeta:   newEventMeta(g.CompanyID, g.FiscalYear, now),
		AccountID:   accountID,
		AccountCode: account.Code.String(),
	}
	return updated, event, nil
}

// ReactivateAccount reactivates a previously deactivated account.
func (g GeneralLedger) ReactivateAccount(accountID, by string, now time.Time) (GeneralLedger, error) {
	if g.Status != LedgerActive {
		return GeneralLedger{}, fmt.Errorf("%w: status is %s", ErrLedgerNotActive, g.Status)
	}
	account, exists := g.Accounts[accountID]
	if !exists {
		return GeneralLedger{}, fmt.Errorf("%w: %s", ErrLedgerAccountNotFound, accountID)
	}
	updated := g
	updated.Accounts = g.cloneAccounts()
	updated.Accounts[accountID] = account.Reactivate(now, by)
	return updated, nil
}

// InitializePeriods divides the fiscal date range into count periods of equal
// day length, the final period absorbing the remainder so periods tile the
// range with no gaps or overlaps. Every period spans at least one day, so
// count may not exceed the number of days in the range. Runs once per ledger.
func (g GeneralLedger) InitializePeriods(count int) (GeneralLedger, error) {
	if g.Status != LedgerActive {
		return GeneralLedger{}, fmt.Errorf("%w: status is %s", ErrLedgerNotActive, g.Status)
	}
	if len(g.Periods) > 0 {
		return GeneralLedger{}, ErrPeriodsInitialized
	}
	if count < 1 || count > MaxPeriods {
		return GeneralLedger{}, fmt.Errorf("%w: got %d", ErrPeriodCount, count)
	}

	totalDays := int(dateOnly(g.EndDate).Sub(dateOnly(g.StartDate)).Hours()/24) + 1
	if count > totalDays {
		return GeneralLedger{}, fmt.Errorf("%w: %d periods do not fit a %d-day fiscal range", ErrPeriodCount, count, totalDays)
	}
	baseDays := totalDays / count

	periods := make([]AccountingPeriod, count)
	cursor := dateOnly(g.StartDate)
	for i := 0; i < count; i++ {
		end := cursor.AddDate(0, 0, baseDays-1)
		if i == count-1 {
			end = dateOnly(g.EndDate)
		}
		periods[i] = AccountingPeriod{
			Number:    i + 1,
			Name:      fmt.Sprintf("FY%d Period %d", g.FiscalYear, i+1),
			StartDate: cursor,
			EndDate:   end,
			Status:    PeriodNotStarted,
		}
		cursor = end.AddDate(0, 0, 1)
	}

	updated := g
	updated.Periods = periods
	return updated, nil
}

func (g GeneralLedger) periodIndex(number int) (int, error) {
	if len(g.Periods) == 0 {
		return 0, ErrPeriodsNotInitialized
	}
	if number < 1 || number > len(g.Periods) {
		return 0, fmt.Errorf("%w: %d", ErrPeriodNotFound, number)
	}
	return number - 1, nil
}

// OpenPeriod opens the period with the given number. Opening a period
// numbered below the current one, including reopening a soft-closed period,
// moves the current-period pointer back to it; the pointer otherwise advances
// only when the current period is hard-closed.
func (g GeneralLedger) OpenPeriod(number int, now time.Time) (GeneralLedger, AccountingPeriodOpened, error) {
	if g.Status != LedgerActive {
		return GeneralLedger{}, AccountingPeriodOpened{}, fmt.Errorf("%w: status is %s", ErrLedgerNotActive, g.Status)
	}
	idx, err := g.periodIndex(number)
	if err != nil {
		return GeneralLedger{}, AccountingPeriodOpened{}, err
	}
	opened, err := g.Periods[idx].Open()
	if err != nil {
		return GeneralLedger{}, AccountingPeriodOpened{}, err
	}
	updated := g
	updated.Periods = g.clonePeriods()
	updated.Periods[idx] = opened
	if updated.CurrentPeriod == 0 || number < updated.CurrentPeriod {
		updated.CurrentPeriod = number
	}
	event := AccountingPeriodOpened{
		EventMeta:    newEventMeta(g.CompanyID, g.FiscalYear, now),
		PeriodNumber: number,
	}
	return updated, event, nil
}

// ClosePeriod soft- or hard-closes the period with the given number. Closing
// the current period advances the current-period pointer to the next one.
func (g GeneralLedger) ClosePeriod(number int, by string, hard bool, now time.Time) (GeneralLedger, AccountingPeriodClosed, error) {
	if g.Status != LedgerActive && g.Status != LedgerClosingInProgress {
		return GeneralLedger{}, AccountingPeriodClosed{}, fmt.Errorf("%w: status is %s", ErrLedgerNotActive, g.Status)
	}
	idx, err := g.periodIndex(number)
	if err != nil {
		return GeneralLedger{}, AccountingPeriodClosed{}, err
	}
	closed, err := g.Periods[idx].Close(by, now, hard)
	if err != nil {
		return GeneralLedger{}, AccountingPeriodClosed{}, err
	}
	updated := g
	updated.Periods = g.clonePeriods()
	updated.Periods[idx] = closed
	if hard && number == updated.CurrentPeriod && number < len(updated.Periods) {
		updated.CurrentPeriod = number + 1
	}
	event := AccountingPeriodClosed{
		EventMeta:    newEventMeta(g.CompanyID, g.FiscalYear, now),
		PeriodNumber: number,
		Hard:         hard,
	}
	return updated, event, nil
}

// periodFor returns the period containing the given date.
func (g GeneralLedger) periodFor(date time.Time) (AccountingPeriod, bool) {
	for _, period := range g.Periods {
		if period.Contains(date) {
			return period, true
		}
	}
	return AccountingPeriod{}, false
}

// PostEntry folds a posted journal entry's lines into the account balances.
// The entry must have completed its own lifecycle (Posted status), belong to
// this ledger's company and fiscal year, not have been posted before, and
// carry an effective date inside a period that accepts postings. Either every
// line is applied or none is.
func (g GeneralLedger) PostEntry(entry JournalEntry) (GeneralLedger, error) {
	if g.Status != LedgerActive {
		return GeneralLedger{}, fmt.Errorf("%w: status is %s", ErrLedgerNotActive, g.Status)
	}
	if entry.Status != EntryPosted {
		return GeneralLedger{}, fmt.Errorf("%w: entry %s is %s", ErrEntryNotPosted, entry.EntryID, entry.Status)
	}
	if entry.CompanyID != g.CompanyID || entry.FiscalYear != g.FiscalYear {
		return GeneralLedger{}, fmt.Errorf("%w: entry %s targets company %s fiscal year %d",
			ErrEntryWrongLedger, entry.EntryID, entry.CompanyID, entry.FiscalYear)
	}
	if _, done := g.PostedEntryIDs[entry.EntryID]; done {
		return GeneralLedger{}, fmt.Errorf("%w: %s", ErrEntryAlreadyPosted, entry.EntryID)
	}

	effective := entry.EffectiveDate()
	period, found := g.periodFor(effective)
	if !found {
		return GeneralLedger{}, fmt.Errorf("%w: %s", ErrNoPeriodForDate, effective.Format("2006-01-02"))
	}
	if !period.CanPost() {
		return GeneralLedger{}, fmt.Errorf("%w: period %d is %s", ErrPeriodClosed, period.Number, period.Status)
	}

	// Apply into cloned maps; the receiver stays untouched on any error.
	accounts := g.cloneAccounts()
	balances := g.cloneBalances()
	for _, line := range entry.Lines {
		account, exists := accounts[line.AccountID]
		if !exists {
			return GeneralLedger{}, fmt.Errorf("%w: %s", ErrLedgerAccountNotFound, line.AccountID)
		}
		posted, err := account.applyPosting(line.Side, line.Amount, effective)
		if err != nil {
			return GeneralLedger{}, err
		}
		accounts[line.AccountID] = posted
		balances[line.AccountID] = posted.Balance
	}

	updated := g
	updated.Accounts = accounts
	updated.Balances = balances
	updated.PostedEntryIDs = g.clonePostedEntryIDs()
	updated.PostedEntryIDs[entry.EntryID] = struct{}{}
	return updated, nil
}

// BeginClosing moves the ledger into ClosingInProgress, stopping further
// postings while the remaining periods are hard-closed.
func (g GeneralLedger) BeginClosing() (GeneralLedger, error) {
	switch g.Status {
	case LedgerActive:
	case LedgerClosingInProgress:
		return GeneralLedger{}, ErrLedgerAlreadyClosing
	default:
		return GeneralLedger{}, fmt.Errorf("%w: status is %s", ErrLedgerNotClosable, g.Status)
	}
	updated := g
	updated.Status = LedgerClosingInProgress
	return updated, nil
}

// CloseFiscalYear closes the books once every period is hard-closed. It
// computes and freezes net income (total revenue minus total expense) and
// emits the fiscal-year-closed event with the retained-earnings carry-forward.
func (g GeneralLedger) CloseFiscalYear(by string, now time.Time) (GeneralLedger, FiscalYearClosed, error) {
	if g.Status != LedgerActive && g.Status != LedgerClosingInProgress {
		return GeneralLedger{}, FiscalYearClosed{}, fmt.Errorf("%w: status is %s", ErrLedgerNotClosable, g.Status)
	}
	if len(g.Periods) == 0 {
		return GeneralLedger{}, FiscalYearClosed{}, ErrPeriodsNotInitialized
	}
	for _, period := range g.Periods {
		if period.Status != PeriodHardClosed {
			return GeneralLedger{}, FiscalYearClosed{}, fmt.Errorf("%w: period %d is %s",
				ErrPeriodsNotHardClosed, period.Number, period.Status)
		}
	}

	netIncome, err := g.netIncome()
	if err != nil {
		return GeneralLedger{}, FiscalYearClosed{}, err
	}

	updated := g
	updated.Status = LedgerClosed
	updated.NetIncome = &netIncome
	closedAt := now
	updated.ClosedAt = &closedAt
	updated.ClosedBy = by

	event := FiscalYearClosed{
		EventMeta:                    newEventMeta(g.CompanyID, g.FiscalYear, now),
		LedgerID:                     g.LedgerID,
		NetIncome:                    netIncome,
		RetainedEarningsCarryForward: netIncome,
	}
	return updated, event, nil
}

// netIncome computes total revenue balances minus total expense balances.
func (g GeneralLedger) netIncome() (Money, error) {
	totals, err := g.BalancesByType()
	if err != nil {
		return Money{}, err
	}
	return totals[Revenue].Subtract(totals[Expense])
}
