package domain

import (
	"sort"
	"time"
)

// TrialBalanceRow is a single account's line in a trial balance report.
// The balance appears on the account's normal side; a negative balance is
// presented as a positive amount on the opposite side.
type TrialBalanceRow struct {
	AccountID   string      `json:"accountID"`
	AccountCode string      `json:"accountCode"`
	AccountName string      `json:"accountName"`
	AccountType AccountType `json:"accountType"`
	Debit       Money       `json:"debit"`
	Credit      Money       `json:"credit"`
}

// TrialBalance sums all account balances to confirm total debits equal total
// credits. Balanced is true for any ledger reachable through valid postings.
type TrialBalance struct {
	LedgerID     string            `json:"ledgerID"`
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  Money             `json:"totalDebits"`
	TotalCredits Money             `json:"totalCredits"`
	Balanced     bool              `json:"balanced"`
}

// AccountAmount pairs an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	Name        string `json:"name"`
	Amount      Money  `json:"amount"`
}

// IncomeStatement is the profit-and-loss view over the ledger's balances.
type IncomeStatement struct {
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  Money           `json:"totalRevenue"`
	TotalExpenses Money           `json:"totalExpenses"`
	NetIncome     Money           `json:"netIncome"`
}

// BalanceSheet is the financial-position view over the ledger's balances.
// EquationHolds checks Assets = Liabilities + Equity + NetIncome; before the
// year-end close, revenue and expense have not been swept into equity, so the
// net-income term carries the difference.
type BalanceSheet struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      Money           `json:"totalAssets"`
	TotalLiabilities Money           `json:"totalLiabilities"`
	TotalEquity      Money           `json:"totalEquity"`
	NetIncome        Money           `json:"netIncome"`
	EquationHolds    bool            `json:"equationHolds"`
}

// sortedAccounts returns the chart of accounts ordered by code.
func (g GeneralLedger) sortedAccounts() []Account {
	accounts := make([]Account, 0, len(g.Accounts))
	for _, account := range g.Accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Code.String() < accounts[j].Code.String()
	})
	return accounts
}

// GenerateTrialBalance aggregates every account balance onto its normal side
// and totals the two columns.
func (g GeneralLedger) GenerateTrialBalance(asOf time.Time) TrialBalance {
	zero := ZeroMoney(g.Currency)
	totalDebits := zero
	totalCredits := zero

	accounts := g.sortedAccounts()
	rows := make([]TrialBalanceRow, 0, len(accounts))
	for _, account := range accounts {
		balance := g.Balances[account.AccountID]
		side := account.NormalBalance
		if balance.IsNegative() {
			side = side.flip()
			balance = balance.Abs()
		}
		row := TrialBalanceRow{
			AccountID:   account.AccountID,
			AccountCode: account.Code.String(),
			AccountName: account.Name,
			AccountType: account.AccountType,
			Debit:       zero,
			Credit:      zero,
		}
		// Same-currency sums by construction; Add cannot fail.
		if side == Debit {
			row.Debit = balance
			totalDebits, _ = totalDebits.Add(balance)
		} else {
			row.Credit = balance
			totalCredits, _ = totalCredits.Add(balance)
		}
		rows = append(rows, row)
	}

	return TrialBalance{
		LedgerID:     g.LedgerID,
		AsOf:         asOf,
		Rows:         rows,
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Balanced:     totalDebits.Equal(totalCredits),
	}
}

// BalancesByType totals the account balances per account type.
func (g GeneralLedger) BalancesByType() (map[AccountType]Money, error) {
	totals := map[AccountType]Money{
		Asset:     ZeroMoney(g.Currency),
		Liability: ZeroMoney(g.Currency),
		Equity:    ZeroMoney(g.Currency),
		Revenue:   ZeroMoney(g.Currency),
		Expense:   ZeroMoney(g.Currency),
	}
	for id, account := range g.Accounts {
		sum, err := totals[account.AccountType].Add(g.Balances[id])
		if err != nil {
			return nil, err
		}
		totals[account.AccountType] = sum
	}
	return totals, nil
}

// GenerateIncomeStatement builds the profit-and-loss report from the current balances.
func (g GeneralLedger) GenerateIncomeStatement() (IncomeStatement, error) {
	statement := IncomeStatement{
		Revenue:       []AccountAmount{},
		Expenses:      []AccountAmount{},
		TotalRevenue:  ZeroMoney(g.Currency),
		TotalExpenses: ZeroMoney(g.Currency),
	}
	for _, account := range g.sortedAccounts() {
		amount := AccountAmount{
			AccountID:   account.AccountID,
			AccountCode: account.Code.String(),
			Name:        account.Name,
			Amount:      g.Balances[account.AccountID],
		}
		var err error
		switch account.AccountType {
		case Revenue:
			statement.Revenue = append(statement.Revenue, amount)
			statement.TotalRevenue, err = statement.TotalRevenue.Add(amount.Amount)
		case Expense:
			statement.Expenses = append(statement.Expenses, amount)
			statement.TotalExpenses, err = statement.TotalExpenses.Add(amount.Amount)
		}
		if err != nil {
			return IncomeStatement{}, err
		}
	}
	netIncome, err := statement.TotalRevenue.Subtract(statement.TotalExpenses)
	if err != nil {
		return IncomeStatement{}, err
	}
	statement.NetIncome = netIncome
	return statement, nil
}

// GenerateBalanceSheet builds the financial-position report and audits the
// accounting equation over the current balances.
func (g GeneralLedger) GenerateBalanceSheet() (BalanceSheet, error) {
	sheet := BalanceSheet{
		Assets:           []AccountAmount{},
		Liabilities:      []AccountAmount{},
		Equity:           []AccountAmount{},
		TotalAssets:      ZeroMoney(g.Currency),
		TotalLiabilities: ZeroMoney(g.Currency),
		TotalEquity:      ZeroMoney(g.Currency),
	}
	for _, account := range g.sortedAccounts() {
		amount := AccountAmount{
			AccountID:   account.AccountID,
			AccountCode: account.Code.String(),
			Name:        account.Name,
			Amount:      g.Balances[account.AccountID],
		}
		var err error
		switch account.AccountType {
		case Asset:
			sheet.Assets = append(sheet.Assets, amount)
			sheet.TotalAssets, err = sheet.TotalAssets.Add(amount.Amount)
		case Liability:
			sheet.Liabilities = append(sheet.Liabilities, amount)
			sheet.TotalLiabilities, err = sheet.TotalLiabilities.Add(amount.Amount)
		case Equity:
			sheet.Equity = append(sheet.Equity, amount)
			sheet.TotalEquity, err = sheet.TotalEquity.Add(amount.Amount)
		}
		if err != nil {
			return BalanceSheet{}, err
		}
	}
	netIncome, err := g.netIncome()
	if err != nil {
		return BalanceSheet{}, err
	}
	sheet.NetIncome = netIncome

	claims, err := sheet.TotalLiabilities.Add(sheet.TotalEquity)
	if err != nil {
		return BalanceSheet{}, err
	}
	claims, err = claims.Add(netIncome)
	if err != nil {
		return BalanceSheet{}, err
	}
	sheet.EquationHolds = sheet.TotalAssets.Equal(claims)
	return sheet, nil
}
