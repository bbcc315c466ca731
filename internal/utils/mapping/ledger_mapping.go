package mapping

import (
	"fmt"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	"github.com/kichoapp/kicho_backend/internal/models"
)

// ToLedgerModel flattens a domain ledger into its database rows: the header,
// one row per account, one per period, and the posted-entry id list.
func ToLedgerModel(g domain.GeneralLedger) (models.Ledger, []models.LedgerAccount, []models.LedgerPeriod, []string) {
	header := models.Ledger{
		LedgerID:      g.LedgerID,
		CompanyID:     g.CompanyID,
		FiscalYear:    g.FiscalYear,
		StartDate:     g.StartDate,
		EndDate:       g.EndDate,
		CurrencyCode:  g.Currency.Code,
		Status:        string(g.Status),
		CurrentPeriod: g.CurrentPeriod,
		Version:       g.Version,
		CreatedAt:     g.CreatedAt,
		ClosedAt:      g.ClosedAt,
		ClosedBy:      g.ClosedBy,
	}
	if g.NetIncome != nil {
		amount := g.NetIncome.Amount()
		header.NetIncome = &amount
	}

	accounts := make([]models.LedgerAccount, 0, len(g.Accounts))
	for _, account := range g.Accounts {
		accounts = append(accounts, models.LedgerAccount{
			AccountID:     account.AccountID,
			LedgerID:      g.LedgerID,
			Code:          account.Code.String(),
			Name:          account.Name,
			NameJa:        account.NameJa,
			AccountType:   string(account.AccountType),
			NormalBalance: string(account.NormalBalance),
			IsActive:      account.IsActive,
			Balance:       account.Balance.Amount(),
			AuditFields: models.AuditFields{
				CreatedAt:     account.CreatedAt,
				CreatedBy:     account.CreatedBy,
				LastUpdatedAt: account.LastUpdatedAt,
				LastUpdatedBy: account.LastUpdatedBy,
			},
		})
	}

	periods := make([]models.LedgerPeriod, len(g.Periods))
	for i, period := range g.Periods {
		periods[i] = models.LedgerPeriod{
			LedgerID:  g.LedgerID,
			Number:    period.Number,
			Name:      period.Name,
			StartDate: period.StartDate,
			EndDate:   period.EndDate,
			Status:    string(period.Status),
			ClosedBy:  period.ClosedBy,
			ClosedAt:  period.ClosedAt,
		}
	}

	postedIDs := make([]string, 0, len(g.PostedEntryIDs))
	for id := range g.PostedEntryIDs {
		postedIDs = append(postedIDs, id)
	}

	return header, accounts, periods, postedIDs
}

// ToLedgerDomain rebuilds a domain ledger from its database rows.
func ToLedgerDomain(header models.Ledger, accounts []models.LedgerAccount, periods []models.LedgerPeriod, postedIDs []string) (*domain.GeneralLedger, error) {
	currency, err := domain.CurrencyByCode(header.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", header.LedgerID, err)
	}

	ledger := domain.GeneralLedger{
		LedgerID:       header.LedgerID,
		CompanyID:      header.CompanyID,
		FiscalYear:     header.FiscalYear,
		StartDate:      header.StartDate,
		EndDate:        header.EndDate,
		Currency:       currency,
		Status:         domain.LedgerStatus(header.Status),
		Accounts:       make(map[string]domain.Account, len(accounts)),
		Balances:       make(map[string]domain.Money, len(accounts)),
		Periods:        make([]domain.AccountingPeriod, len(periods)),
		CurrentPeriod:  header.CurrentPeriod,
		PostedEntryIDs: make(map[string]struct{}, len(postedIDs)),
		Version:        header.Version,
		CreatedAt:      header.CreatedAt,
		ClosedAt:       header.ClosedAt,
		ClosedBy:       header.ClosedBy,
	}

	if header.NetIncome != nil {
		netIncome, err := domain.NewMoney(*header.NetIncome, currency)
		if err != nil {
			return nil, fmt.Errorf("ledger %s net income: %w", header.LedgerID, err)
		}
		ledger.NetIncome = &netIncome
	}

	for _, row := range accounts {
		code, err := domain.NewAccountCode(row.Code)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", row.AccountID, err)
		}
		balance, err := domain.NewMoney(row.Balance, currency)
		if err != nil {
			return nil, fmt.Errorf("account %s balance: %w", row.AccountID, err)
		}
		ledger.Accounts[row.AccountID] = domain.Account{
			AccountID:     row.AccountID,
			Code:          code,
			Name:          row.Name,
			NameJa:        row.NameJa,
			AccountType:   domain.AccountType(row.AccountType),
			NormalBalance: domain.EntrySide(row.NormalBalance),
			IsActive:      row.IsActive,
			Balance:       balance,
			AuditFields: domain.AuditFields{
				CreatedAt:     row.CreatedAt,
				CreatedBy:     row.CreatedBy,
				LastUpdatedAt: row.LastUpdatedAt,
				LastUpdatedBy: row.LastUpdatedBy,
			},
		}
		ledger.Balances[row.AccountID] = balance
	}

	for i, row := range periods {
		ledger.Periods[i] = domain.AccountingPeriod{
			Number:    row.Number,
			Name:      row.Name,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
			Status:    domain.PeriodStatus(row.Status),
			ClosedBy:  row.ClosedBy,
			ClosedAt:  row.ClosedAt,
		}
	}

	for _, id := range postedIDs {
		ledger.PostedEntryIDs[id] = struct{}{}
	}

	return &ledger, nil
}
