package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kichoapp/kicho_backend/internal/apperrors"
	"github.com/kichoapp/kicho_backend/internal/core/domain"
	portsrepo "github.com/kichoapp/kicho_backend/internal/core/ports/repositories"
	portssvc "github.com/kichoapp/kicho_backend/internal/core/ports/services"
	"github.com/kichoapp/kicho_backend/internal/dto"
)

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	dispatcher portssvc.EventDispatcher
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(repo portsrepo.LedgerRepositoryFacade, dispatcher portssvc.EventDispatcher) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: repo,
		dispatcher: dispatcher,
	}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) dispatch(ctx context.Context, events ...domain.DomainEvent) {
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, events...)
	}
}

// withLedger loads a ledger, applies a command and saves the result under the
// loaded version. Returned events are dispatched only after the save succeeds.
func (s *ledgerService) withLedger(ctx context.Context, ledgerID string, command func(domain.GeneralLedger) (domain.GeneralLedger, []domain.DomainEvent, error)) (*domain.GeneralLedger, error) {
	current, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	updated, events, err := command(*current)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.SaveLedger(ctx, updated, current.Version); err != nil {
		s.LogError(ctx, err, "Failed to save ledger", slog.String("ledger_id", ledgerID))
		return nil, err
	}
	updated.Version = current.Version + 1

	s.dispatch(ctx, events...)
	return &updated, nil
}

func (s *ledgerService) CreateLedger(ctx context.Context, req dto.CreateLedgerRequest) (*domain.GeneralLedger, error) {
	currency, err := domain.CurrencyByCode(req.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	existing, err := s.ledgerRepo.FindLedgerByCompanyAndYear(ctx, req.CompanyID, req.FiscalYear)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ledger for company %s fiscal year %d", apperrors.ErrDuplicate, req.CompanyID, req.FiscalYear)
	}

	ledger, event, err := domain.NewGeneralLedger(uuid.NewString(), req.CompanyID, req.FiscalYear,
		req.StartDate, req.EndDate, currency, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	if err := s.ledgerRepo.SaveLedger(ctx, ledger, 0); err != nil {
		s.LogError(ctx, err, "Failed to save new ledger", slog.String("company_id", req.CompanyID))
		return nil, err
	}
	ledger.Version = 1

	s.dispatch(ctx, event)
	s.LogInfo(ctx, "Ledger created",
		slog.String("ledger_id", ledger.LedgerID),
		slog.String("company_id", ledger.CompanyID),
		slog.Int("fiscal_year", ledger.FiscalYear))
	return &ledger, nil
}

func (s *ledgerService) GetLedgerByID(ctx context.Context, ledgerID string) (*domain.GeneralLedger, error) {
	return s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
}

func (s *ledgerService) GetLedgerByCompanyAndYear(ctx context.Context, companyID string, fiscalYear int) (*domain.GeneralLedger, error) {
	return s.ledgerRepo.FindLedgerByCompanyAndYear(ctx, companyID, fiscalYear)
}

func (s *ledgerService) ListLedgersByCompany(ctx context.Context, companyID string) ([]domain.GeneralLedger, error) {
	return s.ledgerRepo.ListLedgersByCompany(ctx, companyID)
}

func (s *ledgerService) AddAccount(ctx context.Context, ledgerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	var created domain.Account
	ledger, err := s.withLedger(ctx, ledgerID, func(g domain.GeneralLedger) (domain.GeneralLedger, []domain.DomainEvent, error) {
		now := time.Now()
		account, err := domain.NewAccount(uuid.NewString(), req.Code, req.Name, req.NameJa, g.Currency, now, req.PerformedBy)
		if err != nil {
			return domain.GeneralLedger{}, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		updated, event, err := g.AddAccount(account, now)
		if err != nil {
			return domain.GeneralLedger{}, nil, err
		}
		created = account
		return updated, []domain.DomainEvent{event}, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Account added to ledger",
		slog.String("ledger_id", ledger.LedgerID),
		slog.String("account_code", created.Code.String()))
	return &created, nil
}

func (s *ledgerService) DeactivateAccount(ctx context.Context, ledgerID, accountID, performedBy string) error {
	_, err := s.withLedger(ctx, ledgerID, func(g domain.GeneralLedger) (domain.GeneralLedger, []domain.DomainEvent, error) {
		updated, event, err := g.DeactivateAccount(accountID, performedBy, time.Now())
		if err != nil {
			return domain.GeneralLedger{}, nil, err
		}
		return updated, []domain.DomainEvent{event}, nil
	})
	return err
}

func (s *ledgerService) ReactivateAccount(ctx context.Context, ledgerID, accountID, performedBy string) error {
	_, err := s.withLedger(ctx, ledgerID, func(g domain.GeneralLedger) (domain.GeneralLedger, []domain.DomainEvent, error) {
		updated, err := g.ReactivateAccount(accountID, performedBy, time.Now())
		if err != nil {
			return domain.GeneralLedger{}, nil, err
		}
		return updated, nil, nil
	})
	return err
}

func (s *ledgerService) InitializePeriods(ctx context.Context, ledgerID string, count int) (*domain.GeneralLedger, error) {
	return s.withLedger(ctx, ledgerID, func(g domain.GeneralLedger) (domain.GeneralLedger, []domain.DomainEvent, error) {
		updated, err := g.InitializePeriods(count)
		if err != nil {
			return domain.GeneralLedger{}, nil, err
		}
		return updated, nil, nil
	})
}

func (s *ledgerService) OpenPeriod(ctx context.Context, ledgerID string, number int) error {
	_, err := s.withLedger(ctx, ledgerID, func(g domain.GeneralLedger) (domain.GeneralLedger, []domain.DomainEvent, error) {
		updated, event, err := g.OpenPeriod(number, time.Now())
		if err != nil {
			return domain.GeneralLedger{}, nil, err
		}
		return updated, []domain.DomainEvent{event}, nil
	})
	return err
}

func (s *ledgerService) ClosePeriod(ctx context.Context, ledgerID string, number int, performedBy string, hard bool) error {
	_, err := s.withLedger(ctx, ledgerID, func(g domain.GeneralLedger) (domain.GeneralLedger, []domain.DomainEvent, error) {
		updated, event, err := g.ClosePeriod(number, performedBy, hard, time.Now())
		if err != nil {
			return domain.GeneralLedger{}, nil, err
		}
		return updated, []domain.DomainEvent{event}, nil
	})
	return err
}

func (s *ledgerService) BeginClosing(ctx context.Context, ledgerID string) error {
	_, err := s.withLedger(ctx, ledgerID, func(g domain.GeneralLedger) (domain.GeneralLedger, []domain.DomainEvent, error) {
		updated, err := g.BeginClosing()
		if err != nil {
			return domain.GeneralLedger{}, nil, err
		}
		return updated, nil, nil
	})
	return err
}

func (s *ledgerService) CloseFiscalYear(ctx context.Context, ledgerID, performedBy string) (*domain.GeneralLedger, error) {
	ledger, err := s.withLedger(ctx, ledgerID, func(g domain.GeneralLedger) (domain.GeneralLedger, []domain.DomainEvent, error) {
		updated, event, err := g.CloseFiscalYear(performedBy, time.Now())
		if err != nil {
			return domain.GeneralLedger{}, nil, err
		}
		return updated, []domain.DomainEvent{event}, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year closed",
		slog.String("ledger_id", ledger.LedgerID),
		slog.String("net_income", ledger.NetIncome.String()))
	return ledger, nil
}
