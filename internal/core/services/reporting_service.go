package services

import (
	"context"
	"time"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	portsrepo "github.com/kichoapp/kicho_backend/internal/core/ports/repositories"
	portssvc "github.com/kichoapp/kicho_backend/internal/core/ports/services"
)

// reportingService implements the ReportingSvcFacade interface. Reports are
// derived from the ledger's balance snapshot, so the service only needs reads.
type reportingService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo portsrepo.LedgerReader) portssvc.ReportingSvcFacade {
	return &reportingService{ledgerRepo: repo}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetTrialBalance(ctx context.Context, ledgerID string, asOf time.Time) (*domain.TrialBalance, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	tb := ledger.GenerateTrialBalance(asOf)
	return &tb, nil
}

func (s *reportingService) GetIncomeStatement(ctx context.Context, ledgerID string) (*domain.IncomeStatement, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	statement, err := ledger.GenerateIncomeStatement()
	if err != nil {
		return nil, err
	}
	return &statement, nil
}

func (s *reportingService) GetBalanceSheet(ctx context.Context, ledgerID string) (*domain.BalanceSheet, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	sheet, err := ledger.GenerateBalanceSheet()
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}
