package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kichoapp/kicho_backend/internal/apperrors"
	"github.com/kichoapp/kicho_backend/internal/core/domain"
	portssvc "github.com/kichoapp/kicho_backend/internal/core/ports/services"
	"github.com/kichoapp/kicho_backend/internal/dto"
	"github.com/kichoapp/kicho_backend/internal/handlers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetLedgerByID(ctx context.Context, ledgerID string) (*domain.GeneralLedger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedger), args.Error(1)
}
func (m *MockLedgerService) GetLedgerByCompanyAndYear(ctx context.Context, companyID string, fiscalYear int) (*domain.GeneralLedger, error) {
	args := m.Called(ctx, companyID, fiscalYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedger), args.Error(1)
}
func (m *MockLedgerService) ListLedgersByCompany(ctx context.Context, companyID string) ([]domain.GeneralLedger, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneralLedger), args.Error(1)
}
func (m *MockLedgerService) CreateLedger(ctx context.Context, req dto.CreateLedgerRequest) (*domain.GeneralLedger, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedger), args.Error(1)
}
func (m *MockLedgerService) AddAccount(ctx context.Context, ledgerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, ledgerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockLedgerService) DeactivateAccount(ctx context.Context, ledgerID, accountID, performedBy string) error {
	args := m.Called(ctx, ledgerID, accountID, performedBy)
	return args.Error(0)
}
func (m *MockLedgerService) ReactivateAccount(ctx context.Context, ledgerID, accountID, performedBy string) error {
	args := m.Called(ctx, ledgerID, accountID, performedBy)
	return args.Error(0)
}
func (m *MockLedgerService) InitializePeriods(ctx context.Context, ledgerID string, count int) (*domain.GeneralLedger, error) {
	args := m.Called(ctx, ledgerID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedger), args.Error(1)
}
func (m *MockLedgerService) OpenPeriod(ctx context.Context, ledgerID string, number int) error {
	args := m.Called(ctx, ledgerID, number)
	return args.Error(0)
}
func (m *MockLedgerService) ClosePeriod(ctx context.Context, ledgerID string, number int, performedBy string, hard bool) error {
	args := m.Called(ctx, ledgerID, number, performedBy, hard)
	return args.Error(0)
}
func (m *MockLedgerService) BeginClosing(ctx context.Context, ledgerID string) error {
	args := m.Called(ctx, ledgerID)
	return args.Error(0)
}
func (m *MockLedgerService) CloseFiscalYear(ctx context.Context, ledgerID, performedBy string) (*domain.GeneralLedger, error) {
	args := m.Called(ctx, ledgerID, performedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedger), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntriesByLedger(ctx context.Context, ledgerID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, ledgerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.JournalEntry), token, args.Error(2)
}
func (m *MockJournalService) CreateEntry(ctx context.Context, ledgerID string, req dto.CreateEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, ledgerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) SubmitEntry(ctx context.Context, entryID, performedBy string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, performedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ApproveEntry(ctx context.Context, entryID, performedBy string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, performedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) PostEntry(ctx context.Context, ledgerID, entryID string, req dto.PostEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, ledgerID, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ReverseEntry(ctx context.Context, ledgerID, entryID string, req dto.ReverseEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, ledgerID, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetTrialBalance(ctx context.Context, ledgerID string, asOf time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, ledgerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}
func (m *MockReportingService) GetIncomeStatement(ctx context.Context, ledgerID string) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}
func (m *MockReportingService) GetBalanceSheet(ctx context.Context, ledgerID string) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockLedgerService    *MockLedgerService
	mockJournalService   *MockJournalService
	mockReportingService *MockReportingService
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockLedgerService = new(MockLedgerService)
	suite.mockJournalService = new(MockJournalService)
	suite.mockReportingService = new(MockReportingService)

	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Ledger:    suite.mockLedgerService,
		Journal:   suite.mockJournalService,
		Reporting: suite.mockReportingService,
	})
}

func (suite *LedgerHandlerTestSuite) fixtureLedger() *domain.GeneralLedger {
	jpy, err := domain.CurrencyByCode("JPY")
	suite.Require().NoError(err)
	ledger, _, err := domain.NewGeneralLedger(
		"led-1", "comp-1", 2024,
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		jpy, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	ledger.Version = 1
	return &ledger
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestCreateLedger_Success() {
	expected := suite.fixtureLedger()

	suite.mockLedgerService.On("CreateLedger",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateLedgerRequest) bool {
			return req.CompanyID == "comp-1" && req.FiscalYear == 2024
		}),
	).Return(expected, nil).Once()

	body := map[string]any{
		"companyID":    "comp-1",
		"fiscalYear":   2024,
		"startDate":    "2024-04-01T00:00:00Z",
		"endDate":      "2025-03-31T00:00:00Z",
		"currencyCode": "JPY",
		"performedBy":  "user-1",
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/ledgers", body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.LedgerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("led-1", resp.LedgerID)
	suite.Equal("JPY", resp.CurrencyCode)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateLedger_DuplicateYear() {
	suite.mockLedgerService.On("CreateLedger", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: ledger for company comp-1 fiscal year 2024", apperrors.ErrDuplicate)).Once()

	body := map[string]any{
		"companyID":    "comp-1",
		"fiscalYear":   2024,
		"startDate":    "2024-04-01T00:00:00Z",
		"endDate":      "2025-03-31T00:00:00Z",
		"currencyCode": "JPY",
		"performedBy":  "user-1",
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/ledgers", body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestAddAccount_InvalidCodeRejectedByBinding() {
	body := map[string]any{
		"code":        "901",
		"name":        "Mystery",
		"nameJa":      "謎",
		"performedBy": "user-1",
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/ledgers/led-1/accounts", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "AddAccount")
}

func (suite *LedgerHandlerTestSuite) TestGetLedger_NotFound() {
	suite.mockLedgerService.On("GetLedgerByID", mock.Anything, "led-missing").
		Return(nil, fmt.Errorf("%w: ledger led-missing", apperrors.ErrNotFound)).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/ledgers/led-missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestPostEntry_ClosedPeriod() {
	suite.mockJournalService.On("PostEntry", mock.Anything, "led-1", "je-1", mock.Anything).
		Return(nil, domain.ErrPeriodClosed).Once()

	body := map[string]any{"performedBy": "user-1"}
	w := suite.doJSON(http.MethodPost, "/api/v1/ledgers/led-1/entries/je-1/post", body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestCreateEntry_UnbalancedLines() {
	suite.mockJournalService.On("CreateEntry", mock.Anything, "led-1", mock.Anything).
		Return(nil, domain.ErrEntryUnbalanced).Once()

	body := map[string]any{
		"transactionDate": "2024-04-10T00:00:00Z",
		"description":     "Unbalanced sale",
		"performedBy":     "user-1",
		"lines": []map[string]any{
			{"accountID": "acc-cash", "side": "DEBIT", "amount": "10000"},
			{"accountID": "acc-sales", "side": "CREDIT", "amount": "9000"},
		},
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/ledgers/led-1/entries", body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetTrialBalance_Success() {
	jpy, err := domain.CurrencyByCode("JPY")
	suite.Require().NoError(err)
	total, err := domain.NewMoney(decimal.NewFromInt(100000), jpy)
	suite.Require().NoError(err)

	asOf := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)
	expected := &domain.TrialBalance{
		LedgerID:     "led-1",
		AsOf:         asOf,
		Rows:         []domain.TrialBalanceRow{},
		TotalDebits:  total,
		TotalCredits: total,
		Balanced:     true,
	}
	suite.mockReportingService.On("GetTrialBalance", mock.Anything, "led-1", asOf).
		Return(expected, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/ledgers/led-1/reports/trial-balance?asOf=2024-09-30", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TrialBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balanced)
	suite.True(resp.TotalDebits.Equal(resp.TotalCredits))
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) doJSON(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Run Test Suite ---
func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
