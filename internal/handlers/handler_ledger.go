package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kichoapp/kicho_backend/internal/core/ports/services"
	"github.com/kichoapp/kicho_backend/internal/dto"
	"github.com/kichoapp/kicho_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests for ledgers, their chart of accounts
// and the period/closing lifecycle.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers routes related to ledgers.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledgers := rg.Group("/ledgers")
	{
		ledgers.POST("", h.createLedger)
		ledgers.GET("", h.listLedgers)
		ledgers.GET("/:ledgerID", h.getLedger)

		ledgers.POST("/:ledgerID/accounts", h.addAccount)
		ledgers.POST("/:ledgerID/accounts/:accountID/deactivate", h.deactivateAccount)
		ledgers.POST("/:ledgerID/accounts/:accountID/reactivate", h.reactivateAccount)

		ledgers.POST("/:ledgerID/periods", h.initializePeriods)
		ledgers.POST("/:ledgerID/periods/:number/open", h.openPeriod)
		ledgers.POST("/:ledgerID/periods/:number/close", h.closePeriod)

		ledgers.POST("/:ledgerID/closing", h.beginClosing)
		ledgers.POST("/:ledgerID/close", h.closeFiscalYear)
	}
}

// createLedger opens a new fiscal-year ledger for a company.
func (h *ledgerHandler) createLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("company_id", req.CompanyID), slog.Int("fiscal_year", req.FiscalYear))
	logger.Info("Received request to create ledger")

	ledger, err := h.ledgerService.CreateLedger(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "create ledger")
		return
	}

	logger.Info("Ledger created successfully", slog.String("ledger_id", ledger.LedgerID))
	c.JSON(http.StatusCreated, dto.ToLedgerResponse(ledger))
}

// getLedger retrieves a ledger with its accounts and periods.
func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	logger = logger.With(slog.String("ledger_id", ledgerID))
	logger.Info("Received request to get ledger")

	ledger, err := h.ledgerService.GetLedgerByID(c.Request.Context(), ledgerID)
	if err != nil {
		respondWithError(c, logger, err, "retrieve ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// listLedgers retrieves all ledgers of one company, newest fiscal year first.
func (h *ledgerHandler) listLedgers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Query("companyID")
	if companyID == "" {
		logger.Warn("Missing companyID query parameter for ListLedgers")
		c.JSON(http.StatusBadRequest, gin.H{"error": "companyID query parameter is required"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID))
	logger.Info("Received request to list ledgers")

	ledgers, err := h.ledgerService.ListLedgersByCompany(c.Request.Context(), companyID)
	if err != nil {
		respondWithError(c, logger, err, "list ledgers")
		return
	}

	logger.Info("Ledgers listed successfully", slog.Int("count", len(ledgers)))
	c.JSON(http.StatusOK, gin.H{"ledgers": dto.ToListLedgerResponse(ledgers)})
}

// addAccount adds an account to the ledger's chart of accounts.
func (h *ledgerHandler) addAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("ledger_id", ledgerID), slog.String("account_code", req.Code))
	logger.Info("Received request to add account")

	account, err := h.ledgerService.AddAccount(c.Request.Context(), ledgerID, req)
	if err != nil {
		respondWithError(c, logger, err, "add account")
		return
	}

	logger.Info("Account added successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// deactivateAccount marks a zero-balance account as inactive.
func (h *ledgerHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	accountID := c.Param("accountID")

	var req dto.PerformedByRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DeactivateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("ledger_id", ledgerID), slog.String("account_id", accountID))
	logger.Info("Received request to deactivate account")

	if err := h.ledgerService.DeactivateAccount(c.Request.Context(), ledgerID, accountID, req.PerformedBy); err != nil {
		respondWithError(c, logger, err, "deactivate account")
		return
	}

	logger.Info("Account deactivated successfully")
	c.Status(http.StatusNoContent)
}

// reactivateAccount marks a previously deactivated account as active again.
func (h *ledgerHandler) reactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	accountID := c.Param("accountID")

	var req dto.PerformedByRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReactivateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("ledger_id", ledgerID), slog.String("account_id", accountID))
	logger.Info("Received request to reactivate account")

	if err := h.ledgerService.ReactivateAccount(c.Request.Context(), ledgerID, accountID, req.PerformedBy); err != nil {
		respondWithError(c, logger, err, "reactivate account")
		return
	}

	logger.Info("Account reactivated successfully")
	c.Status(http.StatusNoContent)
}

// initializePeriods divides the fiscal year into accounting periods.
func (h *ledgerHandler) initializePeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.InitializePeriodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for InitializePeriods", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("ledger_id", ledgerID), slog.Int("period_count", req.Count))
	logger.Info("Received request to initialize periods")

	ledger, err := h.ledgerService.InitializePeriods(c.Request.Context(), ledgerID, req.Count)
	if err != nil {
		respondWithError(c, logger, err, "initialize periods")
		return
	}

	logger.Info("Periods initialized successfully")
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// openPeriod opens one accounting period for posting.
func (h *ledgerHandler) openPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		logger.Warn("Invalid period number in path", slog.String("number", c.Param("number")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Period number must be an integer"})
		return
	}

	logger = logger.With(slog.String("ledger_id", ledgerID), slog.Int("period_number", number))
	logger.Info("Received request to open period")

	if err := h.ledgerService.OpenPeriod(c.Request.Context(), ledgerID, number); err != nil {
		respondWithError(c, logger, err, "open period")
		return
	}

	logger.Info("Period opened successfully")
	c.Status(http.StatusNoContent)
}

// closePeriod soft- or hard-closes one accounting period.
func (h *ledgerHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		logger.Warn("Invalid period number in path", slog.String("number", c.Param("number")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Period number must be an integer"})
		return
	}

	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ClosePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("ledger_id", ledgerID), slog.Int("period_number", number), slog.Bool("hard", req.Hard))
	logger.Info("Received request to close period")

	if err := h.ledgerService.ClosePeriod(c.Request.Context(), ledgerID, number, req.PerformedBy, req.Hard); err != nil {
		respondWithError(c, logger, err, "close period")
		return
	}

	logger.Info("Period closed successfully")
	c.Status(http.StatusNoContent)
}

// beginClosing freezes the ledger for the year-end closing procedure.
func (h *ledgerHandler) beginClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	logger = logger.With(slog.String("ledger_id", ledgerID))
	logger.Info("Received request to begin fiscal-year closing")

	if err := h.ledgerService.BeginClosing(c.Request.Context(), ledgerID); err != nil {
		respondWithError(c, logger, err, "begin closing")
		return
	}

	logger.Info("Fiscal-year closing started successfully")
	c.Status(http.StatusNoContent)
}

// closeFiscalYear computes net income and permanently closes the books.
func (h *ledgerHandler) closeFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.PerformedByRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseFiscalYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("ledger_id", ledgerID))
	logger.Info("Received request to close fiscal year")

	ledger, err := h.ledgerService.CloseFiscalYear(c.Request.Context(), ledgerID, req.PerformedBy)
	if err != nil {
		respondWithError(c, logger, err, "close fiscal year")
		return
	}

	logger.Info("Fiscal year closed successfully")
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}
