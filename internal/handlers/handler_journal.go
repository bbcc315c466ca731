package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kichoapp/kicho_backend/internal/core/ports/services"
	"github.com/kichoapp/kicho_backend/internal/dto"
	"github.com/kichoapp/kicho_backend/internal/middleware"
)

// journalHandler handles HTTP requests for the journal entry lifecycle.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers routes related to journal entries.
// Creation, posting and reversal are nested under the owning ledger;
// reads and the draft workflow address entries directly.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	ledgers := rg.Group("/ledgers/:ledgerID/entries")
	{
		ledgers.POST("", h.createEntry)
		ledgers.GET("", h.listEntries)
		ledgers.POST("/:entryID/post", h.postEntry)
		ledgers.POST("/:entryID/reverse", h.reverseEntry)
	}

	entries := rg.Group("/entries")
	{
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/submit", h.submitEntry)
		entries.POST("/:entryID/approve", h.approveEntry)
	}
}

// createEntry creates a draft journal entry with its debit and credit lines.
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("ledger_id", ledgerID), slog.Int("line_count", len(req.Lines)))
	logger.Info("Received request to create journal entry")

	entry, err := h.journalService.CreateEntry(c.Request.Context(), ledgerID, req)
	if err != nil {
		respondWithError(c, logger, err, "create journal entry")
		return
	}

	logger.Info("Journal entry created successfully",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry retrieves a journal entry with its lines.
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	logger = logger.With(slog.String("entry_id", entryID))
	logger.Info("Received request to get journal entry")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondWithError(c, logger, err, "retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries retrieves a page of a ledger's journal entries.
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("ledger_id", ledgerID), slog.Int("limit", params.Limit))
	logger.Info("Received request to list journal entries")

	entries, nextToken, err := h.journalService.ListEntriesByLedger(c.Request.Context(), ledgerID, params.Limit, params.NextToken)
	if err != nil {
		respondWithError(c, logger, err, "list journal entries")
		return
	}

	logger.Info("Journal entries listed successfully", slog.Int("count", len(entries)))
	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, nextToken))
}

// submitEntry moves a draft entry into pending approval.
func (h *journalHandler) submitEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.PerformedByRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID))
	logger.Info("Received request to submit journal entry")

	entry, err := h.journalService.SubmitEntry(c.Request.Context(), entryID, req.PerformedBy)
	if err != nil {
		respondWithError(c, logger, err, "submit journal entry")
		return
	}

	logger.Info("Journal entry submitted successfully")
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// approveEntry approves a pending entry.
func (h *journalHandler) approveEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.PerformedByRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApproveEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID))
	logger.Info("Received request to approve journal entry")

	entry, err := h.journalService.ApproveEntry(c.Request.Context(), entryID, req.PerformedBy)
	if err != nil {
		respondWithError(c, logger, err, "approve journal entry")
		return
	}

	logger.Info("Journal entry approved successfully")
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry finalizes an entry and folds it into the ledger's balances.
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	entryID := c.Param("entryID")

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("ledger_id", ledgerID), slog.String("entry_id", entryID))
	logger.Info("Received request to post journal entry")

	entry, err := h.journalService.PostEntry(c.Request.Context(), ledgerID, entryID, req)
	if err != nil {
		respondWithError(c, logger, err, "post journal entry")
		return
	}

	logger.Info("Journal entry posted successfully")
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry creates and posts the mirror-image correction of a posted entry.
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	entryID := c.Param("entryID")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("ledger_id", ledgerID), slog.String("entry_id", entryID))
	logger.Info("Received request to reverse journal entry")

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), ledgerID, entryID, req)
	if err != nil {
		respondWithError(c, logger, err, "reverse journal entry")
		return
	}

	logger.Info("Journal entry reversed successfully", slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}
