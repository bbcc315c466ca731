package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kichoapp/kicho_backend/internal/apperrors"
	"github.com/kichoapp/kicho_backend/internal/core/domain"
)

// Bookkeeping rules surface as sentinel errors from the domain layer; each
// group below maps to one HTTP status so every handler responds consistently.
var badRequestErrors = []error{
	apperrors.ErrValidation,
	domain.ErrInvalidAccountCode,
	domain.ErrAccountNameRequired,
	domain.ErrNegativeAmount,
	domain.ErrPrecisionExceeded,
	domain.ErrUnknownCurrency,
	domain.ErrCurrencyMismatch,
	domain.ErrLedgerCurrencyMismatch,
	domain.ErrLedgerDates,
	domain.ErrEntryUnbalanced,
	domain.ErrEntryEmpty,
	domain.ErrEntryWrongLedger,
	domain.ErrNoPeriodForDate,
	domain.ErrPeriodCount,
	domain.ErrInvalidEntrySide,
	domain.ErrLineCurrency,
}

var notFoundErrors = []error{
	apperrors.ErrNotFound,
	domain.ErrLedgerAccountNotFound,
	domain.ErrPeriodNotFound,
	domain.ErrLineNotFound,
}

var conflictErrors = []error{
	apperrors.ErrDuplicate,
	apperrors.ErrConflict,
	domain.ErrDuplicateAccountCode,
	domain.ErrDuplicateAccountID,
	domain.ErrEntryAlreadyPosted,
	domain.ErrEntryNotPosted,
	domain.ErrEntryStatus,
	domain.ErrEntryNotMutable,
	domain.ErrPeriodClosed,
	domain.ErrPeriodNotOpenable,
	domain.ErrPeriodNotClosable,
	domain.ErrPeriodsInitialized,
	domain.ErrPeriodsNotInitialized,
	domain.ErrPeriodsNotHardClosed,
	domain.ErrLedgerNotActive,
	domain.ErrLedgerNotClosable,
	domain.ErrLedgerAlreadyClosing,
	domain.ErrAccountHasBalance,
	domain.ErrAccountInactive,
}

func errorsIsAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondWithError maps a service error to an HTTP response. action names the
// operation for logging and the opaque 500 message.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errorsIsAny(err, notFoundErrors):
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errorsIsAny(err, conflictErrors):
		logger.Warn("Conflicting state", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errorsIsAny(err, badRequestErrors):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
