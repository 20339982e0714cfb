package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cashbook-dev/cashbook/internal/apperrors"
	"github.com/cashbook-dev/cashbook/internal/core/domain"
	portssvc "github.com/cashbook-dev/cashbook/internal/core/ports/services"
	"github.com/cashbook-dev/cashbook/internal/dto"
	"github.com/cashbook-dev/cashbook/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountingHandler serves the derived journal, ledgers and trial balance.
type accountingHandler struct {
	accountingSvc   portssvc.AccountingSvcFacade
	ledgerSvc       portssvc.LedgerSvcFacade
	trialBalanceSvc portssvc.TrialBalanceSvcFacade
}

func newAccountingHandler(accountingSvc portssvc.AccountingSvcFacade, ledgerSvc portssvc.LedgerSvcFacade, trialBalanceSvc portssvc.TrialBalanceSvcFacade) *accountingHandler {
	return &accountingHandler{
		accountingSvc:   accountingSvc,
		ledgerSvc:       ledgerSvc,
		trialBalanceSvc: trialBalanceSvc,
	}
}

func registerAccountingRoutes(rg *gin.RouterGroup, accountingSvc portssvc.AccountingSvcFacade, ledgerSvc portssvc.LedgerSvcFacade, trialBalanceSvc portssvc.TrialBalanceSvcFacade) {
	h := newAccountingHandler(accountingSvc, ledgerSvc, trialBalanceSvc)

	accountingGroup := rg.Group("/accounting")
	{
		accountingGroup.GET("/journal", h.getJournal)
		accountingGroup.GET("/ledger/:accountCode", h.getLedger)
		accountingGroup.GET("/trial-balance", h.getTrialBalance)
	}
}

// respondBuildError maps build failures onto HTTP statuses. Data-integrity
// failures are 500s: they mean corrupted documents, not bad requests.
func respondBuildError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrMalformattedData), errors.Is(err, apperrors.ErrMissingCurrency):
		logger.Error("Journal build failed on data integrity", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored records are inconsistent; journal cannot be derived"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Journal build failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive journal"})
	}
}

func (h *accountingHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.accountingSvc.InitiateAccounting(c.Request.Context(), nil)
	if err != nil {
		respondBuildError(c, logger, err)
		return
	}

	entries := result.JournalEntryList
	startStr, endStr := c.Query("startEpoch"), c.Query("endEpoch")
	if startStr != "" || endStr != "" {
		filters, ok := parseEpochWindow(c, startStr, endStr)
		if !ok {
			return
		}
		entries, err = h.accountingSvc.ApplyJournalFilters(c.Request.Context(), entries, filters)
		if err != nil {
			respondBuildError(c, logger, err)
			return
		}
	}

	logger.Info("Journal served", slog.Int("entry_count", len(entries)))
	c.JSON(http.StatusOK, dto.ToJournalResponse(entries))
}

func parseEpochWindow(c *gin.Context, startStr, endStr string) (domain.JournalFilters, bool) {
	filters := domain.JournalFilters{EndEpoch: int64(^uint64(0) >> 1)}
	if startStr != "" {
		start, err := strconv.ParseInt(startStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startEpoch must be an integer timestamp"})
			return filters, false
		}
		filters.StartEpoch = start
	}
	if endStr != "" {
		end, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endEpoch must be an integer timestamp"})
			return filters, false
		}
		filters.EndEpoch = end
	}
	if filters.EndEpoch < filters.StartEpoch {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endEpoch must not be before startEpoch"})
		return filters, false
	}
	return filters, true
}

func (h *accountingHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountCode := domain.AccountCode(c.Param("accountCode"))

	result, err := h.accountingSvc.InitiateAccounting(c.Request.Context(), nil)
	if err != nil {
		respondBuildError(c, logger, err)
		return
	}

	ledger, err := h.ledgerSvc.GenerateLedgerFromJournal(c.Request.Context(), result.JournalEntryList, result.AccountMap, accountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown account code"})
			return
		}
		respondBuildError(c, logger, err)
		return
	}

	logger.Info("Ledger served",
		slog.String("account_code", string(accountCode)),
		slog.Int("row_count", len(ledger.EntryList)))
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

func (h *accountingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.accountingSvc.InitiateAccounting(c.Request.Context(), nil)
	if err != nil {
		respondBuildError(c, logger, err)
		return
	}

	report, err := h.trialBalanceSvc.GenerateTrialBalanceFromJournal(c.Request.Context(), result.JournalEntryList, result.AccountMap)
	if err != nil {
		respondBuildError(c, logger, err)
		return
	}

	for _, ctb := range report.CurrencyList {
		if !ctb.IsReconciled {
			logger.Warn("Trial balance not reconciled", slog.String("currency_id", ctb.CurrencyID))
		}
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}
