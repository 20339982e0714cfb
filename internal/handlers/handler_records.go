package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cashbook-dev/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-dev/cashbook/internal/core/ports/repositories"
	"github.com/cashbook-dev/cashbook/internal/dto"
	"github.com/cashbook-dev/cashbook/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// recordHandler handles HTTP requests for raw record documents. Writes go
// straight to the document store; the accounting cache invalidates itself via
// the store's change notifications.
type recordHandler struct {
	repo portsrepo.DocumentRepository
}

func newRecordHandler(repo portsrepo.DocumentRepository) *recordHandler {
	return &recordHandler{repo: repo}
}

// registerRecordRoutes registers routes for record documents.
func registerRecordRoutes(rg *gin.RouterGroup, repo portsrepo.DocumentRepository) {
	h := newRecordHandler(repo)

	records := rg.Group("/records")
	{
		records.POST("", h.upsertRecord)
		records.GET("", h.listRecords)
		records.DELETE("/:recordId", h.deleteRecord)
	}
}

func (h *recordHandler) upsertRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	record := req.ToDomainRecord()
	created := record.RecordID == ""
	if created {
		record.RecordID = uuid.NewString()
	}

	logger = logger.With(slog.String("record_id", record.RecordID), slog.String("record_type", string(record.Type)))
	if err := h.repo.Upsert(c.Request.Context(), domain.CollectionRecord, record.RecordID, record); err != nil {
		logger.Error("Failed to upsert record", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save record"})
		return
	}

	logger.Info("Record saved")
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, record)
}

func (h *recordHandler) listRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	docs, err := h.repo.ListByCollection(c.Request.Context(), domain.CollectionRecord)
	if err != nil {
		logger.Error("Failed to list records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list records"})
		return
	}

	records, err := portsrepo.DecodeDocs[domain.Record](docs)
	if err != nil {
		logger.Error("Failed to decode records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored records are unreadable"})
		return
	}

	logger.Info("Records listed", slog.Int("count", len(records)))
	c.JSON(http.StatusOK, records)
}

func (h *recordHandler) deleteRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordId")

	if err := h.repo.Remove(c.Request.Context(), domain.CollectionRecord, recordID); err != nil {
		logger.Error("Failed to delete record", slog.String("record_id", recordID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
		return
	}

	logger.Info("Record deleted", slog.String("record_id", recordID))
	c.Status(http.StatusNoContent)
}
