package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cashbook-dev/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-dev/cashbook/internal/core/ports/repositories"
	"github.com/cashbook-dev/cashbook/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// catalogCollections maps URL path segments onto document-store collections
// and the JSON field that carries each document's identifier.
var catalogCollections = map[string]struct {
	collection string
	idField    string
}{
	"currencies":      {domain.CollectionCurrency, "currencyId"},
	"wallets":         {domain.CollectionWallet, "walletId"},
	"assets":          {domain.CollectionAsset, "assetId"},
	"parties":         {domain.CollectionParty, "partyId"},
	"expense-avenues": {domain.CollectionAvenue, "avenueId"},
	"income-sources":  {domain.CollectionSource, "sourceId"},
	"tags":            {domain.CollectionTag, "tagId"},
}

// catalogHandler handles HTTP requests for catalog documents (currencies,
// wallets, assets and the rest). Catalogs are schemaless on this surface;
// the accounting core decodes only the fields it needs.
type catalogHandler struct {
	repo portsrepo.DocumentRepository
}

func newCatalogHandler(repo portsrepo.DocumentRepository) *catalogHandler {
	return &catalogHandler{repo: repo}
}

// registerCatalogRoutes registers routes for catalog documents.
func registerCatalogRoutes(rg *gin.RouterGroup, repo portsrepo.DocumentRepository) {
	h := newCatalogHandler(repo)

	catalog := rg.Group("/catalog/:kind")
	{
		catalog.POST("", h.upsertDocument)
		catalog.GET("", h.listDocuments)
		catalog.DELETE("/:docId", h.deleteDocument)
	}
}

func (h *catalogHandler) resolveKind(c *gin.Context) (collection, idField string, ok bool) {
	kind, found := catalogCollections[c.Param("kind")]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown catalog kind"})
		return "", "", false
	}
	return kind.collection, kind.idField, true
}

func (h *catalogHandler) upsertDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	collection, idField, ok := h.resolveKind(c)
	if !ok {
		return
	}

	var doc map[string]any
	if err := c.ShouldBindJSON(&doc); err != nil {
		logger.Warn("Failed to bind JSON for catalog upsert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	docID, _ := doc[idField].(string)
	created := docID == ""
	if created {
		docID = uuid.NewString()
		doc[idField] = docID
	}

	logger = logger.With(slog.String("collection", collection), slog.String("doc_id", docID))
	if err := h.repo.Upsert(c.Request.Context(), collection, docID, doc); err != nil {
		logger.Error("Failed to upsert catalog document", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document"})
		return
	}

	logger.Info("Catalog document saved")
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, doc)
}

func (h *catalogHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	collection, _, ok := h.resolveKind(c)
	if !ok {
		return
	}

	docs, err := h.repo.ListByCollection(c.Request.Context(), collection)
	if err != nil {
		logger.Error("Failed to list catalog documents", slog.String("collection", collection), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}

	logger.Info("Catalog documents listed", slog.String("collection", collection), slog.Int("count", len(docs)))
	c.JSON(http.StatusOK, docs)
}

func (h *catalogHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	collection, _, ok := h.resolveKind(c)
	if !ok {
		return
	}
	docID := c.Param("docId")

	if err := h.repo.Remove(c.Request.Context(), collection, docID); err != nil {
		logger.Error("Failed to delete catalog document", slog.String("collection", collection), slog.String("doc_id", docID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	logger.Info("Catalog document deleted", slog.String("collection", collection), slog.String("doc_id", docID))
	c.Status(http.StatusNoContent)
}
