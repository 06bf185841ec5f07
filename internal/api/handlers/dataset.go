package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/dataset-ingest/internal/metrics"
	"github.com/codyseavey/dataset-ingest/internal/middleware"
	"github.com/codyseavey/dataset-ingest/internal/models"
	"github.com/codyseavey/dataset-ingest/internal/services"
)

// DatasetHandler wires the ingest pipeline: normalize, dedup, append, count.
type DatasetHandler struct {
	normalizer *services.Normalizer
	cache      *services.DedupCache
	writer     *services.LogWriter
	counters   *metrics.Counters
}

func NewDatasetHandler(normalizer *services.Normalizer, cache *services.DedupCache, writer *services.LogWriter, counters *metrics.Counters) *DatasetHandler {
	return &DatasetHandler{
		normalizer: normalizer,
		cache:      cache,
		writer:     writer,
		counters:   counters,
	}
}

// Ingest handles POST /api/dataset.
// Admission (rate limit, body size) has already run as middleware; rejected
// requests never reach this handler and touch no counters.
func (h *DatasetHandler) Ingest(c *gin.Context) {
	var record models.Record
	if err := c.ShouldBindJSON(&record); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		// Malformed or wrongly-typed body: counted as a received attempt,
		// same as a record that fails validation.
		h.counters.IncTotal()
		metrics.RecordsInvalidTotal.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid source_text"})
		return
	}

	// "total" counts attempts that reach normalization, not successes.
	h.counters.IncTotal()

	entry, err := h.normalizer.Normalize(record)
	if err != nil {
		metrics.RecordsInvalidTotal.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid source_text"})
		return
	}

	key := services.DedupKey(entry)
	if h.cache.SeenRecently(key) {
		h.counters.IncSkipped()
		c.JSON(http.StatusOK, gin.H{"skipped": true})
		return
	}

	// Mark before writing so a concurrent identical request sees the key as
	// soon as possible; the remaining check-then-mark race is accepted.
	h.cache.MarkSeen(key)

	if err := h.writer.Append(c.Request.Context(), entry); err != nil {
		log.Printf("Ingest: append failed (request_id=%s): %v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "WriteError"})
		return
	}

	h.counters.IncSaved()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Health handles GET /api/health. No side effects.
func (h *DatasetHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Metrics handles GET /api/metrics with the process-lifetime counters.
func (h *DatasetHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.counters.Snapshot())
}
