package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mr1hm/mycelium/internal/assembler"
	"github.com/mr1hm/mycelium/internal/models"
	"github.com/mr1hm/mycelium/internal/repository"
)

const SystemName = "Mycelium Disaster Network"

type Recorder interface {
	Record(rec *models.AnalysisRecord)
}

type Handler struct {
	assembler      *assembler.Assembler
	recorder       Recorder
	records        repository.AnalysisRepository
	maxUploadBytes int64
}

// NewHandler wires the endpoints. recorder and records may be nil when
// auditing is disabled.
func NewHandler(asm *assembler.Assembler, recorder Recorder, records repository.AnalysisRepository, maxUploadBytes int64) *Handler {
	return &Handler{
		assembler:      asm,
		recorder:       recorder,
		records:        records,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes mounts the handlers. apiMiddleware only applies to /api
// routes so liveness checks are never throttled.
func (h *Handler) RegisterRoutes(r *gin.Engine, apiMiddleware ...gin.HandlerFunc) {
	r.GET("/", h.status)
	r.GET("/health", h.health)

	api := r.Group("/api", apiMiddleware...)
	api.POST("/analyze", h.analyze)
	api.GET("/analyses", h.listAnalyses)
}

func (h *Handler) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "operational",
		"system": SystemName,
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) analyze(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		if c.Request.ContentLength > h.maxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "image: field required"})
		return
	}

	upload, err := readUpload(fh)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "image: unreadable upload"})
		return
	}

	transcript := strings.TrimSpace(c.PostForm("audio_transcript"))
	if transcript == "" {
		transcript = assembler.DefaultTranscript
	}

	resp, outcome := h.assembler.AssembleWithOutcome(c.Request.Context(), upload.Data, upload.MimeType, transcript)

	if h.recorder != nil {
		h.recorder.Record(&models.AnalysisRecord{
			ID:            uuid.NewString(),
			CreatedAt:     time.Now(),
			MimeType:      upload.MimeType,
			ImageSize:     int64(len(upload.Data)),
			Transcript:    transcript,
			AIStatus:      outcome.Status,
			AIError:       outcome.ErrorString(),
			AILatencyMS:   outcome.Latency.Milliseconds(),
			SeverityScore: resp.AIAnalysis.SeverityScore,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	if h.records == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "analysis auditing is disabled",
		})
		return
	}

	filter := repository.Filter{
		Limit: 20, // Default to 20 records if limit param not supplied
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			filter.Limit = lim
		}
	}
	if o := c.Query("offset"); o != "" {
		if off, err := strconv.Atoi(o); err == nil && off >= 0 {
			filter.Offset = off
		}
	}
	if s := c.Query("ai_status"); s != "" {
		status, ok := parseAIStatus(s)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ai_status"})
			return
		}
		filter.AIStatus = &status
	}

	records, err := h.records.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch analyses",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": records})
}

func parseAIStatus(s string) (models.AIStatus, bool) {
	switch strings.ToLower(s) {
	case "ok":
		return models.AIStatusOK, true
	case "failed":
		return models.AIStatusFailed, true
	case "skipped":
		return models.AIStatusSkipped, true
	default:
		return "", false
	}
}
