package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lesson-server/internal/assets"
	"lesson-server/internal/job"
	"lesson-server/internal/library"
	"lesson-server/internal/model"
	"lesson-server/internal/render"
)

// APIError is the standardized error response body.
type APIError struct {
	Error string `json:"error"`
}

// GenerateRequest is the lesson generation request body.
type GenerateRequest struct {
	Topic    string         `json:"topic"`
	Language model.Language `json:"language"`
}

// TopicRequest is the cheat sheet generation request body.
type TopicRequest struct {
	Topic string `json:"topic"`
}

// SentenceRequest is the sentence analysis request body.
type SentenceRequest struct {
	Sentence string `json:"sentence"`
}

// AcceptedResponse is returned for every accepted generation job.
type AcceptedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Handler wires the HTTP surface to the orchestrator and library.
type Handler struct {
	orchestrator *job.Orchestrator
	index        *library.Index
	store        *job.Store
	engine       *render.Engine
	assets       *assets.Library
	logger       *zap.Logger
}

func NewHandler(
	orchestrator *job.Orchestrator,
	index *library.Index,
	store *job.Store,
	engine *render.Engine,
	assetLibrary *assets.Library,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		index:        index,
		store:        store,
		engine:       engine,
		assets:       assetLibrary,
		logger:       logger.Named("HTTPHandler"),
	}
}

// RegisterRoutes mounts the API under /api.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", h.health)

		api.GET("/generate/languages", h.languages)
		api.POST("/generate", h.generateLesson)
		api.POST("/cheat-sheet", h.generateCheatSheet)
		api.POST("/sentence-analysis", h.generateSentenceAnalysis)
		api.POST("/sentence-analysis/preview", h.previewSentenceAnalysis)
		api.POST("/sandbox/preview", h.previewSandbox)

		api.GET("/lessons", h.listItems)
		api.GET("/lessons/:id", h.getItem)

		api.POST("/assets/reload", h.reloadAssets)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) languages(c *gin.Context) {
	c.JSON(http.StatusOK, model.Languages())
}

func (h *Handler) generateLesson(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "Invalid request body"})
		return
	}

	id, err := h.orchestrator.StartLesson(req.Topic, req.Language)
	if err != nil {
		if errors.Is(err, model.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, APIError{Error: "Missing topic"})
			return
		}
		h.logger.Error("failed to start lesson generation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIError{Error: "Failed to start generation"})
		return
	}

	c.JSON(http.StatusAccepted, AcceptedResponse{ID: id, Status: "processing"})
}

func (h *Handler) generateCheatSheet(c *gin.Context) {
	var req TopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "Invalid request body"})
		return
	}

	id, err := h.orchestrator.StartCheatSheet(req.Topic)
	if err != nil {
		if errors.Is(err, model.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, APIError{Error: "Missing topic"})
			return
		}
		h.logger.Error("failed to start cheat sheet generation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIError{Error: "Failed to start generation"})
		return
	}

	c.JSON(http.StatusAccepted, AcceptedResponse{ID: id, Status: "processing"})
}

func (h *Handler) generateSentenceAnalysis(c *gin.Context) {
	var req SentenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "Missing sentence"})
		return
	}

	id, err := h.orchestrator.StartSentenceAnalysis(req.Sentence)
	if err != nil {
		if errors.Is(err, model.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, APIError{Error: "Missing sentence"})
			return
		}
		h.logger.Error("failed to start sentence analysis", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIError{Error: "Failed to start generation"})
		return
	}

	c.JSON(http.StatusAccepted, AcceptedResponse{ID: id, Status: "processing"})
}

func (h *Handler) listItems(c *gin.Context) {
	items, err := h.index.List()
	if err != nil {
		h.logger.Error("failed to list library", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIError{Error: "Failed to list lessons"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// getItem resolves a finished item. While a job is still running, or
// after it failed, the item directory has no metadata yet; the 404
// body then carries the job record so a polling client can tell
// "in progress" from "dead".
func (h *Handler) getItem(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.index.Get(id)
	if err == nil {
		c.JSON(http.StatusOK, detail)
		return
	}
	if !errors.Is(err, model.ErrNotFound) {
		h.logger.Error("failed to read library item", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIError{Error: "Failed to read lesson"})
		return
	}

	if record, ok := h.store.Get(id); ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Lesson not found",
			"status": record,
		})
		return
	}
	c.JSON(http.StatusNotFound, APIError{Error: "Lesson not found"})
}

func (h *Handler) reloadAssets(c *gin.Context) {
	h.assets.Reload()
	c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
}
