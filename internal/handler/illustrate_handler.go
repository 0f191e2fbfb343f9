package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/service"
)

// Illustrator is the slice of the Picker this handler needs. Defined here so
// tests can substitute a fake without touching the real pipeline.
type Illustrator interface {
	Illustrate(ctx context.Context, text string) (*service.Result, error)
}

// ImageVerifier probes what a selected URL actually serves.
type ImageVerifier interface {
	Verify(ctx context.Context, url string) (*service.ImageInfo, error)
}

// IllustrateHandler runs the news-to-image pipeline for API callers.
type IllustrateHandler struct {
	picker   Illustrator
	verifier ImageVerifier
	logger   *zap.Logger
}

// NewIllustrateHandler creates the handler. verifier may be nil to disable
// the verify option.
func NewIllustrateHandler(picker Illustrator, verifier ImageVerifier, logger *zap.Logger) *IllustrateHandler {
	return &IllustrateHandler{
		picker:   picker,
		verifier: verifier,
		logger:   logger,
	}
}

type illustrateRequest struct {
	Text   string `json:"text" binding:"required"`
	Verify bool   `json:"verify"`
}

// Illustrate runs the pipeline for the posted news text.
// Route: POST /api/v1/illustrate
//
// The response always carries the outcome; url/description appear only for
// "found". With verify=true and a found image, the handler downloads it and
// attaches its dimensions.
func (h *IllustrateHandler) Illustrate(c *gin.Context) {
	var req illustrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "text is required",
		})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "text is required",
		})
		return
	}

	result, err := h.picker.Illustrate(c.Request.Context(), text)
	if err != nil {
		h.logger.Error("pipeline failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "pipeline failed",
		})
		return
	}

	resp := gin.H{
		"outcome":  result.Outcome,
		"keywords": result.Keywords,
		"engine":   result.Engine,
	}
	if result.Best != nil {
		resp["url"] = result.Best.URL
		resp["description"] = result.Best.Description
		resp["score"] = result.Best.Score

		if req.Verify && h.verifier != nil {
			info, err := h.verifier.Verify(c.Request.Context(), result.Best.URL)
			if err != nil {
				// The pick stands; verification is advisory.
				resp["verify_error"] = err.Error()
			} else {
				resp["image"] = info
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
