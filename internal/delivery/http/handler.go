package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rxscan/backend/internal/barcode"
	"github.com/rxscan/backend/internal/domain"
	"github.com/rxscan/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scanService   *usecase.ScanService
	verifyService *usecase.VerifyService
	priceService  *usecase.PriceService
	normalizer    *barcode.Normalizer
	overrides     *usecase.Overrides
}

// NewHandler creates a new HTTP handler
func NewHandler(
	scanService *usecase.ScanService,
	verifyService *usecase.VerifyService,
	priceService *usecase.PriceService,
	normalizer *barcode.Normalizer,
	overrides *usecase.Overrides,
) *Handler {
	return &Handler{
		scanService:   scanService,
		verifyService: verifyService,
		priceService:  priceService,
		normalizer:    normalizer,
		overrides:     overrides,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "rxscan-backend",
		"version": "1.0.0",
	})
}

// ResolveScan runs the full pipeline for one raw scan. Negative results
// are data, not HTTP errors: they come back 200 with ok=false fields.
func (h *Handler) ResolveScan(c *gin.Context) {
	var req domain.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode is required"})
		return
	}

	resolution, err := h.scanService.Resolve(c.Request.Context(), req.Barcode)
	if err != nil {
		h.resolverError(c, err)
		return
	}
	if resolutionUnavailable(resolution) {
		c.JSON(http.StatusServiceUnavailable, resolution)
		return
	}
	c.JSON(http.StatusOK, resolution)
}

// resolutionUnavailable reports whether every external lookup in the
// pipeline failed at the transport level. A negative answer from a dataset
// that actually responded is data; this is not that.
func resolutionUnavailable(r *domain.ScanResolution) bool {
	verifyDown := r.Verification != nil && !r.Verification.OK &&
		r.Verification.Reason == domain.ReasonRegistryUnreachable
	priceDown := r.Price == nil || (!r.Price.OK && r.Price.Reason == domain.ReasonPricingUnreachable)
	return verifyDown && priceDown
}

// NormalizeScan runs only the barcode normalizer
func (h *Handler) NormalizeScan(c *gin.Context) {
	var req domain.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode is required"})
		return
	}
	c.JSON(http.StatusOK, h.normalizer.Normalize(req.Barcode))
}

// VerifyNDC verifies a single 11-digit NDC against the product registry
func (h *Handler) VerifyNDC(c *gin.Context) {
	ndc11 := c.Param("ndc")
	result, err := h.verifyService.Verify(c.Request.Context(), []string{ndc11})
	if err != nil {
		h.resolverError(c, err)
		return
	}
	if !result.OK && result.Reason == domain.ReasonRegistryUnreachable {
		c.JSON(http.StatusServiceUnavailable, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PriceNDC resolves a current unit price for an 11-digit NDC
func (h *Handler) PriceNDC(c *gin.Context) {
	ndc11 := c.Param("ndc")
	result, err := h.priceService.Resolve(c.Request.Context(), ndc11, nil, nil)
	if err != nil {
		h.resolverError(c, err)
		return
	}
	if !result.OK && result.Reason == domain.ReasonPricingUnreachable {
		c.JSON(http.StatusServiceUnavailable, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

type overrideRequest struct {
	Barcode string            `json:"barcode" binding:"required"`
	Draft   *domain.LineDraft `json:"draft" binding:"required"`
}

// PutOverride stores a user-curated line draft for a raw scan
func (h *Handler) PutOverride(c *gin.Context) {
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode and draft are required"})
		return
	}
	if err := h.overrides.Put(req.Barcode, req.Draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stored": true})
}

// GetOverride returns the curated draft for a raw scan, if any
func (h *Handler) GetOverride(c *gin.Context) {
	draft, ok := h.overrides.Get(c.Param("text"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no override for this scan"})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// resolverError maps pipeline errors to status codes. Cancellation is the
// client going away; invalid input is a 400; anything else is unexpected.
func (h *Handler) resolverError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.Status(http.StatusRequestTimeout)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
