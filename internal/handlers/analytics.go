package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creatorlane/creatorlane/internal/services"
	"github.com/creatorlane/creatorlane/pkg/response"
)

// AnalyticsHandler shapes externally aggregated click data for the admin heatmap.
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

// NewAnalyticsHandler constructs an analytics handler.
func NewAnalyticsHandler() (*AnalyticsHandler, error) {
	service, err := services.NewAnalyticsService()
	if err != nil {
		return nil, err
	}
	return &AnalyticsHandler{service: service}, nil
}

type heatmapRequest struct {
	Rows []services.CountryClicks `json:"rows" validate:"required,dive"`
}

// Heatmap normalises and colours the posted country click rows.
func (h *AnalyticsHandler) Heatmap(c *gin.Context) {
	var req heatmapRequest
	if !bindAndValidate(c, &req) {
		return
	}

	cells, err := h.service.Heatmap(req.Rows)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cells": cells})
}
