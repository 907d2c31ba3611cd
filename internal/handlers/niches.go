package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/models"
	"github.com/creatorlane/creatorlane/internal/services"
	"github.com/creatorlane/creatorlane/pkg/response"
)

// NicheHandler exposes the ordered category endpoints.
type NicheHandler struct {
	service *services.NicheService
}

// NewNicheHandler constructs a niche handler.
func NewNicheHandler(db *gorm.DB) (*NicheHandler, error) {
	service, err := services.NewNicheService(db)
	if err != nil {
		return nil, err
	}
	return &NicheHandler{service: service}, nil
}

// List returns niches in display order. Non-admin callers only see active ones.
func (h *NicheHandler) List(c *gin.Context) {
	activeOnly := currentRole(c) != models.RoleAdmin
	items, err := h.service.List(requestContext(c), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

type createNicheRequest struct {
	Name string `json:"name" validate:"required,max=64"`
	Slug string `json:"slug"`
}

// Create appends a niche to the display order.
func (h *NicheHandler) Create(c *gin.Context) {
	var req createNicheRequest
	if !bindAndValidate(c, &req) {
		return
	}

	niche, err := h.service.Create(requestContext(c), services.CreateNicheInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, niche)
}

type updateNicheRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

// Update applies partial changes to a niche.
func (h *NicheHandler) Update(c *gin.Context) {
	var req updateNicheRequest
	if !bindAndValidate(c, &req) {
		return
	}

	niche, err := h.service.Update(requestContext(c), strings.TrimSpace(c.Param("id")), services.UpdateNicheInput{
		Name:   req.Name,
		Active: req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, niche)
}

// Delete removes a niche.
func (h *NicheHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(requestContext(c), strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

type reorderNichesRequest struct {
	OrderedIDs []string `json:"ordered_ids" validate:"required,min=1"`
}

// Reorder persists a drag-and-drop ordering of every niche.
func (h *NicheHandler) Reorder(c *gin.Context) {
	var req reorderNichesRequest
	if !bindAndValidate(c, &req) {
		return
	}

	items, err := h.service.Reorder(requestContext(c), req.OrderedIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}
