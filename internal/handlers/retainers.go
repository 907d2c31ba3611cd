package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/services"
	"github.com/creatorlane/creatorlane/pkg/response"
)

// RetainerHandler exposes retainer contract endpoints.
type RetainerHandler struct {
	service *services.RetainerService
}

// NewRetainerHandler constructs a retainer handler.
func NewRetainerHandler(db *gorm.DB) (*RetainerHandler, error) {
	service, err := services.NewRetainerService(db)
	if err != nil {
		return nil, err
	}
	return &RetainerHandler{service: service}, nil
}

// List returns contracts narrowed by the query's search and facet parameters.
func (h *RetainerHandler) List(c *gin.Context) {
	state := filterStateFromQuery(c, h.service.FilterState())

	result, err := h.service.List(requestContext(c), state, currentRole(c), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{
		"items":           result.Items,
		"company_options": result.CompanyOptions,
	}, listMeta(result.Total, result.Filtered, result.HasActiveFilters))
}

type createRetainerRequest struct {
	CompanyName          string `json:"company_name"`
	CreatorID            string `json:"creator_id" validate:"required"`
	CreatorName          string `json:"creator_name"`
	Title                string `json:"title" validate:"required,max=255"`
	MonthlyAmount        int64  `json:"monthly_amount" validate:"required,gt=0"`
	DeliverablesPerMonth int    `json:"deliverables_per_month" validate:"gte=0"`
}

// Create registers an active contract for the calling company.
func (h *RetainerHandler) Create(c *gin.Context) {
	var req createRetainerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	contract, err := h.service.Create(requestContext(c), services.CreateRetainerInput{
		CompanyID:            currentUserID(c),
		CompanyName:          req.CompanyName,
		CreatorID:            req.CreatorID,
		CreatorName:          req.CreatorName,
		Title:                req.Title,
		MonthlyAmount:        req.MonthlyAmount,
		DeliverablesPerMonth: req.DeliverablesPerMonth,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, contract)
}

type setRetainerStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SetStatus transitions a contract between lifecycle states.
func (h *RetainerHandler) SetStatus(c *gin.Context) {
	var req setRetainerStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	contract, err := h.service.SetStatus(requestContext(c), strings.TrimSpace(c.Param("id")), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, contract)
}
