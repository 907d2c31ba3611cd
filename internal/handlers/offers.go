package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/services"
	"github.com/creatorlane/creatorlane/pkg/response"
)

// OfferHandler exposes the offer catalogue and its approval endpoints.
type OfferHandler struct {
	service *services.OfferService
}

// NewOfferHandler constructs an offer handler.
func NewOfferHandler(db *gorm.DB, notifications *services.NotificationService) (*OfferHandler, error) {
	service, err := services.NewOfferService(db, notifications)
	if err != nil {
		return nil, err
	}
	return &OfferHandler{service: service}, nil
}

// List returns offers narrowed by the query's search and facet parameters.
func (h *OfferHandler) List(c *gin.Context) {
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

// Get returns one offer.
func (h *OfferHandler) Get(c *gin.Context) {
	offer, err := h.service.Get(requestContext(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offer)
}

type createOfferRequest struct {
	CompanyName   string  `json:"company_name"`
	Title         string  `json:"title" validate:"required,max=255"`
	Description   string  `json:"description"`
	NicheID       *string `json:"niche_id"`
	PayoutPerSale int64   `json:"payout_per_sale" validate:"gte=0"`
}

// Create registers a pending offer for the calling company.
func (h *OfferHandler) Create(c *gin.Context) {
	var req createOfferRequest
	if !bindAndValidate(c, &req) {
		return
	}

	offer, err := h.service.Create(requestContext(c), services.CreateOfferInput{
		CompanyID:     currentUserID(c),
		CompanyName:   req.CompanyName,
		Title:         req.Title,
		Description:   req.Description,
		NicheID:       req.NicheID,
		PayoutPerSale: req.PayoutPerSale,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, offer)
}

// Approve marks a pending offer approved. Admin only via route gating.
func (h *OfferHandler) Approve(c *gin.Context) {
	offer, err := h.service.Approve(requestContext(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offer)
}

type rejectOfferRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Reject marks a pending offer rejected with a reason. Admin only via route gating.
func (h *OfferHandler) Reject(c *gin.Context) {
	var req rejectOfferRequest
	if !bindAndValidate(c, &req) {
		return
	}

	offer, err := h.service.Reject(requestContext(c), strings.TrimSpace(c.Param("id")), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offer)
}
