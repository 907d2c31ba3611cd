package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/models"
	"github.com/creatorlane/creatorlane/internal/services"
	"github.com/creatorlane/creatorlane/pkg/errors"
	"github.com/creatorlane/creatorlane/pkg/response"
)

// ReviewHandler exposes the review list and its moderation endpoints.
type ReviewHandler struct {
	service *services.ReviewService
}

// NewReviewHandler constructs a review handler.
func NewReviewHandler(db *gorm.DB) (*ReviewHandler, error) {
	service, err := services.NewReviewService(db)
	if err != nil {
		return nil, err
	}
	return &ReviewHandler{service: service}, nil
}

// List returns reviews narrowed by the query's search and facet parameters.
func (h *ReviewHandler) List(c *gin.Context) {
	state := filterStateFromQuery(c, h.service.FilterState())

	result, err := h.service.List(requestContext(c), state, currentRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{
		"items":           result.Items,
		"company_options": result.CompanyOptions,
	}, listMeta(result.Total, result.Filtered, result.HasActiveFilters))
}

type createReviewRequest struct {
	OfferID     *string `json:"offer_id"`
	CompanyID   string  `json:"company_id" validate:"required"`
	CompanyName string  `json:"company_name"`
	Rating      int     `json:"rating" validate:"required,min=1,max=5"`
	Body        string  `json:"body" validate:"required"`
	CreatorName string  `json:"creator_name"`
}

// Create records a creator review of a company.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if !bindAndValidate(c, &req) {
		return
	}

	review, err := h.service.Create(requestContext(c), services.CreateReviewInput{
		OfferID:     req.OfferID,
		CompanyID:   req.CompanyID,
		CompanyName: req.CompanyName,
		CreatorID:   currentUserID(c),
		CreatorName: req.CreatorName,
		Rating:      req.Rating,
		Body:        req.Body,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, review)
}

type respondReviewRequest struct {
	Response string `json:"response" validate:"required"`
}

// Respond records the company's response on one of its reviews.
func (h *ReviewHandler) Respond(c *gin.Context) {
	var req respondReviewRequest
	if !bindAndValidate(c, &req) {
		return
	}

	review, err := h.service.Respond(requestContext(c), services.RespondToReviewInput{
		ReviewID:  strings.TrimSpace(c.Param("id")),
		CompanyID: currentUserID(c),
		Response:  req.Response,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

type setHiddenRequest struct {
	Hidden *bool `json:"hidden" validate:"required"`
}

// SetHidden hides or unhides a review. Admin only.
func (h *ReviewHandler) SetHidden(c *gin.Context) {
	if currentRole(c) != models.RoleAdmin {
		response.Error(c, errors.ErrForbidden)
		return
	}

	var req setHiddenRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.service.SetHidden(requestContext(c), strings.TrimSpace(c.Param("id")), *req.Hidden); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hidden": *req.Hidden})
}
