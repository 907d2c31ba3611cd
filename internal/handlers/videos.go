package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/services"
	"github.com/creatorlane/creatorlane/pkg/response"
)

// VideoHandler exposes promotional video endpoints.
type VideoHandler struct {
	service *services.VideoService
}

// NewVideoHandler constructs a video handler.
func NewVideoHandler(db *gorm.DB) (*VideoHandler, error) {
	service, err := services.NewVideoService(db)
	if err != nil {
		return nil, err
	}
	return &VideoHandler{service: service}, nil
}

// List returns videos narrowed by the query's search and facet parameters.
func (h *VideoHandler) List(c *gin.Context) {
	state := filterStateFromQuery(c, h.service.FilterState())

	result, err := h.service.List(requestContext(c), state, currentRole(c), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{"items": result.Items},
		listMeta(result.Total, result.Filtered, result.HasActiveFilters))
}

type createVideoRequest struct {
	CompanyName string  `json:"company_name"`
	OfferID     *string `json:"offer_id"`
	Title       string  `json:"title" validate:"required,max=255"`
	VideoURL    string  `json:"video_url" validate:"required,url"`
}

// Create registers a pending video for the calling company.
func (h *VideoHandler) Create(c *gin.Context) {
	var req createVideoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	video, err := h.service.Create(requestContext(c), services.CreateVideoInput{
		CompanyID:   currentUserID(c),
		CompanyName: req.CompanyName,
		OfferID:     req.OfferID,
		Title:       req.Title,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, video)
}

// Approve publishes a pending video. Admin only via route gating.
func (h *VideoHandler) Approve(c *gin.Context) {
	video, err := h.service.Approve(requestContext(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, video)
}

// Hide pulls a video from the public list. Admin only via route gating.
func (h *VideoHandler) Hide(c *gin.Context) {
	video, err := h.service.Hide(requestContext(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, video)
}

type setFeaturedRequest struct {
	Featured *bool `json:"featured" validate:"required"`
}

// SetFeatured toggles the featured slot of an approved video.
func (h *VideoHandler) SetFeatured(c *gin.Context) {
	var req setFeaturedRequest
	if !bindAndValidate(c, &req) {
		return
	}

	video, err := h.service.SetFeatured(requestContext(c), strings.TrimSpace(c.Param("id")), *req.Featured)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, video)
}
