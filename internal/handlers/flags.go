package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creatorlane/creatorlane/internal/services"
	"github.com/creatorlane/creatorlane/pkg/response"
)

// FlagHandler exposes the admin moderation queue.
type FlagHandler struct {
	service *services.FlagService
}

// NewFlagHandler constructs a flag handler.
func NewFlagHandler(db *gorm.DB) (*FlagHandler, error) {
	service, err := services.NewFlagService(db)
	if err != nil {
		return nil, err
	}
	return &FlagHandler{service: service}, nil
}

// List returns the moderation queue narrowed by search and facet parameters.
func (h *FlagHandler) List(c *gin.Context) {
	state := filterStateFromQuery(c, h.service.FilterState())

	result, err := h.service.List(requestContext(c), state)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{"items": result.Items},
		listMeta(result.Total, result.Filtered, result.HasActiveFilters))
}

type createFlagRequest struct {
	ContentType     string   `json:"content_type" validate:"required"`
	ContentID       string   `json:"content_id" validate:"required"`
	FlaggedUserID   string   `json:"flagged_user_id"`
	FlaggedUserName string   `json:"flagged_user_name"`
	Reason          string   `json:"reason" validate:"required"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// Create enqueues a content flag for moderation.
func (h *FlagHandler) Create(c *gin.Context) {
	var req createFlagRequest
	if !bindAndValidate(c, &req) {
		return
	}

	flag, err := h.service.Create(requestContext(c), services.CreateFlagInput{
		ContentType:     req.ContentType,
		ContentID:       req.ContentID,
		FlaggedUserID:   req.FlaggedUserID,
		FlaggedUserName: req.FlaggedUserName,
		Reason:          req.Reason,
		MatchedKeywords: req.MatchedKeywords,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, flag)
}

type resolveFlagRequest struct {
	ActionTaken string `json:"action_taken" validate:"required"`
}

// Resolve records a moderation action on a pending flag.
func (h *FlagHandler) Resolve(c *gin.Context) {
	var req resolveFlagRequest
	if !bindAndValidate(c, &req) {
		return
	}

	flag, err := h.service.Resolve(requestContext(c), services.ResolveFlagInput{
		FlagID:      strings.TrimSpace(c.Param("id")),
		ModeratorID: currentUserID(c),
		ActionTaken: req.ActionTaken,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, flag)
}

// Dismiss closes a pending flag without action.
func (h *FlagHandler) Dismiss(c *gin.Context) {
	flag, err := h.service.Dismiss(requestContext(c), strings.TrimSpace(c.Param("id")), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, flag)
}
