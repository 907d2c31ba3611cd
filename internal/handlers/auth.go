package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	iauth "github.com/creatorlane/creatorlane/internal/auth"
	"github.com/creatorlane/creatorlane/internal/services"
	"github.com/creatorlane/creatorlane/pkg/errors"
	"github.com/creatorlane/creatorlane/pkg/response"
)

// AuthHandler exposes the local login and profile endpoints.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(db *gorm.DB, jwt *iauth.JWTService) (*AuthHandler, error) {
	service, err := services.NewAuthService(db, jwt)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{service: service}, nil
}

// Login authenticates email/password credentials and issues an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var input services.LoginInput
	if !bindAndValidate(c, &input) {
		return
	}

	result, err := h.service.Login(requestContext(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	user, err := h.service.CurrentUser(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
