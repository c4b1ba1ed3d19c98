package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beanvault/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token handles POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req service.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "username and password are required")
		return
	}

	token, err := h.authService.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, token)
}
