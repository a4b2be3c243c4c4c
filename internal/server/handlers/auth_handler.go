package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/service/auth"
)

// AuthHandler serves sign-in and sign-up.
type AuthHandler struct {
	base
	svc *auth.Service
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{base: newBase(logger), svc: svc}
}

// Signin exchanges credentials for a bearer token.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req models.LoginRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.Signin(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignUpRequest
	if !h.bind(c, &req) {
		return
	}

	if _, err := h.svc.Signup(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully!"})
}
