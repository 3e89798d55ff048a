package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/auth"
	"github.com/mamadbah2/agripoulet/internal/service/security"
)

// AuthHandler serves login and admin secret rotation.
type AuthHandler struct {
	svc    *security.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc *security.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Role string `json:"role" binding:"required"`
	Code string `json:"code"`
}

// Login opens a session: free for the employee role, code-gated for admin.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.svc.Login(auth.Role(req.Role), req.Code)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "role": req.Role})
}

type updateSecretRequest struct {
	NewCode string `json:"newCode" binding:"required"`
}

// UpdateSecret rotates the shared administrator code.
func (h *AuthHandler) UpdateSecret(c *gin.Context) {
	var req updateSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid secret payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.UpdateSecret(req.NewCode); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
