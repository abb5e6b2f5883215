package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yokinanya/omega-miya/internal/config"
	"github.com/yokinanya/omega-miya/internal/security"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	adminCfg config.AdminConfig
	jwtCfg   config.JWTConfig
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(adminCfg config.AdminConfig, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{adminCfg: adminCfg, jwtCfg: jwtCfg}
}

// loginRequest defines the request body for admin login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates the configured admin credential and issues a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	username := strings.TrimSpace(body.Username)
	password := strings.TrimSpace(body.Password)
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if h.adminCfg.Username == "" || h.adminCfg.PasswordHash == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access is not configured"})
		return
	}
	if username != h.adminCfg.Username || !security.CheckPassword(h.adminCfg.PasswordHash, password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, errToken := security.GenerateAdminToken(h.jwtCfg.Secret, username, h.jwtCfg.Expiry.Std())
	if errToken != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "username": username})
}
