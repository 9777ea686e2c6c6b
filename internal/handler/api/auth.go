package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "roombook/internal/handler/dto/request"
	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/handler/middleware"
	"roombook/internal/pkg/config"
	"roombook/internal/pkg/cookie"
	"roombook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	jwtConfig    config.JWTConfig
	cookieConfig config.CookieConfig
}

func NewAuthHandler(
	authCommands commands.AuthCommands,
	jwtConfig config.JWTConfig,
	cookieConfig config.CookieConfig,
) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		jwtConfig:    jwtConfig,
		cookieConfig: cookieConfig,
	}
}

// @Summary Login
// @Description Authenticate with email and password, receive an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login credentials"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, commands.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	expiry, err := time.ParseDuration(h.jwtConfig.TokenDuration)
	if err != nil {
		expiry = 24 * time.Hour
	}
	cookie.SetTokenCookie(c, h.cookieConfig, result.AccessToken, expiry)

	c.JSON(http.StatusOK, resdto.LoginResponse{
		UserID:      result.UserID,
		Name:        result.Name,
		AccessToken: result.AccessToken,
	})
}

// @Summary Logout
// @Description Clear the access token cookie
// @Tags auth
// @Produce json
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookie(c, h.cookieConfig)
	c.Status(http.StatusNoContent)
}

// @Summary Current user
// @Description Return the identity bound to the presented token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.MeResponse
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.MeResponse{
		UserID: identity.ID(),
		Name:   identity.Name(),
	})
}
