package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/dto"
	"github.com/schoolstate/sas_backend/internal/middleware"
)

// authHandler handles login requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes registers the public login routes. Both are rate
// limited per client IP so terminals cannot be used to guess credentials.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, loginLimiter *limiter.Limiter) {
	h := newAuthHandler(authService)

	auth := r.Group("/auth", middleware.RateLimit(loginLimiter))
	{
		auth.POST("/login", h.loginWithPassword)
		auth.POST("/login/card", h.loginWithCard)
	}
}

// loginWithPassword godoc
// @Summary Log in with name and password
// @Description Authenticates a user by type, name and password, returning a session token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.PasswordLoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) loginWithPassword(c *gin.Context) {
	var req dto.PasswordLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, user, err := h.authService.LoginWithPassword(c.Request.Context(), req.Type, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// loginWithCard godoc
// @Summary Log in with a physical card
// @Description Authenticates whoever the card is bound to, returning a session token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   card body dto.CardLoginRequest true "Card identifier"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Card blocked or unassigned"
// @Failure 404 {object} map[string]string "Card not registered"
// @Router /auth/login/card [post]
func (h *authHandler) loginWithCard(c *gin.Context) {
	var req dto.CardLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, user, err := h.authService.LoginWithCard(c.Request.Context(), req.CardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}
