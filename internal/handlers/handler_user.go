package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolstate/sas_backend/internal/core/domain"
	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/dto"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers routes related to users.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/me", h.getSelf)
		users.GET("/:type/:id", h.getUser)
		users.DELETE("/:type/:id", h.deleteUser)
	}
}

// createUser godoc
// @Summary Provision a new user
// @Description Creates a citizen, company or guest together with their bank account (admin only)
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not an admin"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users of a type
// @Description Lists all users of the given type (admin only)
// @Tags users
// @Produce  json
// @Param   type query string true "User type" Enums(CITIZEN, COMPANY, GUEST)
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} map[string]string "Not an admin"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	userType := domain.UserType(c.Query("type"))

	users, err := h.userService.ListUsers(c.Request.Context(), caller, userType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// getSelf godoc
// @Summary Get the calling user
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getSelf(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user by signature
// @Tags users
// @Produce  json
// @Param   type path string true "User type"
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{type}/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	if _, ok := callerOrAbort(c); !ok {
		return
	}
	sig := domain.UserSignature{Type: domain.UserType(c.Param("type")), ID: c.Param("id")}

	user, err := h.userService.GetUser(c.Request.Context(), sig)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Soft-delete a user
// @Tags users
// @Produce  json
// @Param   type path string true "User type"
// @Param   id path string true "User ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Not an admin"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{type}/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	sig := domain.UserSignature{Type: domain.UserType(c.Param("type")), ID: c.Param("id")}

	if err := h.userService.DeleteUser(c.Request.Context(), caller, sig); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
