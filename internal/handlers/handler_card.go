package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/dto"
)

// cardHandler handles HTTP requests related to cards.
type cardHandler struct {
	cardService portssvc.CardSvcFacade
}

func newCardHandler(cs portssvc.CardSvcFacade) *cardHandler {
	return &cardHandler{cardService: cs}
}

// registerCardRoutes registers the authenticated card routes.
func registerCardRoutes(rg *gin.RouterGroup, cardService portssvc.CardSvcFacade) {
	h := newCardHandler(cardService)

	cards := rg.Group("/cards")
	{
		cards.POST("", h.registerCard)
		cards.GET("/:id", h.getCard)
		cards.POST("/:id/assign", h.assignCard)
		cards.POST("/:id/unassign", h.unassignCard)
		cards.POST("/:id/block", h.blockCard)
		cards.POST("/:id/unblock", h.unblockCard)
	}
}

// registerPublicCardRoutes registers the sessionless terminal read.
func registerPublicCardRoutes(r *gin.Engine, cardService portssvc.CardSvcFacade) {
	h := newCardHandler(cardService)
	r.GET("/cards/:id/read", h.readCard)
}

// registerCard godoc
// @Summary Register a new card
// @Description Creates an unassigned card (admin only)
// @Tags cards
// @Accept  json
// @Produce  json
// @Param   card body dto.RegisterCardRequest true "Card identifier"
// @Success 201 {object} dto.CardResponse
// @Failure 403 {object} map[string]string "Not an admin"
// @Failure 409 {object} map[string]string "Card already registered"
// @Security BearerAuth
// @Router /cards [post]
func (h *cardHandler) registerCard(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.RegisterCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	card, err := h.cardService.RegisterCard(c.Request.Context(), caller, req.CardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCardResponse(card))
}

// getCard godoc
// @Summary Get a card's full state
// @Description Retrieves binding and block state (border control only)
// @Tags cards
// @Produce  json
// @Param   id path string true "Card ID"
// @Success 200 {object} dto.CardResponse
// @Failure 403 {object} map[string]string "Not border control"
// @Failure 404 {object} map[string]string "Card not registered"
// @Security BearerAuth
// @Router /cards/{id} [get]
func (h *cardHandler) getCard(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	card, err := h.cardService.GetCard(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}

// readCard godoc
// @Summary Read who holds a card
// @Description Public terminal query returning only the bound user, if any
// @Tags cards
// @Produce  json
// @Param   id path string true "Card ID"
// @Success 200 {object} dto.CardReadResponse
// @Failure 403 {object} map[string]string "Card blocked"
// @Failure 404 {object} map[string]string "Card not registered"
// @Router /cards/{id}/read [get]
func (h *cardHandler) readCard(c *gin.Context) {
	sig, err := h.cardService.ReadCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.CardReadResponse{}
	if sig != nil {
		resp.UserSignature = &dto.SignatureRef{Type: sig.Type, ID: sig.ID}
	}
	c.JSON(http.StatusOK, resp)
}

// assignCard godoc
// @Summary Bind a user to a card
// @Tags cards
// @Accept  json
// @Produce  json
// @Param   id path string true "Card ID"
// @Param   assignment body dto.AssignCardRequest true "User to bind"
// @Success 200 {object} dto.CardResponse
// @Failure 403 {object} map[string]string "Not border control or card blocked"
// @Failure 409 {object} map[string]string "Card already assigned or user already holds a card"
// @Security BearerAuth
// @Router /cards/{id}/assign [post]
func (h *cardHandler) assignCard(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.AssignCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	card, err := h.cardService.AssignCard(c.Request.Context(), caller, c.Param("id"), req.User.ToSignature())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}

// unassignCard godoc
// @Summary Clear a card's binding
// @Tags cards
// @Produce  json
// @Param   id path string true "Card ID"
// @Success 200 {object} dto.CardResponse
// @Failure 403 {object} map[string]string "Not border control or card blocked"
// @Failure 409 {object} map[string]string "Card not assigned"
// @Security BearerAuth
// @Router /cards/{id}/unassign [post]
func (h *cardHandler) unassignCard(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	card, err := h.cardService.UnassignCard(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}

// blockCard godoc
// @Summary Block a card
// @Tags cards
// @Produce  json
// @Param   id path string true "Card ID"
// @Success 200 {object} dto.CardResponse
// @Failure 403 {object} map[string]string "Not an admin"
// @Failure 409 {object} map[string]string "Card already blocked"
// @Security BearerAuth
// @Router /cards/{id}/block [post]
func (h *cardHandler) blockCard(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	card, err := h.cardService.BlockCard(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}

// unblockCard godoc
// @Summary Unblock a card
// @Tags cards
// @Produce  json
// @Param   id path string true "Card ID"
// @Success 200 {object} dto.CardResponse
// @Failure 403 {object} map[string]string "Not an admin"
// @Failure 409 {object} map[string]string "Card not blocked"
// @Security BearerAuth
// @Router /cards/{id}/unblock [post]
func (h *cardHandler) unblockCard(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	card, err := h.cardService.UnblockCard(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}
