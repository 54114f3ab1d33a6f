package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/dto"
)

// draftHandler handles the two-phase settlement endpoints.
type draftHandler struct {
	draftService portssvc.DraftSvcFacade
}

func newDraftHandler(ds portssvc.DraftSvcFacade) *draftHandler {
	return &draftHandler{draftService: ds}
}

// registerDraftRoutes registers routes related to drafts.
func registerDraftRoutes(rg *gin.RouterGroup, draftService portssvc.DraftSvcFacade) {
	h := newDraftHandler(draftService)

	drafts := rg.Group("/drafts")
	{
		drafts.POST("/change", h.createChangeDraft)
		drafts.POST("/change/:id/pay", h.payChangeDraft)
		drafts.POST("/purchase", h.createPurchaseDraft)
		drafts.POST("/purchase/:id/pay", h.payPurchaseDraft)
	}
}

// createChangeDraft godoc
// @Summary Create a pending currency exchange
// @Description Computes the exchange for the calling user without moving any money
// @Tags drafts
// @Accept  json
// @Produce  json
// @Param   draft body dto.CreateChangeDraftRequest true "Exchange details"
// @Success 201 {object} dto.ChangeDraftResponse
// @Failure 400 {object} map[string]string "Invalid amount or currency pair"
// @Security BearerAuth
// @Router /drafts/change [post]
func (h *draftHandler) createChangeDraft(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateChangeDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	draft, err := h.draftService.CreateChangeDraft(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToChangeDraftResponse(draft))
}

// payChangeDraft godoc
// @Summary Settle a pending currency exchange
// @Description Consumes the draft and settles it after re-authenticating the draft's user
// @Tags drafts
// @Accept  json
// @Produce  json
// @Param   id path string true "Draft ID"
// @Param   payment body dto.PayDraftRequest true "Fresh credentials"
// @Success 201 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 404 {object} map[string]string "Draft already settled or unknown"
// @Failure 409 {object} map[string]string "Balance too low"
// @Security BearerAuth
// @Router /drafts/change/{id}/pay [post]
func (h *draftHandler) payChangeDraft(c *gin.Context) {
	var req dto.PayDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.draftService.PayChangeDraft(c.Request.Context(), c.Param("id"), req.Credentials)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}

// createPurchaseDraft godoc
// @Summary Create a pending purchase
// @Description Prices the items against the calling company's listing without moving any money
// @Tags drafts
// @Accept  json
// @Produce  json
// @Param   draft body dto.CreatePurchaseDraftRequest true "Purchase items"
// @Success 201 {object} dto.PurchaseDraftResponse
// @Failure 400 {object} map[string]string "Invalid items or discount"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /drafts/purchase [post]
func (h *draftHandler) createPurchaseDraft(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreatePurchaseDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	draft, err := h.draftService.CreatePurchaseDraft(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPurchaseDraftResponse(draft))
}

// payPurchaseDraft godoc
// @Summary Settle a pending purchase
// @Description Consumes the draft and charges whoever the credentials authenticate
// @Tags drafts
// @Accept  json
// @Produce  json
// @Param   id path string true "Draft ID"
// @Param   payment body dto.PayDraftRequest true "Customer credentials"
// @Success 201 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 404 {object} map[string]string "Draft already settled or unknown"
// @Failure 409 {object} map[string]string "Balance too low"
// @Security BearerAuth
// @Router /drafts/purchase/{id}/pay [post]
func (h *draftHandler) payPurchaseDraft(c *gin.Context) {
	var req dto.PayDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.draftService.PayPurchaseDraft(c.Request.Context(), c.Param("id"), req.Credentials)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}
