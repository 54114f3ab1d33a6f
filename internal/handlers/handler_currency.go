package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
)

// currencyHandler serves the configured currency table.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrency)
	}
}

// listCurrencies godoc
// @Summary List configured currencies
// @Tags currencies
// @Produce  json
// @Success 200 {array} domain.Currency
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, h.currencyService.ListCurrencies(c.Request.Context()))
}

// getCurrency godoc
// @Summary Get one currency by code
// @Tags currencies
// @Produce  json
// @Param   code path string true "Currency code"
// @Success 200 {object} domain.Currency
// @Failure 404 {object} map[string]string "Currency not configured"
// @Security BearerAuth
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	currency, err := h.currencyService.GetCurrency(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, currency)
}
