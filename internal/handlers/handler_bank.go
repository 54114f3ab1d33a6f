package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolstate/sas_backend/internal/core/domain"
	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/dto"
)

// bankHandler handles HTTP requests related to accounts, transfers and
// salaries.
type bankHandler struct {
	bankService portssvc.BankSvcFacade
}

func newBankHandler(bs portssvc.BankSvcFacade) *bankHandler {
	return &bankHandler{bankService: bs}
}

// registerBankRoutes registers routes related to banking.
func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade) {
	h := newBankHandler(bankService)

	bank := rg.Group("/bank")
	{
		bank.GET("/account", h.getOwnAccount)
		bank.GET("/accounts/:type/:id", h.getAccount)
		bank.GET("/transactions", h.listOwnTransactions)
		bank.GET("/transactions/:type/:id", h.listTransactions)
		bank.POST("/transfers", h.transfer)
		bank.POST("/customs", h.chargeCustoms)
		bank.POST("/salaries", h.paySalary)
		bank.POST("/employments", h.createEmployment)
		bank.POST("/worktimes", h.recordWorktime)
	}
}

// getOwnAccount godoc
// @Summary Get the calling user's bank account
// @Tags bank
// @Produce  json
// @Success 200 {object} dto.AccountResponse
// @Security BearerAuth
// @Router /bank/account [get]
func (h *bankHandler) getOwnAccount(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	account, err := h.bankService.GetAccount(c.Request.Context(), caller, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get any user's bank account
// @Description Retrieves an account by owner signature (bank role, or the owner themselves)
// @Tags bank
// @Produce  json
// @Param   type path string true "Owner type"
// @Param   id path string true "Owner ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} map[string]string "Not permitted"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /bank/accounts/{type}/{id} [get]
func (h *bankHandler) getAccount(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	owner := domain.UserSignature{Type: domain.UserType(c.Param("type")), ID: c.Param("id")}

	account, err := h.bankService.GetAccount(c.Request.Context(), caller, owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listOwnTransactions godoc
// @Summary List the calling user's transactions
// @Tags bank
// @Produce  json
// @Success 200 {array} dto.TransactionResponse
// @Security BearerAuth
// @Router /bank/transactions [get]
func (h *bankHandler) listOwnTransactions(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	txns, err := h.bankService.ListTransactions(c.Request.Context(), caller, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// listTransactions godoc
// @Summary List any user's transactions
// @Tags bank
// @Produce  json
// @Param   type path string true "Owner type"
// @Param   id path string true "Owner ID"
// @Success 200 {array} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Not permitted"
// @Security BearerAuth
// @Router /bank/transactions/{type}/{id} [get]
func (h *bankHandler) listTransactions(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	owner := domain.UserSignature{Type: domain.UserType(c.Param("type")), ID: c.Param("id")}

	txns, err := h.bankService.ListTransactions(c.Request.Context(), caller, owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// transfer godoc
// @Summary Transfer money to another user
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Sender or receiver restricted"
// @Failure 409 {object} map[string]string "Balance too low"
// @Security BearerAuth
// @Router /bank/transfers [post]
func (h *bankHandler) transfer(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.bankService.TransferMoney(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}

// chargeCustoms godoc
// @Summary Charge customs from a user into the state treasury
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   customs body dto.CustomsRequest true "Customs charge"
// @Success 201 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Not border control"
// @Failure 409 {object} map[string]string "Balance too low"
// @Security BearerAuth
// @Router /bank/customs [post]
func (h *bankHandler) chargeCustoms(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CustomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.bankService.ChargeCustoms(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}

// paySalary godoc
// @Summary Pay a salary or bonus for an employment
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   salary body dto.SalaryRequest true "Salary details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not the employer or bank"
// @Failure 409 {object} map[string]string "Worktime already paid or balance too low"
// @Security BearerAuth
// @Router /bank/salaries [post]
func (h *bankHandler) paySalary(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.SalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.bankService.PaySalary(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}

// createEmployment godoc
// @Summary Hire a citizen for a company
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   employment body dto.CreateEmploymentRequest true "Employment details"
// @Success 201 {object} domain.Employment
// @Failure 403 {object} map[string]string "Not the employer or admin"
// @Security BearerAuth
// @Router /bank/employments [post]
func (h *bankHandler) createEmployment(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateEmploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	employment, err := h.bankService.CreateEmployment(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employment)
}

// recordWorktime godoc
// @Summary Record a worked shift
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   worktime body dto.RecordWorktimeRequest true "Shift details"
// @Success 201 {object} domain.Worktime
// @Failure 403 {object} map[string]string "Not involved in the employment"
// @Security BearerAuth
// @Router /bank/worktimes [post]
func (h *bankHandler) recordWorktime(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.RecordWorktimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	worktime, err := h.bankService.RecordWorktime(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, worktime)
}
