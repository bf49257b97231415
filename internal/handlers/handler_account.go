package handlers

import (
	"net/http"

	portssvc "github.com/diallo-dev/money_transfer_app/internal/core/ports/services"
	"github.com/diallo-dev/money_transfer_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler handles the user-facing account surface.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to the caller's own account.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/me", h.getOwnAccount)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/balance", h.getBalance)
	}
}

// getOwnAccount godoc
// @Summary Get own account
// @Description Retrieves the caller's account, balance included
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "No account for this user"
// @Security BearerAuth
// @Router /accounts/me [get]
func (h *accountHandler) getOwnAccount(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetOwnAccount(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to load account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves an account; non-admin callers may only see their own
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} map[string]string "Account belongs to another user"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getBalance godoc
// @Summary Get an account balance
// @Description Returns the balance in minor units, scoped like account reads
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]int64
// @Failure 403 {object} map[string]string "Account belongs to another user"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /accounts/{id}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	balance, err := h.accountService.GetBalance(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load balance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
