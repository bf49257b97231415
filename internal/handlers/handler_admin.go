package handlers

import (
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/diallo-dev/money_transfer_app/internal/core/ports/services"
	"github.com/diallo-dev/money_transfer_app/internal/dto"
	"github.com/diallo-dev/money_transfer_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// adminHandler bundles the admin-only surface: account administration, manual
// deposits and withdrawals, cancellation, global listings and statistics.
type adminHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
	historyService portssvc.HistorySvcFacade
	statsService   portssvc.StatsSvcFacade
}

func newAdminHandler(services *portssvc.ServiceContainer) *adminHandler {
	return &adminHandler{
		accountService: services.Account,
		ledgerService:  services.Ledger,
		historyService: services.History,
		statsService:   services.Stats,
	}
}

// registerAdminRoutes registers all admin routes behind RequireAdmin.
func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAdminHandler(services)

	admin := rg.Group("/admin")
	{
		admin.GET("/accounts", h.listAccounts)
		admin.GET("/accounts/search", h.searchAccounts)
		admin.POST("/accounts/:id/toggle", h.toggleAccount)
		admin.POST("/accounts/:id/deposit", h.deposit)
		admin.POST("/accounts/:id/withdraw", h.withdraw)
		admin.POST("/transactions/:id/cancel", h.cancel)
		admin.GET("/transactions", h.listTransactions)
		admin.GET("/transactions/recent", h.recentTransactions)
		admin.GET("/stats", h.platformStats)
		admin.GET("/stats/transactions", h.transactionStats)
	}
}

// listAccounts godoc
// @Summary List all accounts
// @Tags admin
// @Produce json
// @Param page query int false "Zero-based page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.ListAccountsResponse
// @Security BearerAuth
// @Router /admin/accounts [get]
func (h *adminHandler) listAccounts(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(pagination.DefaultPageSize)))

	resp, err := h.accountService.ListAccounts(c.Request.Context(), caller, page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// searchAccounts godoc
// @Summary Search accounts
// @Description Matches the keyword against phone numbers and owner names
// @Tags admin
// @Produce json
// @Param q query string true "Search keyword"
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /admin/accounts/search [get]
func (h *adminHandler) searchAccounts(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.SearchAccounts(c.Request.Context(), caller, c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to search accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// toggleAccount godoc
// @Summary Toggle an account's active flag
// @Description Deactivates or reactivates an account; deactivated accounts accept no movements
// @Tags admin
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /admin/accounts/{id}/toggle [post]
func (h *adminHandler) toggleAccount(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	account, err := h.accountService.ToggleAccountStatus(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to toggle account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deposit godoc
// @Summary Deposit into an account
// @Description Credits the account directly, no fee charged
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param deposit body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 422 {object} map[string]string "Account inactive"
// @Security BearerAuth
// @Router /admin/accounts/{id}/deposit [post]
func (h *adminHandler) deposit(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.Deposit(c.Request.Context(), caller, c.Param("id"), req.Amount, req.Note)
	if err != nil {
		respondError(c, err, "Failed to deposit")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Debits the account directly, no fee charged
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 422 {object} map[string]string "Insufficient funds or inactive account"
// @Security BearerAuth
// @Router /admin/accounts/{id}/withdraw [post]
func (h *adminHandler) withdraw(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.Withdraw(c.Request.Context(), caller, c.Param("id"), req.Amount, req.Note)
	if err != nil {
		if txn != nil {
			c.JSON(statusFromError(err), gin.H{
				"error":       err.Error(),
				"transaction": dto.ToTransactionResponse(txn),
			})
			return
		}
		respondError(c, err, "Failed to withdraw")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// cancel godoc
// @Summary Cancel a transaction
// @Description Reverses a successful transaction of any type; at most one reversal ever succeeds
// @Tags admin
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Not found"
// @Failure 422 {object} map[string]string "Transaction not cancellable"
// @Security BearerAuth
// @Router /admin/transactions/{id}/cancel [post]
func (h *adminHandler) cancel(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := parseTransactionID(c)
	if !ok {
		return
	}

	txn, err := h.ledgerService.Cancel(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err, "Failed to cancel transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List all transactions
// @Description Global history listing with the same filters as the user listing
// @Tags admin
// @Produce json
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /admin/transactions [get]
func (h *adminHandler) listTransactions(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	filter, page, err := params.ToFilter()
	if err != nil {
		respondError(c, err, "Invalid filter")
		return
	}

	resp, err := h.historyService.List(c.Request.Context(), caller, filter, page)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// recentTransactions godoc
// @Summary List recent transactions
// @Tags admin
// @Produce json
// @Param limit query int false "Maximum rows, newest first"
// @Success 200 {array} dto.TransactionResponse
// @Security BearerAuth
// @Router /admin/transactions/recent [get]
func (h *adminHandler) recentTransactions(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(pagination.DefaultPageSize)))
	txns, err := h.historyService.Recent(c.Request.Context(), caller, limit)
	if err != nil {
		respondError(c, err, "Failed to list recent transactions")
		return
	}
	c.JSON(http.StatusOK, txns)
}

// platformStats godoc
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Success 200 {object} dto.PlatformStatsResponse
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *adminHandler) platformStats(c *gin.Context) {
	if _, ok := mustCaller(c); !ok {
		return
	}

	stats, err := h.statsService.PlatformStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// transactionStats godoc
// @Summary Transaction volume statistics
// @Description Aggregates successful movements over an inclusive window
// @Tags admin
// @Produce json
// @Param from query string false "Window start, RFC 3339"
// @Param to query string false "Window end, RFC 3339"
// @Success 200 {object} dto.TransactionStatsResponse
// @Failure 400 {object} map[string]string "Invalid dates"
// @Security BearerAuth
// @Router /admin/stats/transactions [get]
func (h *adminHandler) transactionStats(c *gin.Context) {
	if _, ok := mustCaller(c); !ok {
		return
	}

	to := time.Now().UTC()
	from := to.AddDate(0, -1, 0)
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		to = parsed
	}

	stats, err := h.statsService.TransactionStats(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}
