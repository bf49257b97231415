package handlers

import (
	"net/http"

	portssvc "github.com/diallo-dev/money_transfer_app/internal/core/ports/services"
	"github.com/diallo-dev/money_transfer_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// historyHandler serves the read side of the ledger.
type historyHandler struct {
	historyService portssvc.HistorySvcFacade
}

func newHistoryHandler(hs portssvc.HistorySvcFacade) *historyHandler {
	return &historyHandler{historyService: hs}
}

// registerHistoryRoutes registers the transaction listing routes. Non-admin
// callers are scoped to their own account by the service.
func registerHistoryRoutes(rg *gin.RouterGroup, historyService portssvc.HistorySvcFacade) {
	h := newHistoryHandler(historyService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
	}
}

// listTransactions godoc
// @Summary List transactions
// @Description Returns a filtered, sorted, zero-based page of the caller's transaction history
// @Tags transactions
// @Produce json
// @Param q query string false "Free-text match on phone numbers and owner names"
// @Param status query string false "Status filter" Enums(PENDING, SUCCESS, FAILED, CANCELLED, REFUNDED)
// @Param type query string false "Type filter" Enums(DEPOSIT, WITHDRAWAL, TRANSFER)
// @Param from query string false "Window start, RFC 3339, inclusive"
// @Param to query string false "Window end, RFC 3339, inclusive"
// @Param page query int false "Zero-based page"
// @Param pageSize query int false "Page size"
// @Param sortBy query string false "Sort field" Enums(timestamp, amount, status, type, id)
// @Param sortDir query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid filter or paging parameters"
// @Security BearerAuth
// @Router /transactions [get]
func (h *historyHandler) listTransactions(c *gin.Context) {
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

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves one transaction; non-admin callers must be a party to it
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Not a party to the transaction"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *historyHandler) getTransaction(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := parseTransactionID(c)
	if !ok {
		return
	}

	resp, err := h.historyService.GetTransaction(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err, "Failed to load transaction")
		return
	}
	c.JSON(http.StatusOK, resp)
}
