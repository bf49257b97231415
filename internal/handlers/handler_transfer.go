package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/diallo-dev/money_transfer_app/internal/core/ports/services"
	"github.com/diallo-dev/money_transfer_app/internal/dto"
	"github.com/diallo-dev/money_transfer_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles the balance-mutating user operations.
type transferHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newTransferHandler(ls portssvc.LedgerSvcFacade) *transferHandler {
	return &transferHandler{ledgerService: ls}
}

// registerTransferRoutes registers the transfer and refund routes.
func registerTransferRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransferHandler(ledgerService)

	rg.POST("/transfers", h.transfer)
	rg.POST("/transactions/:id/refund", h.refund)
}

func parseTransactionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return 0, false
	}
	return id, true
}

// transfer godoc
// @Summary Transfer money
// @Description Moves amount from the caller's account to the destination phone number; a fee is charged on top
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid amount or destination"
// @Failure 404 {object} map[string]string "Destination not found"
// @Failure 422 {object} map[string]string "Insufficient funds or inactive account"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.Transfer(c.Request.Context(), caller, req.DestinationPhone, req.Amount)
	if err != nil {
		// A FAILED record may exist; surface it alongside the error status.
		if txn != nil {
			c.JSON(statusFromError(err), gin.H{
				"error":       err.Error(),
				"transaction": dto.ToTransactionResponse(txn),
			})
			return
		}
		respondError(c, err, "Failed to execute transfer")
		return
	}

	logger.Info("Transfer completed",
		slog.Int64("transaction_id", txn.TransactionID),
		slog.Int64("amount", txn.Amount),
	)
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// refund godoc
// @Summary Refund a transaction
// @Description Reverses a successful transfer or deposit; allowed for admins and parties to the transaction
// @Tags transfers
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Not a party to the transaction"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 422 {object} map[string]string "Transaction not refundable"
// @Security BearerAuth
// @Router /transactions/{id}/refund [post]
func (h *transferHandler) refund(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := parseTransactionID(c)
	if !ok {
		return
	}

	txn, err := h.ledgerService.Refund(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err, "Failed to refund transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
