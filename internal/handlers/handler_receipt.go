package handlers

import (
	"net/http"

	portssvc "github.com/diallo-dev/money_transfer_app/internal/core/ports/services"
	"github.com/diallo-dev/money_transfer_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// receiptHandler serves receipt references.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

func newReceiptHandler(rs portssvc.ReceiptSvcFacade) *receiptHandler {
	return &receiptHandler{receiptService: rs}
}

// registerReceiptRoutes registers the receipt lookup routes.
func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade) {
	h := newReceiptHandler(receiptService)

	rg.GET("/transactions/:id/receipt", h.getReceipt)
	rg.GET("/receipts/:number", h.resolveReceipt)
}

// getReceipt godoc
// @Summary Get a transaction's receipt
// @Description Returns the receipt number issued for a successful transaction; restricted to parties and admins
// @Tags receipts
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 403 {object} map[string]string "Not a party to the transaction"
// @Failure 404 {object} map[string]string "No receipt issued"
// @Security BearerAuth
// @Router /transactions/{id}/receipt [get]
func (h *receiptHandler) getReceipt(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := parseTransactionID(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetForTransaction(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err, "Failed to load receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// resolveReceipt godoc
// @Summary Resolve a receipt number
// @Description Maps a receipt number back to its transaction; restricted to parties and admins
// @Tags receipts
// @Produce json
// @Param number path string true "Receipt number"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Not a party to the transaction"
// @Failure 404 {object} map[string]string "Unknown receipt number"
// @Security BearerAuth
// @Router /receipts/{number} [get]
func (h *receiptHandler) resolveReceipt(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	txn, err := h.receiptService.Resolve(c.Request.Context(), caller, c.Param("number"))
	if err != nil {
		respondError(c, err, "Failed to resolve receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
