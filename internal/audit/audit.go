// Package audit emits one structured event per balance-mutating ledger
// command. The events double as the operational trail the transaction store
// cannot express (who asked, which command, which outcome).
package audit

import (
	"context"
	"log/slog"

	"github.com/diallo-dev/money_transfer_app/internal/middleware"
)

// Event names, one per ledger command.
const (
	EventTransfer       = "ledger.transfer"
	EventDeposit        = "ledger.deposit"
	EventWithdraw       = "ledger.withdraw"
	EventCancel         = "ledger.cancel"
	EventRefund         = "ledger.refund"
	EventAccountToggled = "account.toggled"
	EventUserRegistered = "user.registered"
	EventReceiptIssued  = "receipt.issued"
)

// Log writes an audit event enriched with the request-scoped logger context.
func Log(ctx context.Context, event string, attrs ...any) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if caller, ok := middleware.GetCallerFromCtx(ctx); ok {
		attrs = append(attrs, slog.String("caller_id", caller.UserID), slog.String("caller_role", string(caller.Role)))
	}
	attrs = append(attrs, slog.String("audit_event", event))
	logger.Info(event, attrs...)
}
