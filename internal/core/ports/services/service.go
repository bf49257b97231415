package services

import (
	"context"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/dto"
)

// StatsSvcFacade aggregates platform-wide figures for the admin dashboard.
type StatsSvcFacade interface {
	// PlatformStats returns current counters and the total held balance.
	PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error)

	// TransactionStats aggregates successful movements over an inclusive
	// window.
	TransactionStats(ctx context.Context, from, to time.Time) (*dto.TransactionStatsResponse, error)
}

// ServiceContainer bundles every service facade for dependency injection into
// the handlers.
type ServiceContainer struct {
	User    UserSvcFacade
	Account AccountSvcFacade
	Ledger  LedgerSvcFacade
	History HistorySvcFacade
	Receipt ReceiptSvcFacade
	Stats   StatsSvcFacade
}
