package services

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/diallo-dev/money_transfer_app/internal/core/ports/services"
	"github.com/diallo-dev/money_transfer_app/internal/dto"
)

// StatsService aggregates platform-wide figures for the admin dashboard.
type StatsService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewStatsService creates a new StatsService.
func NewStatsService(
	userRepo portsrepo.UserRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
) *StatsService {
	return &StatsService{userRepo: userRepo, accountRepo: accountRepo, txnRepo: txnRepo}
}

var _ portssvc.StatsSvcFacade = (*StatsService)(nil)

// PlatformStats returns current counters and the total held balance.
func (s *StatsService) PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	totalUsers, enabledUsers, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	totalAccounts, activeAccounts, err := s.accountRepo.CountAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	byType, err := s.accountRepo.CountAccountsByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts by type: %w", err)
	}
	totalTxns, err := s.txnRepo.CountTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}
	totalBalance, err := s.accountRepo.TotalBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total balances: %w", err)
	}

	accountsByType := make(map[string]int64, len(byType))
	for t, n := range byType {
		accountsByType[string(t)] = n
	}
	return &dto.PlatformStatsResponse{
		TotalUsers:        totalUsers,
		EnabledUsers:      enabledUsers,
		TotalAccounts:     totalAccounts,
		ActiveAccounts:    activeAccounts,
		TotalTransactions: totalTxns,
		TotalBalance:      totalBalance,
		AccountsByType:    accountsByType,
		Timestamp:         time.Now().UTC(),
	}, nil
}

// TransactionStats aggregates successful movements over an inclusive window.
func (s *StatsService) TransactionStats(ctx context.Context, from, to time.Time) (*dto.TransactionStatsResponse, error) {
	amount, fee, count, err := s.txnRepo.SumAmountsBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	return &dto.TransactionStatsResponse{
		Count:       count,
		TotalAmount: amount,
		TotalFees:   fee,
		From:        from,
		To:          to,
	}, nil
}
