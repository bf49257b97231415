package services

import (
	"github.com/diallo-dev/money_transfer_app/internal/core/fees"
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/diallo-dev/money_transfer_app/internal/core/ports/services"
)

// NewServiceContainer wires every service onto the repository provider.
// feeRateBasisPoints and feeAccountID come from configuration; a zero rate
// disables fees entirely.
func NewServiceContainer(repos portsrepo.RepositoryProvider, feeRateBasisPoints int64, feeAccountID string) portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.Account)
	receiptSvc := NewReceiptService(repos.Receipt, repos.Transaction, repos.Account)
	feePolicy := fees.NewPercentPolicy(feeRateBasisPoints)

	return portssvc.ServiceContainer{
		User:    NewUserService(repos.User, accountSvc),
		Account: accountSvc,
		Ledger:  NewLedgerService(repos.Account, repos.Transaction, receiptSvc, feePolicy, feeAccountID),
		History: NewHistoryService(repos.Transaction, repos.Account),
		Receipt: receiptSvc,
		Stats:   NewStatsService(repos.User, repos.Account, repos.Transaction),
	}
}
