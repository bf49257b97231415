package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	"github.com/diallo-dev/money_transfer_app/internal/core/fees"
	"github.com/diallo-dev/money_transfer_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByPhone(ctx context.Context, phoneNumber string) (*domain.Account, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByOwner(ctx context.Context, ownerUserID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetBalance(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) SearchAccounts(ctx context.Context, keyword string, limit int) ([]domain.Account, error) {
	args := m.Called(ctx, keyword, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountAccounts(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) CountAccountsByType(ctx context.Context) (map[domain.AccountType]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.AccountType]int64), args.Error(1)
}

func (m *MockAccountRepository) TotalBalance(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool, updatedBy string, at time.Time) error {
	args := m.Called(ctx, accountID, active, updatedBy, at)
	return args.Error(0)
}

func (m *MockAccountRepository) Debit(ctx context.Context, accountID string, amount int64) error {
	args := m.Called(ctx, accountID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) Credit(ctx context.Context, accountID string, amount int64) error {
	args := m.Called(ctx, accountID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) ApplyAtomic(ctx context.Context, changes []domain.BalanceChange) error {
	args := m.Called(ctx, changes)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, page domain.PageRequest) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) ListRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CountTransactions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SumAmountsBetween(ctx context.Context, from, to time.Time) (int64, int64, int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Get(1).(int64), args.Get(2).(int64), args.Error(3)
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID int64, from, to domain.TransactionStatus) error {
	args := m.Called(ctx, transactionID, from, to)
	return args.Error(0)
}

func (m *MockTransactionRepository) ReverseTransaction(ctx context.Context, transactionID int64, from, to domain.TransactionStatus, changes []domain.BalanceChange) error {
	args := m.Called(ctx, transactionID, from, to, changes)
	return args.Error(0)
}

// --- Mock ReceiptService ---
type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) Issue(ctx context.Context, transactionID int64) (*domain.Receipt, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) GetForTransaction(ctx context.Context, caller domain.Caller, transactionID int64) (*domain.Receipt, error) {
	args := m.Called(ctx, caller, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) Resolve(ctx context.Context, caller domain.Caller, number string) (*domain.Transaction, error) {
	args := m.Called(ctx, caller, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	txnRepo     *MockTransactionRepository
	receiptSvc  *MockReceiptService
	service     *services.LedgerService
	ctx         context.Context

	user  domain.Caller
	admin domain.Caller
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.accountRepo = new(MockAccountRepository)
	s.txnRepo = new(MockTransactionRepository)
	s.receiptSvc = new(MockReceiptService)
	s.service = services.NewLedgerService(s.accountRepo, s.txnRepo, s.receiptSvc, fees.Default(), "")
	s.ctx = context.Background()
	s.user = domain.Caller{UserID: "user-1", Role: domain.RoleUser}
	s.admin = domain.Caller{UserID: "admin-1", Role: domain.RoleAdmin}
}

func activeAccount(id, phone, owner string, balance int64) *domain.Account {
	return &domain.Account{
		AccountID:   id,
		PhoneNumber: phone,
		OwnerUserID: owner,
		AccountType: domain.Ordinary,
		Balance:     balance,
		IsActive:    true,
	}
}

func (s *LedgerServiceTestSuite) TestTransfer_Success() {
	source := activeAccount("acc-1", "770000001", "user-1", 5000)
	dest := activeAccount("acc-2", "770000002", "user-2", 0)

	s.accountRepo.On("FindAccountByOwner", s.ctx, "user-1").Return(source, nil)
	s.accountRepo.On("FindAccountByPhone", s.ctx, "770000002").Return(dest, nil)
	s.txnRepo.On("CreateTransaction", s.ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.TypeTransfer &&
			txn.Status == domain.StatusPending &&
			txn.Amount == 2000 &&
			txn.Fee == 20
	})).Return(int64(42), nil)
	s.accountRepo.On("ApplyAtomic", s.ctx, []domain.BalanceChange{
		{AccountID: "acc-1", Delta: -2020},
		{AccountID: "acc-2", Delta: 2000},
	}).Return(nil)
	s.txnRepo.On("UpdateTransactionStatus", s.ctx, int64(42), domain.StatusPending, domain.StatusSuccess).Return(nil)
	s.receiptSvc.On("Issue", s.ctx, int64(42)).Return(&domain.Receipt{Number: "RC01TEST", TransactionID: 42}, nil)

	txn, err := s.service.Transfer(s.ctx, s.user, "770000002", 2000)

	s.Require().NoError(err)
	s.Equal(int64(42), txn.TransactionID)
	s.Equal(domain.StatusSuccess, txn.Status)
	s.Equal(int64(20), txn.Fee)
	s.accountRepo.AssertExpectations(s.T())
	s.txnRepo.AssertExpectations(s.T())
	s.receiptSvc.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestTransfer_InsufficientFunds_RecordsFailed() {
	source := activeAccount("acc-1", "770000001", "user-1", 1000)
	dest := activeAccount("acc-2", "770000002", "user-2", 0)

	s.accountRepo.On("FindAccountByOwner", s.ctx, "user-1").Return(source, nil)
	s.accountRepo.On("FindAccountByPhone", s.ctx, "770000002").Return(dest, nil)
	s.txnRepo.On("CreateTransaction", s.ctx, mock.Anything).Return(int64(7), nil)
	s.accountRepo.On("ApplyAtomic", s.ctx, mock.Anything).Return(apperrors.ErrInsufficientFunds)
	s.txnRepo.On("UpdateTransactionStatus", s.ctx, int64(7), domain.StatusPending, domain.StatusFailed).Return(nil)

	txn, err := s.service.Transfer(s.ctx, s.user, "770000002", 2000)

	s.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Require().NotNil(txn)
	s.Equal(domain.StatusFailed, txn.Status)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestTransfer_NonPositiveAmount() {
	for _, amount := range []int64{0, -1, -500} {
		_, err := s.service.Transfer(s.ctx, s.user, "770000002", amount)
		s.ErrorIs(err, apperrors.ErrInvalidAmount)
	}
	s.txnRepo.AssertNotCalled(s.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestTransfer_SelfTransferRejected() {
	source := activeAccount("acc-1", "770000001", "user-1", 5000)

	s.accountRepo.On("FindAccountByOwner", s.ctx, "user-1").Return(source, nil)
	s.accountRepo.On("FindAccountByPhone", s.ctx, "770000001").Return(source, nil)

	_, err := s.service.Transfer(s.ctx, s.user, "770000001", 1000)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestTransfer_InactiveDestination() {
	source := activeAccount("acc-1", "770000001", "user-1", 5000)
	dest := activeAccount("acc-2", "770000002", "user-2", 0)
	dest.IsActive = false

	s.accountRepo.On("FindAccountByOwner", s.ctx, "user-1").Return(source, nil)
	s.accountRepo.On("FindAccountByPhone", s.ctx, "770000002").Return(dest, nil)

	_, err := s.service.Transfer(s.ctx, s.user, "770000002", 1000)

	s.ErrorIs(err, apperrors.ErrAccountInactive)
}

func (s *LedgerServiceTestSuite) TestTransfer_UnknownDestination() {
	source := activeAccount("acc-1", "770000001", "user-1", 5000)

	s.accountRepo.On("FindAccountByOwner", s.ctx, "user-1").Return(source, nil)
	s.accountRepo.On("FindAccountByPhone", s.ctx, "779999999").Return(nil, apperrors.ErrNotFound)

	_, err := s.service.Transfer(s.ctx, s.user, "779999999", 1000)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestDeposit_RequiresAdmin() {
	_, err := s.service.Deposit(s.ctx, s.user, "acc-2", 1000, "")
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *LedgerServiceTestSuite) TestDeposit_Success_NoFee() {
	account := activeAccount("acc-2", "770000002", "user-2", 0)

	s.accountRepo.On("FindAccountByID", s.ctx, "acc-2").Return(account, nil)
	s.txnRepo.On("CreateTransaction", s.ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.TypeDeposit && txn.Fee == 0 && txn.SourceAccountID == nil
	})).Return(int64(8), nil)
	s.accountRepo.On("ApplyAtomic", s.ctx, []domain.BalanceChange{{AccountID: "acc-2", Delta: 1500}}).Return(nil)
	s.txnRepo.On("UpdateTransactionStatus", s.ctx, int64(8), domain.StatusPending, domain.StatusSuccess).Return(nil)
	s.receiptSvc.On("Issue", s.ctx, int64(8)).Return(&domain.Receipt{Number: "RC02TEST", TransactionID: 8}, nil)

	txn, err := s.service.Deposit(s.ctx, s.admin, "acc-2", 1500, "initial funding")

	s.Require().NoError(err)
	s.Equal(domain.StatusSuccess, txn.Status)
	s.Equal(int64(0), txn.Fee)
}

func (s *LedgerServiceTestSuite) TestWithdraw_InsufficientFunds_RecordsFailed() {
	account := activeAccount("acc-2", "770000002", "user-2", 2000)

	s.accountRepo.On("FindAccountByID", s.ctx, "acc-2").Return(account, nil)
	s.txnRepo.On("CreateTransaction", s.ctx, mock.Anything).Return(int64(9), nil)
	s.accountRepo.On("ApplyAtomic", s.ctx, []domain.BalanceChange{{AccountID: "acc-2", Delta: -3000}}).Return(apperrors.ErrInsufficientFunds)
	s.txnRepo.On("UpdateTransactionStatus", s.ctx, int64(9), domain.StatusPending, domain.StatusFailed).Return(nil)

	txn, err := s.service.Withdraw(s.ctx, s.admin, "acc-2", 3000, "")

	s.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Require().NotNil(txn)
	s.Equal(domain.StatusFailed, txn.Status)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCancel_ReversesTransferWithFee() {
	src := "acc-1"
	dst := "acc-2"
	txn := &domain.Transaction{
		TransactionID:        42,
		Amount:               2000,
		Fee:                  20,
		SourceAccountID:      &src,
		DestinationAccountID: &dst,
		Type:                 domain.TypeTransfer,
		Status:               domain.StatusSuccess,
	}

	s.txnRepo.On("FindTransactionByID", s.ctx, int64(42)).Return(txn, nil)
	s.txnRepo.On("ReverseTransaction", s.ctx, int64(42), domain.StatusSuccess, domain.StatusCancelled, []domain.BalanceChange{
		{AccountID: "acc-1", Delta: 2020},
		{AccountID: "acc-2", Delta: -2000},
	}).Return(nil)

	reversed, err := s.service.Cancel(s.ctx, s.admin, 42)

	s.Require().NoError(err)
	s.Equal(domain.StatusCancelled, reversed.Status)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCancel_RequiresAdmin() {
	_, err := s.service.Cancel(s.ctx, s.user, 42)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *LedgerServiceTestSuite) TestCancel_AlreadyCancelled() {
	src := "acc-1"
	txn := &domain.Transaction{
		TransactionID:   42,
		Amount:          2000,
		SourceAccountID: &src,
		Type:            domain.TypeWithdrawal,
		Status:          domain.StatusCancelled,
	}

	s.txnRepo.On("FindTransactionByID", s.ctx, int64(42)).Return(txn, nil)

	_, err := s.service.Cancel(s.ctx, s.admin, 42)

	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.txnRepo.AssertNotCalled(s.T(), "ReverseTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestRefund_WithdrawalRejected() {
	src := "acc-1"
	txn := &domain.Transaction{
		TransactionID:   10,
		Amount:          500,
		SourceAccountID: &src,
		Type:            domain.TypeWithdrawal,
		Status:          domain.StatusSuccess,
	}

	s.txnRepo.On("FindTransactionByID", s.ctx, int64(10)).Return(txn, nil)

	_, err := s.service.Refund(s.ctx, s.admin, 10)

	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *LedgerServiceTestSuite) TestRefund_NonPartyForbidden() {
	src := "acc-1"
	dst := "acc-2"
	txn := &domain.Transaction{
		TransactionID:        11,
		Amount:               500,
		SourceAccountID:      &src,
		DestinationAccountID: &dst,
		Type:                 domain.TypeTransfer,
		Status:               domain.StatusSuccess,
	}
	outsider := activeAccount("acc-3", "770000003", "user-3", 0)

	s.txnRepo.On("FindTransactionByID", s.ctx, int64(11)).Return(txn, nil)
	s.accountRepo.On("FindAccountByOwner", s.ctx, "user-3").Return(outsider, nil)

	_, err := s.service.Refund(s.ctx, domain.Caller{UserID: "user-3", Role: domain.RoleUser}, 11)

	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *LedgerServiceTestSuite) TestRefund_PartySucceeds() {
	src := "acc-1"
	dst := "acc-2"
	txn := &domain.Transaction{
		TransactionID:        12,
		Amount:               800,
		Fee:                  8,
		SourceAccountID:      &src,
		DestinationAccountID: &dst,
		Type:                 domain.TypeTransfer,
		Status:               domain.StatusSuccess,
	}
	party := activeAccount("acc-2", "770000002", "user-2", 800)

	s.txnRepo.On("FindTransactionByID", s.ctx, int64(12)).Return(txn, nil)
	s.accountRepo.On("FindAccountByOwner", s.ctx, "user-2").Return(party, nil)
	s.txnRepo.On("ReverseTransaction", s.ctx, int64(12), domain.StatusSuccess, domain.StatusRefunded, []domain.BalanceChange{
		{AccountID: "acc-1", Delta: 808},
		{AccountID: "acc-2", Delta: -800},
	}).Return(nil)

	reversed, err := s.service.Refund(s.ctx, domain.Caller{UserID: "user-2", Role: domain.RoleUser}, 12)

	s.Require().NoError(err)
	s.Equal(domain.StatusRefunded, reversed.Status)
}

func (s *LedgerServiceTestSuite) TestConcurrentReversal_LoserGetsInvalidState() {
	src := "acc-1"
	dst := "acc-2"
	txn := &domain.Transaction{
		TransactionID:        13,
		Amount:               100,
		SourceAccountID:      &src,
		DestinationAccountID: &dst,
		Type:                 domain.TypeTransfer,
		Status:               domain.StatusSuccess,
	}

	s.txnRepo.On("FindTransactionByID", s.ctx, int64(13)).Return(txn, nil)
	// Another reversal won the compare-and-set first.
	s.txnRepo.On("ReverseTransaction", s.ctx, int64(13), domain.StatusSuccess, domain.StatusCancelled, mock.Anything).Return(apperrors.ErrInvalidState)

	_, err := s.service.Cancel(s.ctx, s.admin, 13)

	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
