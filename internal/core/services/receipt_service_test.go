package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	"github.com/diallo-dev/money_transfer_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReceiptRepository ---
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) FindReceiptByTransactionID(ctx context.Context, transactionID int64) (*domain.Receipt, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindReceiptByNumber(ctx context.Context, number string) (*domain.Receipt, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

type ReceiptServiceTestSuite struct {
	suite.Suite
	receiptRepo *MockReceiptRepository
	txnRepo     *MockTransactionRepository
	accountRepo *MockAccountRepository
	service     *services.ReceiptService
	ctx         context.Context
}

func (s *ReceiptServiceTestSuite) SetupTest() {
	s.receiptRepo = new(MockReceiptRepository)
	s.txnRepo = new(MockTransactionRepository)
	s.accountRepo = new(MockAccountRepository)
	s.service = services.NewReceiptService(s.receiptRepo, s.txnRepo, s.accountRepo)
	s.ctx = context.Background()
}

func (s *ReceiptServiceTestSuite) TestIssue_CreatesOnFirstCall() {
	txn := &domain.Transaction{TransactionID: 42, Status: domain.StatusSuccess}

	s.receiptRepo.On("FindReceiptByTransactionID", s.ctx, int64(42)).Return(nil, apperrors.ErrNotFound).Once()
	s.txnRepo.On("FindTransactionByID", s.ctx, int64(42)).Return(txn, nil)
	s.receiptRepo.On("SaveReceipt", s.ctx, mock.MatchedBy(func(r domain.Receipt) bool {
		return r.TransactionID == 42 && strings.HasPrefix(r.Number, "RC")
	})).Return(nil)

	receipt, err := s.service.Issue(s.ctx, 42)

	s.Require().NoError(err)
	s.Equal(int64(42), receipt.TransactionID)
	s.True(strings.HasPrefix(receipt.Number, "RC"))
}

func (s *ReceiptServiceTestSuite) TestIssue_IdempotentOnRepeat() {
	existing := &domain.Receipt{Number: "RC01EXISTING", TransactionID: 42}

	s.receiptRepo.On("FindReceiptByTransactionID", s.ctx, int64(42)).Return(existing, nil)

	receipt, err := s.service.Issue(s.ctx, 42)

	s.Require().NoError(err)
	s.Equal("RC01EXISTING", receipt.Number)
	s.receiptRepo.AssertNotCalled(s.T(), "SaveReceipt", mock.Anything, mock.Anything)
}

func (s *ReceiptServiceTestSuite) TestIssue_LosingInsertRaceReturnsStoredReceipt() {
	txn := &domain.Transaction{TransactionID: 42, Status: domain.StatusSuccess}
	stored := &domain.Receipt{Number: "RC01WINNER", TransactionID: 42}

	s.receiptRepo.On("FindReceiptByTransactionID", s.ctx, int64(42)).Return(nil, apperrors.ErrNotFound).Once()
	s.txnRepo.On("FindTransactionByID", s.ctx, int64(42)).Return(txn, nil)
	s.receiptRepo.On("SaveReceipt", s.ctx, mock.Anything).Return(apperrors.ErrDuplicate)
	s.receiptRepo.On("FindReceiptByTransactionID", s.ctx, int64(42)).Return(stored, nil).Once()

	receipt, err := s.service.Issue(s.ctx, 42)

	s.Require().NoError(err)
	s.Equal("RC01WINNER", receipt.Number)
}

func (s *ReceiptServiceTestSuite) TestIssue_RejectsNonSuccess() {
	for _, status := range []domain.TransactionStatus{
		domain.StatusPending, domain.StatusFailed, domain.StatusCancelled, domain.StatusRefunded,
	} {
		txn := &domain.Transaction{TransactionID: 50, Status: status}
		receiptRepo := new(MockReceiptRepository)
		txnRepo := new(MockTransactionRepository)
		svc := services.NewReceiptService(receiptRepo, txnRepo, s.accountRepo)

		receiptRepo.On("FindReceiptByTransactionID", s.ctx, int64(50)).Return(nil, apperrors.ErrNotFound)
		txnRepo.On("FindTransactionByID", s.ctx, int64(50)).Return(txn, nil)

		_, err := svc.Issue(s.ctx, 50)
		s.ErrorIs(err, apperrors.ErrInvalidState, "status %s", status)
	}
}

func (s *ReceiptServiceTestSuite) TestResolve_NonPartyForbidden() {
	src, dst := "acc-1", "acc-2"
	receipt := &domain.Receipt{Number: "RC01X", TransactionID: 42}
	txn := &domain.Transaction{TransactionID: 42, SourceAccountID: &src, DestinationAccountID: &dst}
	outsider := activeAccount("acc-3", "770000003", "user-3", 0)

	s.receiptRepo.On("FindReceiptByNumber", s.ctx, "RC01X").Return(receipt, nil)
	s.txnRepo.On("FindTransactionByID", s.ctx, int64(42)).Return(txn, nil)
	s.accountRepo.On("FindAccountByOwner", s.ctx, "user-3").Return(outsider, nil)

	_, err := s.service.Resolve(s.ctx, domain.Caller{UserID: "user-3", Role: domain.RoleUser}, "RC01X")

	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ReceiptServiceTestSuite) TestResolve_AdminAllowed() {
	src := "acc-1"
	receipt := &domain.Receipt{Number: "RC01X", TransactionID: 42}
	txn := &domain.Transaction{TransactionID: 42, SourceAccountID: &src}

	s.receiptRepo.On("FindReceiptByNumber", s.ctx, "RC01X").Return(receipt, nil)
	s.txnRepo.On("FindTransactionByID", s.ctx, int64(42)).Return(txn, nil)

	resolved, err := s.service.Resolve(s.ctx, domain.Caller{UserID: "admin-1", Role: domain.RoleAdmin}, "RC01X")

	s.Require().NoError(err)
	s.Equal(int64(42), resolved.TransactionID)
}

func TestReceiptServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReceiptServiceTestSuite))
}
