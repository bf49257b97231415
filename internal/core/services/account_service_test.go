package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	"github.com/diallo-dev/money_transfer_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  *services.AccountService
	ctx      context.Context
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockRepo)
	s.ctx = context.Background()
}

func (s *AccountServiceTestSuite) TestCreateAccount_DefaultsToOrdinary() {
	s.mockRepo.On("SaveAccount", s.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.PhoneNumber == "+221770000001" &&
			a.OwnerUserID == "user-1" &&
			a.AccountType == domain.Ordinary &&
			a.Balance == 0 &&
			a.IsActive
	})).Return(nil).Once()

	account, err := s.service.CreateAccount(s.ctx, "user-1", "+221770000001", "")

	s.Require().NoError(err)
	s.NotEmpty(account.AccountID)
	s.Equal(domain.Ordinary, account.AccountType)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_RejectsMissingPhone() {
	_, err := s.service.CreateAccount(s.ctx, "user-1", "", domain.Ordinary)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccount_RejectsUnknownType() {
	_, err := s.service.CreateAccount(s.ctx, "user-1", "+221770000001", domain.AccountType("PREMIUM"))

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestGetAccountByID_OwnerScoped() {
	account := &domain.Account{AccountID: "acc-1", OwnerUserID: "user-1", IsActive: true}
	s.mockRepo.On("FindAccountByID", s.ctx, "acc-1").Return(account, nil)

	got, err := s.service.GetAccountByID(s.ctx, domain.Caller{UserID: "user-1", Role: domain.RoleUser}, "acc-1")
	s.Require().NoError(err)
	s.Equal("acc-1", got.AccountID)

	_, err = s.service.GetAccountByID(s.ctx, domain.Caller{UserID: "user-2", Role: domain.RoleUser}, "acc-1")
	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *AccountServiceTestSuite) TestGetAccountByID_AdminSeesAny() {
	account := &domain.Account{AccountID: "acc-1", OwnerUserID: "user-1", IsActive: true}
	s.mockRepo.On("FindAccountByID", s.ctx, "acc-1").Return(account, nil).Once()

	got, err := s.service.GetAccountByID(s.ctx, domain.Caller{UserID: "admin-1", Role: domain.RoleAdmin}, "acc-1")

	s.Require().NoError(err)
	s.Equal("acc-1", got.AccountID)
}

func (s *AccountServiceTestSuite) TestListAccounts_RequiresAdmin() {
	_, err := s.service.ListAccounts(s.ctx, domain.Caller{UserID: "user-1", Role: domain.RoleUser}, 0, 10)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockRepo.AssertNotCalled(s.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestListAccounts_PagesAndTotals() {
	admin := domain.Caller{UserID: "admin-1", Role: domain.RoleAdmin}
	accounts := []domain.Account{
		{AccountID: "acc-1", PhoneNumber: "+221770000001"},
		{AccountID: "acc-2", PhoneNumber: "+221770000002"},
	}
	s.mockRepo.On("ListAccounts", s.ctx, 10, 20).Return(accounts, int64(22), nil).Once()

	resp, err := s.service.ListAccounts(s.ctx, admin, 2, 10)

	s.Require().NoError(err)
	s.Len(resp.Accounts, 2)
	s.Equal(int64(22), resp.TotalCount)
	s.Equal(3, resp.TotalPages)
	s.Equal(2, resp.Page)
}

func (s *AccountServiceTestSuite) TestToggleAccountStatus_FlipsActiveFlag() {
	admin := domain.Caller{UserID: "admin-1", Role: domain.RoleAdmin}
	account := &domain.Account{AccountID: "acc-1", OwnerUserID: "user-1", IsActive: true}
	s.mockRepo.On("FindAccountByID", s.ctx, "acc-1").Return(account, nil).Once()
	s.mockRepo.On("SetAccountActive", s.ctx, "acc-1", false, "admin-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	got, err := s.service.ToggleAccountStatus(s.ctx, admin, "acc-1")

	s.Require().NoError(err)
	s.False(got.IsActive)
	s.Equal("admin-1", got.LastUpdatedBy)
	s.WithinDuration(time.Now().UTC(), got.LastUpdatedAt, time.Minute)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestToggleAccountStatus_RequiresAdmin() {
	_, err := s.service.ToggleAccountStatus(s.ctx, domain.Caller{UserID: "user-1", Role: domain.RoleUser}, "acc-1")

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
