package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	"github.com/diallo-dev/money_transfer_app/internal/core/services"
	"github.com/diallo-dev/money_transfer_app/internal/dto"
	"github.com/diallo-dev/money_transfer_app/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetUserEnabled(ctx context.Context, userID string, enabled bool, updatedBy string, at time.Time) error {
	args := m.Called(ctx, userID, enabled, updatedBy, at)
	return args.Error(0)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, ownerUserID, phoneNumber string, accountType domain.AccountType) (*domain.Account, error) {
	args := m.Called(ctx, ownerUserID, phoneNumber, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, caller, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetOwnAccount(ctx context.Context, caller domain.Caller) (*domain.Account, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetBalance(ctx context.Context, caller domain.Caller, accountID string) (int64, error) {
	args := m.Called(ctx, caller, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, caller domain.Caller, page, pageSize int) (*dto.ListAccountsResponse, error) {
	args := m.Called(ctx, caller, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountsResponse), args.Error(1)
}

func (m *MockAccountService) SearchAccounts(ctx context.Context, caller domain.Caller, keyword string) ([]dto.AccountResponse, error) {
	args := m.Called(ctx, caller, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AccountResponse), args.Error(1)
}

func (m *MockAccountService) ToggleAccountStatus(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, caller, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo   *MockUserRepository
	mockAccountSvc *MockAccountService
	service        *services.UserService
	ctx            context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.mockAccountSvc = new(MockAccountService)
	s.service = services.NewUserService(s.mockUserRepo, s.mockAccountSvc)
	s.ctx = context.Background()
}

func (s *UserServiceTestSuite) TestRegister_CreatesUserAndAccount() {
	s.mockUserRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == "Awa Diop" &&
			u.PhoneNumber == "+221770000001" &&
			u.Role == domain.RoleUser &&
			u.Enabled &&
			u.PasswordHash != "" && u.PasswordHash != "s3cret-pass"
	})).Return(nil).Once()
	s.mockAccountSvc.On("CreateAccount", s.ctx, mock.AnythingOfType("string"), "+221770000001", domain.Ordinary).
		Return(&domain.Account{AccountID: "acc-1"}, nil).Once()

	user, err := s.service.Register(s.ctx, "Awa Diop", "+221770000001", "s3cret-pass")

	s.Require().NoError(err)
	s.NotEmpty(user.UserID)
	s.True(utils.CheckPasswordHash("s3cret-pass", user.PasswordHash))
	s.mockUserRepo.AssertExpectations(s.T())
	s.mockAccountSvc.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegister_RejectsShortPassword() {
	_, err := s.service.Register(s.ctx, "Awa Diop", "+221770000001", "short")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestRegister_DuplicatePhoneSurfaced() {
	s.mockUserRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.Register(s.ctx, "Awa Diop", "+221770000001", "s3cret-pass")

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
	s.mockAccountSvc.AssertNotCalled(s.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestAuthenticate_Success() {
	hash, err := utils.HashPassword("s3cret-pass")
	s.Require().NoError(err)
	user := &domain.User{UserID: "user-1", PhoneNumber: "+221770000001", PasswordHash: hash, Enabled: true}
	s.mockUserRepo.On("FindUserByPhone", s.ctx, "+221770000001").Return(user, nil).Once()

	got, err := s.service.Authenticate(s.ctx, "+221770000001", "s3cret-pass")

	s.Require().NoError(err)
	s.Equal("user-1", got.UserID)
}

func (s *UserServiceTestSuite) TestAuthenticate_UniformFailures() {
	hash, err := utils.HashPassword("s3cret-pass")
	s.Require().NoError(err)

	s.mockUserRepo.On("FindUserByPhone", s.ctx, "+221770000009").
		Return(nil, apperrors.ErrNotFound).Once()
	_, unknownErr := s.service.Authenticate(s.ctx, "+221770000009", "s3cret-pass")

	s.mockUserRepo.On("FindUserByPhone", s.ctx, "+221770000001").
		Return(&domain.User{PasswordHash: hash, Enabled: true}, nil).Once()
	_, wrongPassErr := s.service.Authenticate(s.ctx, "+221770000001", "wrong-pass")

	s.mockUserRepo.On("FindUserByPhone", s.ctx, "+221770000001").
		Return(&domain.User{PasswordHash: hash, Enabled: false}, nil).Once()
	_, disabledErr := s.service.Authenticate(s.ctx, "+221770000001", "s3cret-pass")

	// Unknown phone, wrong password and disabled user must be
	// indistinguishable to the caller.
	s.Require().ErrorIs(unknownErr, apperrors.ErrForbidden)
	s.Require().ErrorIs(wrongPassErr, apperrors.ErrForbidden)
	s.Require().ErrorIs(disabledErr, apperrors.ErrForbidden)
	s.Equal(unknownErr.Error(), wrongPassErr.Error())
	s.Equal(wrongPassErr.Error(), disabledErr.Error())
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
