package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/core/services"
	"github.com/expensio/expensio_backend/internal/dto"
	"github.com/expensio/expensio_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- CreateUser Tests ---

func (suite *UserServiceTestSuite) TestCreateUser_HashesPasswordAndLowercasesUsername() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		Name:     "Test User",
		Username: "TestUser",
		Password: "password123",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "testuser" &&
			user.PasswordHash != "" &&
			user.PasswordHash != req.Password &&
			user.AuthProvider == domain.ProviderLocal
	})).Return(nil).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(createdUser)
	suite.Equal("testuser", createdUser.Username)
	suite.NotEmpty(createdUser.UserID)
	suite.True(utils.CheckPasswordHash(req.Password, createdUser.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{Name: "Test", Username: "taken", Password: "password123"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(createdUser)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- AuthenticateUser Tests ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "testuser", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "testuser").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "testuser", "password123")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "testuser", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "testuser").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "testuser", "wrong-password")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUsernameIsUnauthorized() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.AuthenticateUser(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	suite.Nil(got)
	// Unknown usernames and wrong passwords are indistinguishable.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateUser Tests ---

func (suite *UserServiceTestSuite) TestUpdateUser_AppliesNamePointer() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.User{UserID: userID, Name: "Old Name"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == userID && u.Name == "New Name" && u.LastUpdatedBy == userID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: stringPtr("New Name")}, userID)

	suite.Require().NoError(err)
	suite.Equal("New Name", updated.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- DeleteUser Tests ---

func (suite *UserServiceTestSuite) TestDeleteUser_MarksDeleted() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("MarkUserDeleted", ctx, userID, mock.AnythingOfType("time.Time"), userID).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, userID, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- FindOrCreateUserFromGoogle Tests ---

func (suite *UserServiceTestSuite) TestFindOrCreateUserFromGoogle_ExistingUser() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), AuthProvider: domain.ProviderGoogle, ProviderUserID: "google-sub"}

	suite.mockUserRepo.On("FindUserByProviderID", ctx, domain.ProviderGoogle, "google-sub").Return(existing, nil).Once()

	got, err := suite.service.FindOrCreateUserFromGoogle(ctx, domain.GoogleUserInfo{Subject: "google-sub", Email: "a@b.com", Name: "A"})

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, got.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser")
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateUserFromGoogle_CreatesOnFirstSignIn() {
	ctx := context.Background()
	info := domain.GoogleUserInfo{Subject: "google-sub", Email: "New@Example.com", Name: "New User"}

	suite.mockUserRepo.On("FindUserByProviderID", ctx, domain.ProviderGoogle, "google-sub").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == domain.ProviderGoogle &&
			u.ProviderUserID == "google-sub" &&
			u.Username == "new@example.com" &&
			u.PasswordHash == ""
	})).Return(nil).Once()

	got, err := suite.service.FindOrCreateUserFromGoogle(ctx, info)

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Equal("New User", got.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
