package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"jadara-labs.backend/internal/domain/entities"
	domainerrors "jadara-labs.backend/internal/domain/errors"
	"jadara-labs.backend/internal/usecases"
	"jadara-labs.backend/pkg/crypto"
	"jadara-labs.backend/pkg/jwt"
)

func newAuthHarness() (*MockUnitOfWork, *MockUserRepository, *MockWalletRepository, *usecases.AuthUsecase) {
	uow := new(MockUnitOfWork)
	userRepo := new(MockUserRepository)
	walletRepo := new(MockWalletRepository)
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	auth := usecases.NewAuthUsecase(uow, userRepo, walletRepo, jwtService, "NGN")
	return uow, userRepo, walletRepo, auth
}

func TestRegister_CreatesUserAndWalletTogether(t *testing.T) {
	uow, userRepo, walletRepo, auth := newAuthHarness()

	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, domainerrors.ErrNotFound)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		// Password must be hashed before the insert
		return u.Email == "ada@example.com" && u.PasswordHash != "s3cret!pass" &&
			crypto.CheckPassword("s3cret!pass", u.PasswordHash)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.User).ID = uuid.New()
	}).Return(nil)
	walletRepo.On("Create", mock.Anything, mock.MatchedBy(func(w *entities.Wallet) bool {
		return w.Balance.IsZero() && w.Currency == "NGN"
	})).Return(nil)

	resp, err := auth.Register(context.Background(), &entities.RegisterInput{
		Email:    "ada@example.com",
		Name:     "Ada",
		Password: "s3cret!pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, entities.UserRoleUser, resp.User.Role)
	userRepo.AssertExpectations(t)
	walletRepo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, userRepo, walletRepo, auth := newAuthHarness()

	userRepo.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&entities.User{ID: uuid.New(), Email: "taken@example.com"}, nil)

	_, err := auth.Register(context.Background(), &entities.RegisterInput{
		Email:    "taken@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	walletRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	_, userRepo, _, auth := newAuthHarness()

	hash, err := crypto.HashPassword("correct-horse")
	require.NoError(t, err)
	userID := uuid.New()
	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&entities.User{ID: userID, Email: "ada@example.com", PasswordHash: hash, Role: entities.UserRoleUser}, nil)

	resp, err := auth.Login(context.Background(), &entities.LoginInput{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	_, userRepo, _, auth := newAuthHarness()

	hash, err := crypto.HashPassword("correct-horse")
	require.NoError(t, err)
	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&entities.User{ID: uuid.New(), PasswordHash: hash}, nil)

	_, err = auth.Login(context.Background(), &entities.LoginInput{
		Email:    "ada@example.com",
		Password: "battery-staple",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	_, userRepo, _, auth := newAuthHarness()

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, domainerrors.ErrNotFound)

	_, err := auth.Login(context.Background(), &entities.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})
	// Unknown account and wrong password are indistinguishable to the caller
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestGetProfile(t *testing.T) {
	_, userRepo, _, auth := newAuthHarness()
	userID := uuid.New()

	userRepo.On("GetByID", mock.Anything, userID).
		Return(&entities.User{ID: userID, Email: "ada@example.com"}, nil)

	user, err := auth.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}
