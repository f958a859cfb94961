package usecase_test

import (
	"context"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type AuthValidatorMock struct{ mock.Mock }

func (m *AuthValidatorMock) ValidateRegister(ctx context.Context, name string, email string, password string) error {
	args := m.Called(ctx, name, email, password)
	return args.Error(0)
}

func (m *AuthValidatorMock) ValidateLogin(ctx context.Context, email string, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

// =====================
// Register
// =====================

func TestAuthUsecase_Register(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	v := new(AuthValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, v)

	v.On("ValidateRegister", mock.Anything, "Taro", "taro@example.com", "secret1").Return(nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//平文は保存しない
		return u.Email == "taro@example.com" && u.PasswordHash != "secret1" && u.Role == model.RoleUser
	})).Return(nil)

	out, err := uc.Register(ctx, usecase.AuthRegisterInput{Name: "Taro", Email: "taro@example.com", Password: "secret1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "USER", out.Role)
}

func TestAuthUsecase_Register_ValidationFailure(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	v := new(AuthValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, v)

	v.On("ValidateRegister", mock.Anything, "", "", "").Return(usecase.ErrValidation)

	_, err := uc.Register(ctx, usecase.AuthRegisterInput{})
	assert.ErrorIs(t, err, usecase.ErrValidation)
	users.AssertNotCalled(t, "Create")
}

// =====================
// Login
// =====================

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	pwHash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	stored := &model.User{ID: 5, Name: "Taro", Email: "taro@example.com", PasswordHash: string(pwHash), Role: model.RoleAdmin}

	users := new(UserRepoMock)
	v := new(AuthValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, v)

	v.On("ValidateLogin", mock.Anything, "taro@example.com", "secret1").Return(nil)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(stored, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Login(ctx, usecase.AuthLoginInput{Email: "taro@example.com", Password: "secret1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.User.ID)
	assert.NotEmpty(t, out.Token)

	//発行したトークンのクレームを確認
	tok, err := jwt.Parse(out.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := tok.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "5", claims["sub"])
	assert.Equal(t, "ADMIN", claims["role"])

	//last_loginが更新される
	assert.NotNil(t, stored.LastLoginAt)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()

	pwHash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	stored := &model.User{ID: 5, Email: "taro@example.com", PasswordHash: string(pwHash)}

	users := new(UserRepoMock)
	v := new(AuthValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, v)

	v.On("ValidateLogin", mock.Anything, "taro@example.com", "wrong").Return(nil)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(stored, nil)

	_, err := uc.Login(ctx, usecase.AuthLoginInput{Email: "taro@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	users.AssertNotCalled(t, "Update")
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	v := new(AuthValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, v)

	v.On("ValidateLogin", mock.Anything, "nobody@example.com", "secret1").Return(nil)
	//見つからなければ(nil, nil)
	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	_, err := uc.Login(ctx, usecase.AuthLoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}
