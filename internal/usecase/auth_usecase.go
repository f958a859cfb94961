package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//email重複
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")
)

// ログイン維持の期間は7日
const accessTokenTTL = 7 * 24 * time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, name string, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthRegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResult struct {
	User      UserDTO
	Token     string
	ExpiresAt time.Time
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	validator AuthValidator
}

func NewAuthUsecase(cfg config.Config, users repository.UserRepository, validator AuthValidator) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, users: users, validator: validator}
}

func (u *AuthUsecase) Register(ctx context.Context, in AuthRegisterInput) (UserDTO, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in.Name, in.Email, in.Password); err != nil {
		return UserDTO{}, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserDTO{}, ErrInternal
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(pwHash),
		Role:         model.RoleUser,
	}

	//保存（email重複はvalidatorで先に弾いているが、uniqueIndex違反もここに落ちる）
	if err := u.users.Create(ctx, user); err != nil {
		return UserDTO{}, ErrConflict
	}

	return toUserDTO(user), nil
}

func (u *AuthUsecase) Login(ctx context.Context, in AuthLoginInput) (AuthLoginResult, error) {
	if err := u.validator.ValidateLogin(ctx, in.Email, in.Password); err != nil {
		return AuthLoginResult{}, err
	}

	user, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil || user == nil {
		return AuthLoginResult{}, ErrUnauthorized
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthLoginResult{}, ErrUnauthorized
	}

	//last_login更新
	now := time.Now()
	user.LastLoginAt = &now
	_ = u.users.Update(ctx, user)

	token, expiresAt, err := u.issueAccessToken(user, now)
	if err != nil {
		return AuthLoginResult{}, ErrInternal
	}

	return AuthLoginResult{
		User:      toUserDTO(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// JWT発行（HS256、subにuser id、roleクレーム付き）
func (u *AuthUsecase) issueAccessToken(user *model.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func toUserDTO(user *model.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
