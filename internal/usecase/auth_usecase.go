package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 15 * time.Minute

// 入力検証の約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type UserOutput struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type TokenOutput struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthRegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginOutput struct {
	User  UserOutput  `json:"user"`
	Token TokenOutput `json:"token"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repo.UserRepository
	validator AuthValidator
}

func NewAuthUsecase(cfg config.Config, users repo.UserRepository, v AuthValidator) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, users: users, validator: v}
}

func toUserOutput(u *model.User) UserOutput {
	return UserOutput{
		ID:       u.ID,
		Email:    u.Email,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in AuthRegisterInput) (UserOutput, error) {
	if err := u.validator.ValidateRegister(ctx, in.Email, in.Password); err != nil {
		switch {
		case errors.Is(err, validator.ErrEmailAlreadyUsed):
			return UserOutput{}, NewHTTPError(http.StatusConflict, "email already used")
		case errors.Is(err, validator.ErrInvalidInput):
			return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email or password")
		default:
			//重複チェックのDB障害。入力不正として握り潰さない
			return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(pwHash),
		Role:         model.RoleCustomer,
		IsActive:     true,
	}

	if err := u.users.Create(ctx, user); err != nil {
		//unique違反の取りこぼし
		return UserOutput{}, NewHTTPError(http.StatusConflict, "email already used")
	}

	return toUserOutput(user), nil
}

func (u *AuthUsecase) Login(ctx context.Context, in AuthLoginInput) (AuthLoginOutput, error) {
	if err := u.validator.ValidateLogin(ctx, in.Email, in.Password); err != nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email or password")
	}

	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil || user == nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return AuthLoginOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//last_login更新
	now := time.Now()
	user.LastLoginAt = &now
	_ = u.users.Update(ctx, user)

	accessToken, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthLoginOutput{
		User: toUserOutput(user),
		Token: TokenOutput{
			AccessToken: accessToken,
			ExpiresIn:   expiresIn,
		},
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID string) (UserOutput, error) {
	if userID == "" {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !user.IsActive {
		return UserOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	return toUserOutput(user), nil
}

// jwt発行
func (u *AuthUsecase) issueAccessToken(user *model.User) (string, int, error) {
	now := time.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}

	return signed, int(accessTokenTTL.Seconds()), nil
}
