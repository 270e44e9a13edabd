package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"storefront/internal/repository"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// emailが既に使用済み
	ErrEmailAlreadyUsed = errors.New("email already used")
)

type AuthValidator struct {
	users repository.UserRepository
}

func NewAuthValidator(users repository.UserRepository) *AuthValidator {
	return &AuthValidator{users: users}
}

// サインアップの入力を検証
func (v *AuthValidator) ValidateRegister(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return ErrInvalidInput
	}
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	//パスワード最低文字数
	if len(password) < 8 {
		return ErrInvalidInput
	}

	//email重複チェック（DBが必要）。
	//not-found以外のエラーは検証失敗ではなくDB障害なので、そのまま呼び出し側へ返す
	u, err := v.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if u != nil {
		return ErrEmailAlreadyUsed
	}

	return nil
}

// ログインの入力を検証
func (v *AuthValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return ErrInvalidInput
	}
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	return nil
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}
