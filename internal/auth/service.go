// Package auth は登録・ログイン・ログアウトの認証ユースケースを提供します。
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/auth-forge/internal/account"
	"github.com/yourusername/auth-forge/internal/apperr"
	"github.com/yourusername/auth-forge/internal/logger"
	"github.com/yourusername/auth-forge/internal/password"
)

// Service は認証ユースケースを実装します。
// 各操作は単一の直線的なリクエスト/レスポンスで、複数ステップの状態は持ちません。
type Service struct {
	store  account.Store
	logger *logger.Logger
}

// NewService は Service を作成します。
func NewService(store account.Store, logger *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Register は新規アカウントを作成します。
// 既存チェックの後に作成するため同時登録では両方がチェックを通過し得ますが、
// ストアの一意性制約が最終的に1件だけを成功させます。
func (s *Service) Register(ctx context.Context, name, email, plain string) (account.Account, error) {
	if name == "" || email == "" || plain == "" {
		return account.Account{}, apperr.Validation("All fields are required")
	}

	_, err := s.store.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Info("register rejected: email already exists", "email", email)
		return account.Account{}, apperr.Conflict("Email already exists")
	}
	if !errors.Is(err, account.ErrNotFound) {
		return account.Account{}, fmt.Errorf("failed to check existing account: %w", err)
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return account.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.store.Create(ctx, account.Account{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: hashed,
	})
	if err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			return account.Account{}, apperr.Conflict("Email already exists")
		}
		return account.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account registered", "account_id", created.ID, "email", created.Email)
	return created, nil
}

// Login は資格情報を検証してアカウントを返します。
// 未知のメールとパスワード誤りはステータスコードで区別されます（仕様どおり）。
func (s *Service) Login(ctx context.Context, email, plain string) (account.Account, error) {
	if email == "" || plain == "" {
		return account.Account{}, apperr.Validation("All fields are required")
	}

	a, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, account.ErrNotFound) {
		return account.Account{}, apperr.NotFound("User not found")
	}
	if err != nil {
		return account.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	if !password.Verify(plain, a.Password) {
		s.logger.Info("login rejected: password mismatch", "email", email)
		return account.Account{}, apperr.Validation("Incorrect password")
	}

	s.logger.Info("account logged in", "account_id", a.ID)
	return a, nil
}
