// Package account はアカウントのモデルと永続化を提供します。
package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Account は登録済みユーザーの永続化レコードです。
// Password には常に bcrypt ハッシュが入り、クライアントへは返却しません。
type Account struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	// ErrNotFound は条件に一致するアカウントが存在しないことを示します。
	ErrNotFound = errors.New("account not found")
	// ErrEmailTaken はメールアドレスの一意性制約違反を示します。
	ErrEmailTaken = errors.New("email already taken")
)

// Store はアカウントの永続化操作です。
// 永続化状態に触れるのはこのインターフェースの実装のみです。
type Store interface {
	// GetByEmail はメールアドレスでアカウントを検索します。
	// 見つからない場合は ErrNotFound を返します。
	GetByEmail(ctx context.Context, email string) (Account, error)
	// GetByID はIDでアカウントを検索します。
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	// Create はアカウントを永続化します。
	// メールアドレスの重複は ErrEmailTaken になります。
	Create(ctx context.Context, account Account) (Account, error)
}
