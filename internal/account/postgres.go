package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation は PostgreSQL の一意性制約違反の SQLSTATE です。
const uniqueViolation = "23505"

var _ Store = (*PostgresStore)(nil)

// PostgresStore は PostgreSQL を使用した Store の実装です。
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore は PostgresStore を作成します。
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetByEmail はメールアドレスでアカウントを検索します。
func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (Account, error) {
	var a Account
	query := `SELECT id, name, email, password, created_at, updated_at
			  FROM accounts WHERE email = $1`

	err := s.db.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Name, &a.Email, &a.Password, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return a, nil
}

// GetByID はIDでアカウントを検索します。
func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	var a Account
	query := `SELECT id, name, email, password, created_at, updated_at
			  FROM accounts WHERE id = $1`

	err := s.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Email, &a.Password, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return a, nil
}

// Create はアカウントを永続化します。
// メールアドレスの一意性は unique index が最終防衛線として保証します。
// 同時登録の競合でも成功するのは1件のみで、残りは ErrEmailTaken になります。
func (s *PostgresStore) Create(ctx context.Context, account Account) (Account, error) {
	query := `INSERT INTO accounts (id, name, email, password)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, name, email, password, created_at, updated_at`

	var saved Account
	err := s.db.QueryRow(ctx, query,
		account.ID, account.Name, account.Email, account.Password,
	).Scan(
		&saved.ID, &saved.Name, &saved.Email, &saved.Password,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Account{}, ErrEmailTaken
		}
		return Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
