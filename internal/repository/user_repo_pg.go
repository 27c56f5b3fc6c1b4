package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/littlelemon/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetOrCreateToken returns the user's stable token, storing candidate
	// only if the user has none yet.
	GetOrCreateToken(ctx context.Context, userID int64, candidate string) (string, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *PGUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE username=$1`, username)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) GetOrCreateToken(ctx context.Context, userID int64, candidate string) (string, error) {
	// The no-op DO UPDATE makes the existing row visible to RETURNING, so
	// repeated logins always see the same token.
	var token string
	err := r.db.QueryRow(ctx, `INSERT INTO auth_tokens (token, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = auth_tokens.user_id
		RETURNING token`, candidate, userID).Scan(&token)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (r *PGUserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT u.id, u.username, u.email, u.password_hash, u.created_at
		FROM auth_tokens t JOIN users u ON u.id = t.user_id
		WHERE t.token=$1`, token)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
