package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/webmovie/backend/internal/auth/domain"
	"github.com/webmovie/backend/internal/common/db"
)

var (
	ErrUserNotFound       = pgx.ErrNoRows
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	FindByRefreshTokenHash(ctx context.Context, hash string) (domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// UpdateRefreshSession writes both session columns in one statement so
	// hash and expiry stay set or cleared together. Passing nils clears the
	// session.
	UpdateRefreshSession(ctx context.Context, id domain.ID, hash *string, expiry *time.Time) error
}

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, display_name, avatar_url,
	 refresh_token_hash, refresh_token_expiry, created_at, updated_at`

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash, display_name, avatar_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(user.ID),
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.AvatarURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailAlreadyExists
		}
		return db.HandleExecError(err, "create user", start)
	}
	db.MeasureQueryDuration("create user", start)
	return nil
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row, "find user by email", start)
}

func (r *PgUserRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		string(id),
	)
	return scanUser(row, "find user by id", start)
}

func (r *PgUserRepository) FindByRefreshTokenHash(ctx context.Context, hash string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE refresh_token_hash = $1`,
		hash,
	)
	return scanUser(row, "find user by refresh token hash", start)
}

func (r *PgUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, db.HandleQueryError(err, nil, "check user email exists", start)
	}
	db.MeasureQueryDuration("check user email exists", start)
	return exists, nil
}

func (r *PgUserRepository) UpdateRefreshSession(ctx context.Context, id domain.ID, hash *string, expiry *time.Time) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`UPDATE users
		 SET refresh_token_hash = $2, refresh_token_expiry = $3, updated_at = NOW()
		 WHERE id = $1`,
		string(id),
		hash,
		expiry,
	)
	return db.HandleExecError(err, "update user refresh session", start)
}

func scanUser(row pgx.Row, operation string, start time.Time) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.AvatarURL,
		&user.RefreshTokenHash,
		&user.RefreshTokenExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err := db.HandleQueryError(err, ErrUserNotFound, operation, start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
