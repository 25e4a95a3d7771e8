package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/SscSPs/propease_crm/internal/models"
	"github.com/SscSPs/propease_crm/internal/utils/mapping"
)

// PgxUserRepository stores staff users.
type PgxUserRepository struct {
	BaseRepository
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, email, name, mobile_number, role, password_hash,
	refresh_token_hash, refresh_token_expiry_time, is_deleted,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` AND NOT is_deleted;`
	m, err := collectOne[models.User](ctx, r.db, query, arg)
	if err != nil {
		return nil, err
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	u, err := r.findOne(ctx, "user_id = $1", userID)
	if err != nil {
		return nil, wrapFind(err, "user", userID)
	}
	return u, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := r.findOne(ctx, "LOWER(username) = LOWER($1)", username)
	if err != nil {
		return nil, wrapFind(err, "user", username)
	}
	return u, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := r.findOne(ctx, "LOWER(email) = LOWER($1)", email)
	if err != nil {
		return nil, wrapFind(err, "user", email)
	}
	return u, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE NOT is_deleted ORDER BY name, user_id LIMIT $1 OFFSET $2;`
	ms, err := collectAll[models.User](ctx, r.db, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return mapping.ToDomainUserSlice(ms), nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, username, email, name, mobile_number, role, password_hash,
			is_deleted, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9, $10, $11);`
	_, err := r.db.Exec(ctx, query,
		m.UserID, m.Username, m.Email, m.Name, m.MobileNumber, m.Role, m.PasswordHash,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "user")
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET email = $2, name = $3, mobile_number = $4, role = $5, password_hash = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE user_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "user", query,
		m.UserID, m.Email, m.Name, m.MobileNumber, m.Role, m.PasswordHash, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	query := `UPDATE users SET refresh_token_hash = $2, refresh_token_expiry_time = $3 WHERE user_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "user", query, userID, refreshTokenHash, expiresAt)
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL WHERE user_id = $1;`
	return execOne(ctx, r.db, "user", query, userID)
}

func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE users
		SET is_deleted = TRUE, refresh_token_hash = NULL, refresh_token_expiry_time = NULL,
			last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "user", query, userID, deletedAt, deletedBy)
}

// wrapFind adds context to lookup failures while keeping ErrNotFound matchable.
func wrapFind(err error, entity string, key string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, entity, key)
	}
	return fmt.Errorf("failed to find %s %s: %w", entity, key, err)
}
