package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// UserReader finds staff accounts. Lookups skip soft-deleted users and
// return apperrors.ErrNotFound when nothing matches.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter stores staff accounts. Username and e-mail are unique among
// live users; a clash is reported as apperrors.ErrDuplicate.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

// RefreshTokenStore keeps the single active refresh token of a user, stored
// as a hash.
type RefreshTokenStore interface {
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade is everything the user and auth services need.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	RefreshTokenStore
}
