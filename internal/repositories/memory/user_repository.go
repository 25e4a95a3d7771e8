package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/hashicorp/go-memdb"
)

// UserRepository stores staff users in memdb.
type UserRepository struct {
	session
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func userDeleted(u domain.User) bool { return u.IsDeleted }

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var out *domain.User
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableUsers, "user", userID, userDeleted)
		return err
	})
	return out, err
}

// findLiveBy returns the first live user whose lowercase index value matches.
func findLiveBy(txn *memdb.Txn, index, value string) (*domain.User, error) {
	users, err := all(txn, tableUsers, index, func(u domain.User) bool { return !u.IsDeleted }, strings.ToLower(value))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.NotFoundf("user %s not found", value)
	}
	return &users[0], nil
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var out *domain.User
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLiveBy(txn, indexUsername, username)
		return err
	})
	return out, err
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, apperrors.NotFoundf("user with empty e-mail not found")
	}
	var out *domain.User
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLiveBy(txn, indexEmail, email)
		return err
	})
	return out, err
}

func (r *UserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	var out []domain.User
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableUsers, indexID, func(u domain.User) bool { return !u.IsDeleted })
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return page(out, limit, offset), nil
}

// SaveUser mirrors the case-insensitive unique index on usernames.
func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		if existing, err := findLiveBy(txn, indexUsername, user.Username); err == nil && existing.UserID != user.UserID {
			return apperrors.ErrDuplicate
		}
		return insert(txn, tableUsers, user)
	})
}

func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		current, err := findLive(txn, tableUsers, "user", user.UserID, userDeleted)
		if err != nil {
			return err
		}
		// Refresh tokens are owned by UpdateRefreshToken/ClearRefreshToken.
		user.RefreshTokenHash = current.RefreshTokenHash
		user.RefreshTokenExpiryTime = current.RefreshTokenExpiryTime
		return insert(txn, tableUsers, user)
	})
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		u, err := findLive(txn, tableUsers, "user", userID, userDeleted)
		if err != nil {
			return err
		}
		u.RefreshTokenHash = refreshTokenHash
		u.RefreshTokenExpiryTime = &expiresAt
		return insert(txn, tableUsers, *u)
	})
}

func (r *UserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		u, err := findLive(txn, tableUsers, "user", userID, userDeleted)
		if err != nil {
			return err
		}
		u.RefreshTokenHash = ""
		u.RefreshTokenExpiryTime = nil
		return insert(txn, tableUsers, *u)
	})
}

func (r *UserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return softDelete(txn, tableUsers, "user", userID, userDeleted, func(u *domain.User) {
			markAudit(&u.IsDeleted, u.Touch, deletedBy, deletedAt)
			u.RefreshTokenHash = ""
			u.RefreshTokenExpiryTime = nil
		})
	})
}
