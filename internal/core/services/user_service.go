package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the staff user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...ServiceOption) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBaseService(options...),
		userRepo:    userRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 {
		return nil, apperrors.Validationf("username must be at least 3 characters")
	}
	if len(req.Password) < utils.MinPasswordLength {
		return nil, apperrors.Validationf("password must be at least %d characters", utils.MinPasswordLength)
	}
	role := domain.Role(strings.ToUpper(req.Role))
	if !role.IsValid() {
		return nil, apperrors.Validationf("unknown role %q", req.Role)
	}

	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" {
		if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
			return nil, fmt.Errorf("%w: e-mail %s is already in use", apperrors.ErrDuplicate, email)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check e-mail: %w", err)
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		MobileNumber: strings.TrimSpace(req.MobileNumber),
		Role:         role,
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields(creatorUserID, s.now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// UpdateUser applies the non-nil fields of req. Nothing is written when no
// field actually changes.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil && strings.TrimSpace(*req.Name) != user.Name {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validationf("name cannot be empty")
		}
		user.Name = name
		changed = true
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			if email != "" {
				existing, err := s.userRepo.FindUserByEmail(ctx, email)
				if err == nil && existing.UserID != user.UserID {
					return nil, fmt.Errorf("%w: e-mail %s is already in use", apperrors.ErrDuplicate, email)
				} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("failed to check e-mail: %w", err)
				}
			}
			user.Email = email
			changed = true
		}
	}
	if req.MobileNumber != nil && strings.TrimSpace(*req.MobileNumber) != user.MobileNumber {
		user.MobileNumber = strings.TrimSpace(*req.MobileNumber)
		changed = true
	}
	if req.Role != nil {
		role := domain.Role(strings.ToUpper(*req.Role))
		if !role.IsValid() {
			return nil, apperrors.Validationf("unknown role %q", *req.Role)
		}
		if role != user.Role {
			user.Role = role
			changed = true
		}
	}
	if req.Password != nil {
		if len(*req.Password) < utils.MinPasswordLength {
			return nil, apperrors.Validationf("password must be at least %d characters", utils.MinPasswordLength)
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
		changed = true
	}
	if !changed {
		return user, nil
	}

	user.Touch(requestingUserID, s.now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID == requestingUserID {
		return apperrors.Validationf("you cannot delete your own account")
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, s.now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID), slog.String("deleted_by", requestingUserID))
	return nil
}

// AuthenticateUser never reveals whether the username or the password was wrong.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !utils.PasswordMatches(user.PasswordHash, password) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
