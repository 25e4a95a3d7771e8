package services

import (
	"context"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/dto"
)

// StaffDirectorySvc looks up staff accounts. Deleted accounts are never returned.
type StaffDirectorySvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// StaffAdminSvc manages staff accounts. Callers are expected to be admins;
// actorUserID is recorded in the audit fields.
type StaffAdminSvc interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)
	// DeleteUser soft-deletes an account. Admins cannot delete themselves.
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error
}

// StaffCredentialSvc verifies username and password sign-in.
type StaffCredentialSvc interface {
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade is the full staff account service.
type UserSvcFacade interface {
	StaffDirectorySvc
	StaffAdminSvc
	StaffCredentialSvc
}
