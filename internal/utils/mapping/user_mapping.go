package mapping

import (
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                 d.UserID,
		Username:               d.Username,
		Email:                  d.Email,
		Name:                   d.Name,
		MobileNumber:           d.MobileNumber,
		Role:                   string(d.Role),
		PasswordHash:           d.PasswordHash,
		RefreshTokenHash:       optionalString(d.RefreshTokenHash),
		RefreshTokenExpiryTime: d.RefreshTokenExpiryTime,
		IsDeleted:              d.IsDeleted,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                 m.UserID,
		Username:               m.Username,
		Email:                  m.Email,
		Name:                   m.Name,
		MobileNumber:           m.MobileNumber,
		Role:                   domain.Role(m.Role),
		PasswordHash:           m.PasswordHash,
		RefreshTokenHash:       derefString(m.RefreshTokenHash),
		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
		IsDeleted:              m.IsDeleted,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	return convertSlice(ms, ToDomainUser)
}
