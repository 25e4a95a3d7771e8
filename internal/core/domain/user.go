package domain

import "time"

// Role is the access level of a staff user.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User is a staff member (admin or sales agent) who can sign in.
type User struct {
	UserID                 string     `json:"userId"`
	Username               string     `json:"username"`
	Email                  string     `json:"email"`
	Name                   string     `json:"name"`
	MobileNumber           string     `json:"mobileNumber"`
	Role                   Role       `json:"role"`
	PasswordHash           string     `json:"passwordHash,omitempty"`
	RefreshTokenHash       string     `json:"refreshTokenHash,omitempty"`
	RefreshTokenExpiryTime *time.Time `json:"refreshTokenExpiryTime,omitempty"`
	IsDeleted              bool       `json:"isDeleted"`
	AuditFields
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// GoogleUserInfo is the subset of the Google userinfo payload used for sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
