package models

import "time"

// User is a row of the users table.
type User struct {
	UserID                 string     `db:"user_id"`
	Username               string     `db:"username"`
	Email                  string     `db:"email"`
	Name                   string     `db:"name"`
	MobileNumber           string     `db:"mobile_number"`
	Role                   string     `db:"role"`
	PasswordHash           string     `db:"password_hash"`
	RefreshTokenHash       *string    `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime *time.Time `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token
	IsDeleted              bool       `db:"is_deleted"`
	AuditFields
}
