package domain

import "time"

// User represents an authenticated account within the platform. Every user
// owns exactly one Company profile created at registration time.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// Company is the business profile attached 1:1 to a User.
type Company struct {
	ID          int64
	UserID      int64
	OwnerName   string
	CompanyName string
	Address     string
	PhoneNumber string
}
