package domain

import "time"

// Role defines the access level of a user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

// IsValid returns true for a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee || r == RoleClient
}

// IsStaff returns true for roles that manage the salon
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User represents an account in the system
type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        *string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
