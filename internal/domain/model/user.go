package model

import "time"

// Role controls which views and mutations a user may reach.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDoctor   Role = "doctor"
	RoleEmployee Role = "employee"
)

// CanManageOrders reports whether the role may change order status and notes.
func (r Role) CanManageOrders() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User represents a registered account: the fixed admin, referring doctors,
// and lab employees.
type User struct {
	ID           int64
	Role         Role
	Name         string
	Username     string
	Email        string
	PasswordHash string
	TeamID       int64
	Blocked      bool
	CreatedAt    time.Time
}
