package domain

import "errors"

const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrMissingToken = errors.New("token is missing")
var ErrInvalidToken = errors.New("token is invalid")

// User models an authenticated actor. The set of users is fixed at boot from
// the seed list; there is no registration endpoint.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Name         string `json:"name"`
	Specialty    string `json:"specialty,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
