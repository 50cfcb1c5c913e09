package types

import (
	"errors"
	"time"
)

type UserType string

const (
	UserTypeEmployee UserType = "employee"
	UserTypeAdmin    UserType = "admin"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	UserType  UserType  `db:"user_type"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Session is the authenticated identity handed to the bill components at
// construction. It replaces any ambient user lookup so two sessions can
// exist side by side.
type Session struct {
	Email    string
	UserType UserType
}

func (s Session) IsAdmin() bool {
	return s.UserType == UserTypeAdmin
}
