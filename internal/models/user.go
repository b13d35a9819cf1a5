package models

import "fmt"

// User is an account allowed to act on the catalog.
//
// The password is kept as given. There is no registration flow: the only row is the seeded one.
type User struct {
	username string
	password string
}

var _ Model[string] = (*User)(nil)

// NewUser creates a User.
func NewUser(username, password string) *User {
	return &User{username: username, password: password}
}

func (u *User) ID() string       { return u.username }
func (u *User) Username() string { return u.username }
func (u *User) Password() string { return u.password }

// Validate requires both a username and a password.
func (u *User) Validate() error {
	if u.username == "" {
		return fmt.Errorf("username is required")
	}
	if u.password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
