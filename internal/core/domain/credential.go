package domain

import (
	"errors"
	"time"
)

// Response messages returned to API callers.
const (
	MsgLoginSuccessful        = "Login Successful"
	MsgRegistrationSuccessful = "Registration Successful"
	MsgInvalidCredentials     = "Invalid credentials"
	MsgEmailRequired          = "Email is required"
	MsgPasswordRequired       = "Password is required"
	MsgUserExists             = "User already exists"
	MsgRegistrationFailed     = "Failed to register user"
)

var (
	ErrEmailRequired      = errors.New(MsgEmailRequired)
	ErrPasswordRequired   = errors.New(MsgPasswordRequired)
	ErrInvalidCredentials = errors.New(MsgInvalidCredentials)
	ErrUserExists         = errors.New(MsgUserExists)
	ErrRegistrationFailed = errors.New(MsgRegistrationFailed)
	ErrUserNotFound       = errors.New("user not found")
)

// Credential is the persisted email/password pair. Email is the unique key.
// Password is stored and compared as plaintext.
type Credential struct {
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResult is the body returned by the login and register endpoints.
type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Succeeded builds a successful LoginResult.
func Succeeded(msg string) *LoginResult {
	return &LoginResult{Success: true, Message: msg}
}
