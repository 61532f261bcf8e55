// Package auth signs admins in against an identity provider and keeps the
// resulting session. Provider failures come back as *Error values whose
// Message is safe to show to the person signing in.
package auth

import (
	"context"
	"errors"
	"time"
)

const (
	CodeUserNotFound      = "auth/user-not-found"
	CodeWrongPassword     = "auth/wrong-password"
	CodeInvalidEmail      = "auth/invalid-email"
	CodeUserDisabled      = "auth/user-disabled"
	CodeTooManyRequests   = "auth/too-many-requests"
	CodeNetworkFailed     = "auth/network-request-failed"
	CodeInvalidCredential = "auth/invalid-credential"
	DefaultErrorMessage   = "An error occurred during authentication."
)

var messages = map[string]string{
	CodeUserNotFound:      "No user found with this email address.",
	CodeWrongPassword:     "Incorrect password.",
	CodeInvalidEmail:      "Invalid email address.",
	CodeUserDisabled:      "This user account has been disabled.",
	CodeTooManyRequests:   "Too many failed login attempts. Please try again later.",
	CodeNetworkFailed:     "Network error. Please check your connection.",
	CodeInvalidCredential: "Invalid email or password.",
}

var ErrNotAuthenticated = errors.New("not signed in")

// ErrorMessage returns the user-facing text for a provider error code.
func ErrorMessage(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return DefaultErrorMessage
}

// Error is a failed sign-in as shown to the user.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// ProviderError is what an IdentityProvider returns when it can name the
// reason a sign-in failed.
type ProviderError struct {
	Code string
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *ProviderError) Unwrap() error { return e.Err }

type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Role        string `json:"role"`
}

type Session struct {
	User         User
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, session *Session) error
}

// SignIn runs a provider sign-in and turns any failure into an *Error.
// Failures without a provider code get the generic message.
func SignIn(ctx context.Context, provider IdentityProvider, email, password string) (*Session, error) {
	session, err := provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, toError(err)
	}
	return session, nil
}

func toError(err error) *Error {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return &Error{Code: pe.Code, Message: ErrorMessage(pe.Code), Err: err}
	}
	return &Error{Message: DefaultErrorMessage, Err: err}
}
