package models

import (
	"time"
)

// User is an account in the users collection, used by the local identity
// provider when no hosted identity service is configured.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	Name         string    `json:"name" bson:"name"`
	Phone        string    `json:"phone,omitempty" bson:"phone"`
	Role         string    `json:"role" bson:"role"`
	Disabled     bool      `json:"disabled" bson:"disabled"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	IDToken   string `json:"idToken,omitempty"`
	ExpiresAt int64  `json:"expiresAt"`
	User      User   `json:"user"`
}
