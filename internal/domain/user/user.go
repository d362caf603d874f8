// Package user holds the profile entity for verified medical professionals.
// Authentication and session storage live in the hosted auth service; this
// entity only mirrors the profile row kept alongside it.
package user

import (
	"strings"
	"time"

	appErrors "medlink-backend/pkg/errors"
)

// User is a professional's profile.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Specialty   string    `json:"specialty,omitempty"`
	Credentials string    `json:"credentials,omitempty"`
	Verified    bool      `json:"verified"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProfile builds the profile row created on first sign-in. The ID comes
// from the auth provider, not from this module.
func NewProfile(id, email, displayName string) (*User, error) {
	if id == "" {
		return nil, appErrors.NewValidation("user id is required")
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = email
	}
	return &User{
		ID:          id,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
