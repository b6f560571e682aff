// Package models defines the data transfer types shared by the mock backend
// and the session store. JSON tags match the blob and cookie layout the
// browser prototype used, so persisted data stays readable by both.
package models

import "time"

// User is an account record. ID is an opaque identifier assigned at
// registration; UserID is the unique human-chosen handle used for login.
type User struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Salutation string `json:"salutation,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// LoginRequest carries login form input.
type LoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// RegisterRequest carries registration form input.
type RegisterRequest struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AuthData is the payload of a successful login or registration: the account,
// its bearer token, and the token's nominal expiry. ExpiresAt is informational
// only; nothing in the backend enforces it.
type AuthData struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenValidation is the payload of a successful token check.
type TokenValidation struct {
	User User `json:"user"`
}

// LogoutData acknowledges a logout call.
type LogoutData struct {
	Message string `json:"message"`
}

// UpdateProfileRequest is a partial profile update. Nil fields are left
// untouched; non-nil fields overwrite the stored value, including with "".
type UpdateProfileRequest struct {
	Salutation *string `json:"salutation,omitempty"`
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Email      *string `json:"email,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
}

// UpdateProfileResponse returns the full record after a profile update.
type UpdateProfileResponse struct {
	User User `json:"user"`
}

// AvatarData is the payload of an avatar upload.
type AvatarData struct {
	AvatarURL string `json:"avatarUrl"`
}

// UserStats carries the fake activity counters the profile screen displays.
type UserStats struct {
	PostsCount     int `json:"postsCount"`
	FollowersCount int `json:"followersCount"`
	FollowingCount int `json:"followingCount"`
}

// APIResponse is the uniform success envelope every backend operation
// returns. Failures are returned as errors instead, carrying *common.AuthError.
type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// OK wraps data in a successful APIResponse.
func OK[T any](data T, message string) *APIResponse[T] {
	return &APIResponse[T]{Data: data, Message: message, Success: true}
}
