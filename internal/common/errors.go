// Package common defines shared constants, error codes, and the API error
// type used across the mock backend and the session store. Callers should
// use errors.As to extract *AuthError and errors.Is for sentinel values.
package common

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Storage-level errors.
	ErrorNotFound = errors.New("not found")

	// Generic internal flow control.
	ErrorInternal = errors.New("internal error")
)

// API error codes. The string values are part of the wire format stored in
// ErrorDetails payloads and rendered to the UI layer.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserIDExists       = "USER_ID_EXISTS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
)

// errorMessages maps each error code to its user-facing message.
var errorMessages = map[string]string{
	CodeInvalidCredentials: "Invalid credentials",
	CodeUserIDExists:       "User ID already exists",
	CodeEmailExists:        "Email already exists",
	CodeInvalidToken:       "Invalid token",
	CodeUserNotFound:       "User not found",
}

// ErrorDetails carries supplementary error context. Timestamp records when
// the error was produced, in RFC 3339 form.
type ErrorDetails struct {
	Timestamp string `json:"timestamp"`
}

// AuthError is the failure shape every backend operation surfaces:
// a user-facing message, a machine-readable code, and details.
type AuthError struct {
	Message string       `json:"message"`
	Code    string       `json:"code"`
	Details ErrorDetails `json:"details"`
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// nowFn is a test seam for timestamp generation.
var nowFn = time.Now

// NewAuthError builds an *AuthError for a known code, stamping the current
// time into the details. Unknown codes fall back to the code itself as the
// message so a miswired call site is still visible to the user.
func NewAuthError(code string) *AuthError {
	msg, ok := errorMessages[code]
	if !ok {
		msg = code
	}
	return &AuthError{
		Message: msg,
		Code:    code,
		Details: ErrorDetails{Timestamp: nowFn().UTC().Format(time.RFC3339)},
	}
}

// IsCode reports whether err is an *AuthError carrying the given code.
func IsCode(err error, code string) bool {
	var ae *AuthError
	return errors.As(err, &ae) && ae.Code == code
}
