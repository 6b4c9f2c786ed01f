package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrDuplicateAccount is returned by Register when the email is taken
var ErrDuplicateAccount = errors.New("an account with this email already exists")

// AuthError covers invalid credentials and expired or invalid tokens
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// ValidationError covers missing or malformed fields, detected either
// locally before a request is issued or by the backend
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NotFoundError covers mutations against ids that no longer exist
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "resource not found"
	}
	return e.Message
}

// NetworkError wraps transport failures and unexpected backend statuses
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IntegrationError covers failures of the external social-media sync
type IntegrationError struct {
	Message string
}

func (e *IntegrationError) Error() string {
	if e.Message == "" {
		return "integration failed"
	}
	return e.Message
}

// envelope mirrors the backend response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *envelopeError  `json:"error"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// errorFromStatus maps a backend rejection to the client error taxonomy
func errorFromStatus(op string, status int, env *envelope) error {
	message := ""
	if env != nil && env.Error != nil {
		message = env.Error.Message
		if env.Error.Details != "" {
			message = fmt.Sprintf("%s (%s)", message, env.Error.Details)
		}
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{Message: message}
	case status == http.StatusNotFound:
		return &NotFoundError{Message: message}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		return &ValidationError{Message: message}
	case status == http.StatusBadGateway:
		return &IntegrationError{Message: message}
	default:
		if message == "" {
			message = http.StatusText(status)
		}
		return &NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d: %s", status, message)}
	}
}
