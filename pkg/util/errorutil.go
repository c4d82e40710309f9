package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors. Every error in this system is
// an expected user-input condition, surfaced synchronously to the caller.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewEmailNotFound signals an email with no matching directory record.
func NewEmailNotFound(email string) error {
	return NewDomainError("NOT_FOUND", "E-mail não encontrado na base de beneficiários.", http.StatusNotFound, map[string]any{"email": email})
}

// NewWrongPassword signals a failed credential check.
func NewWrongPassword() error {
	return NewDomainError("WRONG_PASSWORD", "Senha incorreta.", http.StatusUnauthorized, nil)
}

// NewPasswordTooShort signals a new password below the minimum length.
func NewPasswordTooShort(min int) error {
	return NewDomainError("PASSWORD_TOO_SHORT", fmt.Sprintf("A senha deve ter pelo menos %d caracteres.", min), http.StatusBadRequest, nil)
}

// NewPasswordMismatch signals differing password and confirmation entries.
func NewPasswordMismatch() error {
	return NewDomainError("PASSWORD_MISMATCH", "As senhas não coincidem.", http.StatusBadRequest, nil)
}

// NewIncompleteForm signals a registration with blank required fields.
func NewIncompleteForm(details map[string]any) error {
	return NewDomainError("INCOMPLETE_FORM", "Por favor, preencha todos os campos.", http.StatusBadRequest, details)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
