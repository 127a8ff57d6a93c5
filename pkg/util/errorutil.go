package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
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

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewNotAuthorized reports a caller missing the required role.
func NewNotAuthorized(message string) error {
	return NewDomainError("NOT_AUTHORIZED", message, http.StatusForbidden, nil)
}

// NewMalformedTopic reports a channel whose topic does not parse as ticket
// metadata. Such channels are treated as not being ticket channels at all.
func NewMalformedTopic(channelID string) error {
	return NewDomainError("MALFORMED_TOPIC", "channel is not a valid ticket channel", http.StatusUnprocessableEntity, map[string]any{
		"channel_id": channelID,
	})
}

// NewAlreadyClaimed reports a claim attempt on a claimed ticket.
func NewAlreadyClaimed(claimantID string) error {
	return NewDomainError("ALREADY_CLAIMED", "ticket is already claimed", http.StatusConflict, map[string]any{
		"claimed_by": claimantID,
	})
}

// NewNotClaimant reports an unclaim attempt by someone other than the
// recorded claimant.
func NewNotClaimant() error {
	return NewDomainError("NOT_CLAIMANT", "only the claimant can unclaim this ticket", http.StatusForbidden, nil)
}

// NewNoOp reports an operation that would change nothing, such as a rename
// to the current name.
func NewNoOp(message string) error {
	return NewDomainError("NO_OP", message, http.StatusBadRequest, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
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

// HasCode reports whether err is a DomainError carrying the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Code == code
}
