package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced in the error envelope.
const (
	CodeBadRequest           = "BAD_REQUEST"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodeSigningFailed        = "SIGNING_FAILED"
	CodeNotFound             = "NOT_FOUND"
	CodeInternal             = "INTERNAL_ERROR"
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
		return fmt.Sprintf("%s: %v", e.PublicMessage(), e.Err)
	}
	return e.PublicMessage()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// PublicMessage returns the message shown to clients, falling back to the
// standard text of the status code.
func (e *DomainError) PublicMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.HTTPStatus)
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewBadRequest reports a malformed request. An empty message renders as the
// default status text.
func NewBadRequest(message string) *DomainError {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest, nil)
}

func NewValidationError(message string, details map[string]any) *DomainError {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewUnsupportedMediaType(message string) *DomainError {
	return NewDomainError(CodeUnsupportedMediaType, message, http.StatusUnsupportedMediaType, nil)
}

// NewSigningError hides err behind a generic message.
func NewSigningError(message string, err error) *DomainError {
	return &DomainError{
		Code:       CodeSigningFailed,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewNotFound(resource string) *DomainError {
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewInternalError(err error) *DomainError {
	return &DomainError{
		Code:       CodeInternal,
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
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	return NewInternalError(err)
}

func fromFiberError(err *fiber.Error) *DomainError {
	code := CodeInternal
	switch err.Code {
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusUnsupportedMediaType:
		code = CodeUnsupportedMediaType
	default:
		if err.Code >= 400 && err.Code < 500 {
			code = CodeBadRequest
		}
	}
	message := err.Message
	if message == http.StatusText(err.Code) {
		message = ""
	}
	return NewDomainError(code, message, err.Code, nil)
}
