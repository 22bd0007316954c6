package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestPublicMessageDefaultsToStatusText(t *testing.T) {
	assert.Equal(t, "Bad Request", NewBadRequest("").PublicMessage())
	assert.Equal(t, "missing secret", NewValidationError("missing secret", nil).PublicMessage())
}

func TestSigningErrorHidesCause(t *testing.T) {
	cause := errors.New("hmac: key too short")
	err := NewSigningError("failed to generate a JWT issuer token", cause)

	assert.Equal(t, "failed to generate a JWT issuer token", err.PublicMessage())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	wrapped := fmt.Errorf("issue: %w", NewUnsupportedMediaType("unsupported media type: text/plain"))
	assert.Equal(t, CodeUnsupportedMediaType, ToDomainError(wrapped).Code)

	notFound := ToDomainError(fiber.NewError(http.StatusNotFound, "Cannot GET /nope"))
	assert.Equal(t, CodeNotFound, notFound.Code)
	assert.Equal(t, "Cannot GET /nope", notFound.PublicMessage())

	tooLarge := ToDomainError(fiber.ErrRequestEntityTooLarge)
	assert.Equal(t, CodeBadRequest, tooLarge.Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, tooLarge.HTTPStatus)
	assert.Equal(t, "Request Entity Too Large", tooLarge.PublicMessage())

	internal := ToDomainError(errors.New("boom"))
	assert.Equal(t, CodeInternal, internal.Code)
	assert.Equal(t, "internal server error", internal.PublicMessage())
}
