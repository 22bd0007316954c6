package issuer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spec-kit/jwt-issuer/internal/domain"
	apperrors "github.com/spec-kit/jwt-issuer/pkg/util"
)

// JSONMediaType is the only accepted request content type. Parameters such
// as charset are allowed after it.
const JSONMediaType = "application/json"

// missingFieldMessages maps IssuanceRequest fields to their rejection text.
var missingFieldMessages = map[string]string{
	"AppID":    "missing appId",
	"Secret":   "missing secret",
	"UserID":   "missing userId",
	"UserName": "missing username",
}

// Validator decides whether an issuance request is well formed.
type Validator struct {
	validate *validator.Validate
	logger   *zap.Logger
}

// NewValidator constructs a validator that traces rejections at debug level.
func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{validate: validator.New(), logger: logger}
}

// Validate checks the declared content type, then the presence of the body,
// then each required field in declaration order. The first failure wins.
// A nil req means the body was missing or could not be decoded.
func (v *Validator) Validate(contentType string, req *domain.IssuanceRequest) error {
	if contentType == "" {
		v.logger.Debug("no Content-Type specified")
		return apperrors.NewUnsupportedMediaType("unsupported media type, no content type")
	}
	if !strings.HasPrefix(contentType, JSONMediaType) {
		v.logger.Debug("bad Content-Type specified", zap.String("content_type", contentType))
		return apperrors.NewUnsupportedMediaType(fmt.Sprintf("unsupported media type: %s", contentType))
	}

	if req == nil {
		v.logger.Debug("empty request body")
		return apperrors.NewBadRequest("")
	}

	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewInternalError(err)
	}

	field := fieldErrs[0].StructField()
	message, ok := missingFieldMessages[field]
	if !ok {
		message = fmt.Sprintf("invalid %s", field)
	}
	v.logger.Debug("rejected issuance request", zap.String("field", field), zap.String("reason", message))
	return apperrors.NewValidationError(message, map[string]any{"field": field})
}
