package issuer

import (
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/jwt-issuer/internal/domain"
	apperrors "github.com/spec-kit/jwt-issuer/pkg/util"
)

const (
	signingFailedMessage = "failed to generate a JWT issuer token"
	logPreviewLength     = 50
)

// Signer builds compact HS256 tokens keyed by the caller's secret.
type Signer struct {
	method jwt.SigningMethod
	logger *zap.Logger
}

// SignerOption customizes a Signer.
type SignerOption func(*Signer)

// WithSigningMethod replaces the HS256 primitive.
func WithSigningMethod(method jwt.SigningMethod) SignerOption {
	return func(s *Signer) {
		s.method = method
	}
}

// NewSigner builds a new signer.
func NewSigner(logger *zap.Logger, opts ...SignerOption) *Signer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Signer{method: jwt.SigningMethodHS256, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Claims is the signed payload. It implements jwt.Claims without exposing
// any registered time claim, so none can end up in a token.
type Claims domain.TokenPayload

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) { return nil, nil }
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error)       { return nil, nil }
func (c Claims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (c Claims) GetIssuer() (string, error)                   { return c.Issuer, nil }
func (c Claims) GetSubject() (string, error)                  { return c.Subject, nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }

// Sign decodes the secret and signs the payload derived from req. Identical
// requests always yield identical tokens. Failures come back as a
// SIGNING_FAILED domain error whose message carries no internal detail.
func (s *Signer) Sign(req domain.IssuanceRequest) (string, error) {
	key := DecodeSecret(req.Secret)
	token := jwt.NewWithClaims(s.method, Claims(domain.PayloadFor(req)))

	signingInput, err := token.SigningString()
	if err != nil {
		return "", s.fail(err, "")
	}

	sig, err := token.Method.Sign(signingInput, key)
	if err != nil {
		return "", s.fail(err, signingInput)
	}

	signed := signingInput + "." + token.EncodeSegment(sig)
	s.logger.Debug("successfully built issuer JWT token", zap.String("token_preview", preview(signed)))
	return signed, nil
}

func (s *Signer) fail(err error, partial string) error {
	fields := []zap.Field{zap.Error(err)}
	if partial != "" {
		fields = append(fields, zap.String("partial_token", preview(partial)))
	}
	s.logger.Error(signingFailedMessage, fields...)
	return apperrors.NewSigningError(signingFailedMessage, err)
}

func preview(token string) string {
	if len(token) <= logPreviewLength {
		return token
	}
	return token[:logPreviewLength]
}
