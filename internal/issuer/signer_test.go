package issuer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/spec-kit/jwt-issuer/pkg/util"
)

type brokenMethod struct{}

func (brokenMethod) Verify(string, []byte, interface{}) error { return errors.New("verify unsupported") }
func (brokenMethod) Sign(string, interface{}) ([]byte, error) {
	return nil, errors.New("hmac: key rejected")
}
func (brokenMethod) Alg() string { return "HS256" }

func decodeSegment(t *testing.T, seg string) string {
	t.Helper()
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	require.NoError(t, err)
	return string(raw)
}

func TestSignProducesCompactToken(t *testing.T) {
	token, err := NewSigner(nil).Sign(validRequest())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	assert.JSONEq(t, `{"alg":"HS256","typ":"JWT"}`, decodeSegment(t, parts[0]))
	assert.Equal(t, `{"sub":"u1","name":"Alice","iss":"app1"}`, decodeSegment(t, parts[1]))
}

func TestSignIncludesOnlyListedClaims(t *testing.T) {
	token, err := NewSigner(nil).Sign(validRequest())
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal([]byte(decodeSegment(t, strings.Split(token, ".")[1])), &claims))

	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"sub", "name", "iss"}, keys)
	for _, forbidden := range []string{"iat", "exp", "nbf", "jti", "aud"} {
		assert.NotContains(t, claims, forbidden)
	}
}

func TestSignIsDeterministic(t *testing.T) {
	signer := NewSigner(nil)
	first, err := signer.Sign(validRequest())
	require.NoError(t, err)
	second, err := signer.Sign(validRequest())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSignedTokenVerifiesWithRawKey(t *testing.T) {
	token, err := NewSigner(nil).Sign(validRequest())
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(token, &jwt.MapClaims{}, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := *parsed.Claims.(*jwt.MapClaims)
	assert.Equal(t, jwt.MapClaims{"sub": "u1", "name": "Alice", "iss": "app1"}, claims)

	_, err = jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestSignWithUndecodableSecretStillSigns(t *testing.T) {
	req := validRequest()
	req.Secret = "!!*&^%$ not base64 at all"

	token, err := NewSigner(nil).Sign(req)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)
}

func TestSignAcceptsZeroLengthKey(t *testing.T) {
	req := validRequest()
	req.Secret = "!!!"
	require.Empty(t, DecodeSecret(req.Secret))

	token, err := NewSigner(nil).Sign(req)
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	mac := hmac.New(sha256.New, nil)
	mac.Write([]byte(parts[0] + "." + parts[1]))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), parts[2])
}

func TestSignFailureIsOpaque(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	signer := NewSigner(zap.New(core), WithSigningMethod(brokenMethod{}))

	token, err := signer.Sign(validRequest())
	require.Error(t, err)
	assert.Empty(t, token)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, apperrors.CodeSigningFailed, domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, "failed to generate a JWT issuer token", domainErr.PublicMessage())
	assert.NotContains(t, domainErr.PublicMessage(), "key rejected")

	entries := logs.FilterMessage("failed to generate a JWT issuer token").All()
	require.Len(t, entries, 1)
	partial, ok := entries[0].ContextMap()["partial_token"].(string)
	require.True(t, ok)
	assert.Len(t, partial, 50)
	assert.Contains(t, entries[0].ContextMap()["error"], "key rejected")
}
