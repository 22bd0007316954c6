package service

import (
	"bytes"
	"context"
	"errors"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/spec-kit/jwt-issuer/internal/api/dto"
	"github.com/spec-kit/jwt-issuer/internal/config"
	"github.com/spec-kit/jwt-issuer/internal/domain"
	"github.com/spec-kit/jwt-issuer/internal/events"
	"github.com/spec-kit/jwt-issuer/internal/issuer"
	apperrors "github.com/spec-kit/jwt-issuer/pkg/util"
)

// RequestValidator decides whether a request may be signed.
type RequestValidator interface {
	Validate(contentType string, req *domain.IssuanceRequest) error
}

// TokenSigner mints a signed token for a validated request.
type TokenSigner interface {
	Sign(req domain.IssuanceRequest) (string, error)
}

// IssuerService runs the validate-then-sign pipeline. It keeps no state
// between calls and is safe for concurrent use.
type IssuerService struct {
	validator   RequestValidator
	signer      TokenSigner
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	description string
}

// IssuerDependencies encapsulates collaborators of the issuer service.
// Nil fields fall back to the default implementations.
type IssuerDependencies struct {
	Validator  RequestValidator
	Signer     TokenSigner
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewIssuerService builds the service.
func NewIssuerService(cfg config.IssuerConfig, deps IssuerDependencies) *IssuerService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &IssuerService{
		validator:   deps.Validator,
		signer:      deps.Signer,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
		description: cfg.TokenDescription,
	}
	if svc.validator == nil {
		svc.validator = issuer.NewValidator(logger)
	}
	if svc.signer == nil {
		svc.signer = issuer.NewSigner(logger)
	}
	if svc.dispatcher == nil {
		svc.dispatcher = events.NewInMemoryDispatcher()
	}
	return svc
}

// Issue validates the raw request and signs a token for it. Every failure is
// a *util.DomainError: UNSUPPORTED_MEDIA_TYPE, BAD_REQUEST and
// VALIDATION_FAILED come from validation, SIGNING_FAILED from the signer.
func (s *IssuerService) Issue(ctx context.Context, contentType string, body []byte) (*dto.IssueTokenResponse, error) {
	wire := decodeBody(body)

	var req *domain.IssuanceRequest
	if wire != nil {
		r := wire.ToDomain()
		req = &r
	}

	if err := s.validator.Validate(contentType, req); err != nil {
		event := events.NewEvent(events.EventIssuanceRejected, "", "")
		if req != nil {
			event.AppID = req.AppID
		}
		s.publish(ctx, withError(event, err))
		return nil, err
	}

	token, err := s.signer.Sign(*req)
	if err != nil {
		event := events.NewEvent(events.EventSigningFailed, req.AppID, req.UserID)
		s.publish(ctx, withError(event, err))
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventTokenIssued, req.AppID, req.UserID))
	return &dto.IssueTokenResponse{Token: token, Description: s.description}, nil
}

func (s *IssuerService) publish(ctx context.Context, event events.Event) {
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("issuance event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}

// decodeBody returns nil when the body is empty, null or not a JSON object
// with string fields. Keys are matched exactly; "APPID" is not "appid".
func decodeBody(body []byte) *dto.IssueTokenRequest {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil
	}

	wire := &dto.IssueTokenRequest{}
	for key, dst := range map[string]*string{
		"appid":    &wire.AppID,
		"secret":   &wire.Secret,
		"userid":   &wire.UserID,
		"username": &wire.UserName,
	} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil
		}
	}
	return wire
}

func withError(event events.Event, err error) events.Event {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		event.Code = domainErr.Code
		event.Reason = domainErr.PublicMessage()
	}
	return event
}
