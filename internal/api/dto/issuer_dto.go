package dto

import "github.com/spec-kit/jwt-issuer/internal/domain"

// IssueTokenRequest is the JSON body of POST /jwt/issuer.
type IssueTokenRequest struct {
	AppID    string `json:"appid"`
	Secret   string `json:"secret"`
	UserID   string `json:"userid"`
	UserName string `json:"username"`
}

// ToDomain maps the wire shape onto the issuance request.
func (r IssueTokenRequest) ToDomain() domain.IssuanceRequest {
	return domain.IssuanceRequest{
		AppID:    r.AppID,
		Secret:   r.Secret,
		UserID:   r.UserID,
		UserName: r.UserName,
	}
}

// IssueTokenResponse is returned inside the success envelope.
type IssueTokenResponse struct {
	Token       string `json:"token"`
	Description string `json:"description"`
}

// InfoResponse describes the running service.
type InfoResponse struct {
	Service     string   `json:"service"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	UpSince     string   `json:"up-since"`
	Creator     string   `json:"creator"`
	Code        string   `json:"code"`
	Resources   []string `json:"resources"`
}
