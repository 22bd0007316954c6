package domain

// IssuanceRequest carries everything needed to sign a token for a user on
// behalf of an application. Secret is the base64 encoded HMAC key.
type IssuanceRequest struct {
	AppID    string `validate:"required"`
	Secret   string `validate:"required"`
	UserID   string `validate:"required"`
	UserName string `validate:"required"`
}

// TokenPayload lists every claim an issued token carries. Nothing else is
// ever added: no issued-at, expiry or token id.
type TokenPayload struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Issuer  string `json:"iss"`
}

// PayloadFor derives the claims for req.
func PayloadFor(req IssuanceRequest) TokenPayload {
	return TokenPayload{
		Subject: req.UserID,
		Name:    req.UserName,
		Issuer:  req.AppID,
	}
}
