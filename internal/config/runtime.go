package config

import "time"

// IssuerResource is the path of the token issuance endpoint.
const IssuerResource = "/jwt/issuer"

// RuntimeInfo is the process metadata reported by the informational
// endpoint. It is built once at startup and never mutated.
type RuntimeInfo struct {
	Service     string
	Description string
	Version     string
	Creator     string
	Code        string
	StartedAt   time.Time
	Resources   []string
}

// NewRuntimeInfo snapshots the application metadata at the given start time.
func NewRuntimeInfo(app AppConfig, startedAt time.Time) RuntimeInfo {
	return RuntimeInfo{
		Service:     app.Name,
		Description: app.Description,
		Version:     app.Version,
		Creator:     app.Creator,
		Code:        app.CodeURL,
		StartedAt:   startedAt.UTC(),
		Resources:   []string{IssuerResource},
	}
}

// UpSince formats the start time the way clients expect it.
func (r RuntimeInfo) UpSince() string {
	return r.StartedAt.Format("2006-01-02T15:04:05.000Z07:00")
}
