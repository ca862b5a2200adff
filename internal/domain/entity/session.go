// Package entity contains the core business objects of the client.
package entity

import "time"

// Session is the access/refresh token pair representing an authenticated
// user. It is the only durably persisted record in the client; the backend
// issues it on login, signup and OAuth code exchange.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Valid reports whether the record can authenticate requests. A record
// without an access token is treated as absent (fail closed).
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != ""
}

// SessionInfo carries diagnostic claims extracted from the stored access
// token. It is display-only; expiry here never drives a proactive refresh.
type SessionInfo struct {
	Email     string    `json:"email,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}
