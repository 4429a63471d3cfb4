package core

import "time"

// Session is the in-memory record of the currently authenticated user.
// There is at most one per process and it is never persisted.
type Session struct {
	ID           string    `json:"id"` // binds the browser's auth cookie to this session
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"` // as submitted on the login form
	DisplayName  string    `json:"display_name"`
	CompanyID    int64     `json:"company_id"`
	SessionToken string    `json:"-"` // backend session_id; informational only, the cookie jar carries the real one
	StartedAt    time.Time `json:"started_at"`
}

// HeaderName returns the name shown in the header: display name, then
// username, then "User".
func (s *Session) HeaderName() string {
	if s == nil {
		return ""
	}
	if s.DisplayName != "" {
		return s.DisplayName
	}
	if s.Username != "" {
		return s.Username
	}
	return "User"
}
