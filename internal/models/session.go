package models

// AuthState is the process-wide authentication state. It is hydrated from the
// persisted session on startup, set on login, and cleared on logout.
type AuthState struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}
