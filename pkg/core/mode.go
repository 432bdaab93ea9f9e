package core

// Mode selects which persistence variant backs a session.
type Mode string

const (
	ModeGuest         Mode = "guest"
	ModeAuthenticated Mode = "authenticated"
)

// ModeFor derives the session mode from the bearer token.
func ModeFor(token string) Mode {
	if token == "" {
		return ModeGuest
	}
	return ModeAuthenticated
}
