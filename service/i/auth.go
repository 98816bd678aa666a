package i

import "time"

// Authenticator exchanges operator credentials for access tokens.
type Authenticator interface {
	SignIn(username, password string) (string, error)
	TokenTTL() time.Duration
}
