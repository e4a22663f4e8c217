package wahoo

import (
	"errors"
	"time"
)

// ErrExternalService marks any failure reported by the Wahoo cloud. The
// response is passed through opaquely; callers never interpret it beyond
// logging and retry-by-hand.
var ErrExternalService = errors.New("wahoo service error")

// Token is an OAuth2 credential pair with its expiry.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Valid reports whether the access token exists and has not expired as of
// now. A zero ExpiresAt means the expiry is unknown and the token is tried
// as-is.
func (t Token) Valid(now time.Time) bool {
	if t.AccessToken == "" {
		return false
	}
	if t.ExpiresAt.IsZero() {
		return true
	}
	return now.Before(t.ExpiresAt)
}

// tokenResponse is the /oauth/token response body.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// planResponse is the /v1/plans response body; only the id matters.
type planResponse struct {
	ID int `json:"id"`
}

// workoutResponse is the /v1/workouts response body; only the id matters.
type workoutResponse struct {
	ID int `json:"id"`
}
