package domain

import "time"

// RefreshTokenTTL matches the user pool's refresh token validity. The cookie
// carrying the refresh token expires together with the token itself.
const RefreshTokenTTL = 30 * 24 * time.Hour

// Session is the credential set minted by the identity provider. The bearer
// token is short-lived and held only in client memory; the refresh token is
// long-lived and travels exclusively in an HTTP-only cookie.
type Session struct {
	Token        string
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}
