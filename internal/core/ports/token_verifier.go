package ports

import "context"

// TokenVerifier checks a bearer token's signature and claims and returns the
// user identifier it was issued for.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (string, error)
}
