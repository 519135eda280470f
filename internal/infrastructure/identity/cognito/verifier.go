package cognito

import (
	"context"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

const usernameClaim = "cognito:username"

// Verifier validates Cognito ID tokens against the pool's published JWKS.
type Verifier struct {
	keyfunc  jwt.Keyfunc
	issuer   string
	audience string
	methods  []string
}

// NewVerifier fetches the pool's JWKS and keeps it refreshed in the
// background for the lifetime of ctx.
func NewVerifier(ctx context.Context, region, userPoolID, clientID string) (*Verifier, error) {
	issuer := fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{issuer + "/.well-known/jwks.json"})
	if err != nil {
		return nil, fmt.Errorf("cognito: fetch jwks: %w", err)
	}
	return &Verifier{
		keyfunc:  jwks.Keyfunc,
		issuer:   issuer,
		audience: clientID,
		methods:  []string{jwt.SigningMethodRS256.Alg()},
	}, nil
}

// VerifyIDToken checks the token's signature, issuer, audience, expiry and
// token_use claim and returns the pool username it was issued for.
func (v *Verifier) VerifyIDToken(_ context.Context, token string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, v.keyfunc,
		jwt.WithValidMethods(v.methods),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", domain.ErrNotAuthorized
	}

	// Access tokens from the same pool verify fine but carry
	// token_use=access. Only ID tokens identify the caller here.
	if use, _ := claims["token_use"].(string); use != "id" {
		return "", domain.ErrNotAuthorized
	}
	username, _ := claims[usernameClaim].(string)
	if username == "" {
		return "", domain.ErrNotAuthorized
	}
	return username, nil
}
