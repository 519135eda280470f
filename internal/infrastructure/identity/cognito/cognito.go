// Package cognito implements the identity-provider port against an AWS
// Cognito user pool. All credential storage, verification and token issuance
// happens at the pool; this package only shuttles requests and maps errors.
package cognito

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

const emailAttribute = "email"

// Client wraps the Cognito identity-provider API for a single user pool.
type Client struct {
	api      cognitoAPI
	clientID string
}

// cognitoAPI is the subset of the Cognito SDK client the wrapper uses.
// A seam for tests.
type cognitoAPI interface {
	SignUp(ctx context.Context, in *cip.SignUpInput, opts ...func(*cip.Options)) (*cip.SignUpOutput, error)
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, opts ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	UpdateUserAttributes(ctx context.Context, in *cip.UpdateUserAttributesInput, opts ...func(*cip.Options)) (*cip.UpdateUserAttributesOutput, error)
	ChangePassword(ctx context.Context, in *cip.ChangePasswordInput, opts ...func(*cip.Options)) (*cip.ChangePasswordOutput, error)
	DeleteUser(ctx context.Context, in *cip.DeleteUserInput, opts ...func(*cip.Options)) (*cip.DeleteUserOutput, error)
}

// NewClient builds a Cognito client for the pool's app client in the given
// region.
func NewClient(ctx context.Context, region, clientID string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("cognito: load aws config: %w", err)
	}
	return &Client{api: cip.NewFromConfig(cfg), clientID: clientID}, nil
}

// SignUp creates the pool account. The local user id is the pool username;
// the email travels as an attribute only.
func (c *Client) SignUp(ctx context.Context, username, password, email string) error {
	_, err := c.api.SignUp(ctx, &cip.SignUpInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(username),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String(emailAttribute), Value: aws.String(email)},
		},
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

// Authenticate performs the password flow and returns the minted session.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*domain.Session, error) {
	out, err := c.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId: aws.String(c.clientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, mapError(err)
	}
	return sessionFromResult(out.AuthenticationResult)
}

// RefreshSession exchanges the refresh token for a new bearer token. The
// refresh token itself is not rotated by the pool.
func (c *Client) RefreshSession(ctx context.Context, username, refreshToken string) (*domain.Session, error) {
	out, err := c.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId: aws.String(c.clientID),
		AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": refreshToken,
		},
	})
	if err != nil {
		return nil, mapError(err)
	}
	session, err := sessionFromResult(out.AuthenticationResult)
	if err != nil {
		return nil, err
	}
	session.RefreshToken = refreshToken
	return session, nil
}

func (c *Client) UpdateEmail(ctx context.Context, accessToken, email string) error {
	_, err := c.api.UpdateUserAttributes(ctx, &cip.UpdateUserAttributesInput{
		AccessToken: aws.String(accessToken),
		UserAttributes: []types.AttributeType{
			{Name: aws.String(emailAttribute), Value: aws.String(email)},
		},
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (c *Client) ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error {
	_, err := c.api.ChangePassword(ctx, &cip.ChangePasswordInput{
		AccessToken:      aws.String(accessToken),
		PreviousPassword: aws.String(currentPassword),
		ProposedPassword: aws.String(newPassword),
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (c *Client) DeleteUser(ctx context.Context, accessToken string) error {
	_, err := c.api.DeleteUser(ctx, &cip.DeleteUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

func sessionFromResult(result *types.AuthenticationResultType) (*domain.Session, error) {
	if result == nil || result.IdToken == nil {
		return nil, errors.New("cognito: authentication result missing tokens")
	}
	return &domain.Session{
		Token:        aws.ToString(result.IdToken),
		AccessToken:  aws.ToString(result.AccessToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		ExpiresIn:    time.Duration(result.ExpiresIn) * time.Second,
	}, nil
}

// mapError reclassifies pool failures into domain errors. Unknown-user and
// wrong-password both collapse into the generic invalid-credentials error so
// responses never reveal which field was wrong.
func mapError(err error) error {
	var (
		notAuthorized   *types.NotAuthorizedException
		userNotFound    *types.UserNotFoundException
		usernameExists  *types.UsernameExistsException
		invalidPassword *types.InvalidPasswordException
	)
	switch {
	case errors.As(err, &notAuthorized), errors.As(err, &userNotFound):
		return domain.ErrInvalidCredentials
	case errors.As(err, &usernameExists):
		return domain.ErrEmailExists
	case errors.As(err, &invalidPassword):
		fieldErrs := domain.FieldErrors{}
		fieldErrs.Add("password", "Password does not satisfy the pool's password policy.")
		return fieldErrs
	default:
		return fmt.Errorf("cognito: %w", err)
	}
}
