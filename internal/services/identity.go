package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Claims are the identity assertions carried by a verified token.
type Claims struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// TokenVerifier checks a bearer token issued by an identity provider.
// Implementations wrap ErrInvalidToken for every rejection.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier verifies Firebase ID tokens with the Admin SDK.
type FirebaseVerifier struct {
	client idTokenVerifier
}

func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return claimsFromFirebase(decoded), nil
}

func claimsFromFirebase(t *auth.Token) *Claims {
	c := &Claims{UID: t.UID}
	c.Email, _ = t.Claims["email"].(string)
	c.Name, _ = t.Claims["name"].(string)
	c.Picture, _ = t.Claims["picture"].(string)
	return c
}
