package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// AuthClient wraps the Firebase Admin auth client. Token issuance and
// verification are delegated entirely to the identity provider.
type AuthClient struct {
	client *auth.Client
}

func NewAuthClient(client *auth.Client) *AuthClient {
	return &AuthClient{
		client: client,
	}
}

// VerifyToken verifies a bearer ID token and returns the subject uid and
// the email claim carried by the token.
func (f *AuthClient) VerifyToken(ctx context.Context, token string) (string, string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", "", err
	}

	email, _ := result.Claims["email"].(string)
	return result.UID, email, nil
}

// GenerateToken mints a custom token for uid. Development tooling only; the
// SPA obtains real ID tokens from the provider directly.
func (f *AuthClient) GenerateToken(ctx context.Context, uid string) (string, error) {
	token, err := f.client.CustomToken(ctx, uid)
	if err != nil {
		return "", err
	}

	return token, nil
}

// GetUserDisplay fetches display info from the identity provider record.
func (f *AuthClient) GetUserDisplay(ctx context.Context, uid string) (name string, photoURL string, err error) {
	record, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return "", "", err
	}

	return record.DisplayName, record.PhotoURL, nil
}
