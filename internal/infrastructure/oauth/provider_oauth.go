package oauth

import (
	"context"
	"net/http"

	"tripwatch-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ProviderOAuth handles OAuth2 client-credentials authentication against a
// flight-status provider's token endpoint. Tokens are refreshed transparently
// by the returned client.
type ProviderOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewProviderOAuth creates a new provider OAuth handler
func NewProviderOAuth(clientID, clientSecret, tokenURL string, logger logger.Logger) *ProviderOAuth {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	return &ProviderOAuth{
		config: config,
		logger: logger,
	}
}

// GetTokenSource returns a reusable token source for the provider API
func (o *ProviderOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	return o.config.TokenSource(ctx)
}

// Client returns an HTTP client that injects the bearer token into every
// request. Per-request timeouts come from the request context, not the
// client, so the chain's bounded timeout stays in control.
func (o *ProviderOAuth) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, o.GetTokenSource(ctx))
}

// Token fetches a token eagerly; used by the credential check utility.
func (o *ProviderOAuth) Token(ctx context.Context) (*oauth2.Token, error) {
	token, err := o.config.Token(ctx)
	if err != nil {
		return nil, err
	}
	o.logger.Info("Access token obtained", "expiry", token.Expiry)
	return token, nil
}
