// Package auth turns an Azure identity credential into bearer tokens and authenticated HTTP clients.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/awantoch/foundryflow/config"
	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/utils"
	"golang.org/x/oauth2"
)

// NewCredential selects the credential flow: the Azure Developer CLI when configured, otherwise
// the default chain (environment, workload identity, managed identity, Azure CLI, ...).
func NewCredential(cfg config.AuthConfig) (azcore.TokenCredential, error) {
	if cfg.UseAzureDevCLI {
		utils.Debug("Using Azure Developer CLI credential (tenant %q)", cfg.TenantID)
		cred, err := azidentity.NewAzureDeveloperCLICredential(&azidentity.AzureDeveloperCLICredentialOptions{
			TenantID: cfg.TenantID,
		})
		if err != nil {
			return nil, fmt.Errorf("azure developer cli credential: %w", err)
		}
		return cred, nil
	}
	utils.Debug("Using default Azure credential chain (tenant %q)", cfg.TenantID)
	cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		TenantID: cfg.TenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("default azure credential: %w", err)
	}
	return cred, nil
}

// Provider hands out tokens and authenticated clients for one credential.
// Construct once per run; it holds no connections that need closing.
type Provider struct {
	cred azcore.TokenCredential
	base http.RoundTripper
}

// NewProvider wraps cred. base is the transport requests ride on; nil means http.DefaultTransport.
func NewProvider(cred azcore.TokenCredential, base http.RoundTripper) *Provider {
	return &Provider{cred: cred, base: base}
}

// Token returns a raw bearer token for scope.
func (p *Provider) Token(ctx context.Context, scope string) (string, error) {
	tok, err := p.TokenSource(ctx, scope).Token()
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// TokenSource returns a caching oauth2.TokenSource for scope. ctx is used for every refresh.
func (p *Provider) TokenSource(ctx context.Context, scope string) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &credentialSource{ctx: ctx, cred: p.cred, scopes: []string{scope}})
}

// Client returns an http.Client that sets "Authorization: Bearer <token>" for scope.
func (p *Provider) Client(ctx context.Context, scope string) *http.Client {
	return &http.Client{
		Timeout: constants.DefaultHTTPTimeout,
		Transport: &oauth2.Transport{
			Source: p.TokenSource(ctx, scope),
			Base:   p.base,
		},
	}
}

type credentialSource struct {
	ctx    context.Context
	cred   azcore.TokenCredential
	scopes []string
}

func (s *credentialSource) Token() (*oauth2.Token, error) {
	at, err := s.cred.GetToken(s.ctx, policy.TokenRequestOptions{Scopes: s.scopes})
	if err != nil {
		return nil, fmt.Errorf("acquire token for %v: %w", s.scopes, err)
	}
	utils.Debug("Acquired token for %v (expires %s)", s.scopes, at.ExpiresOn.Format("15:04:05"))
	return &oauth2.Token{
		AccessToken: at.Token,
		TokenType:   "Bearer",
		Expiry:      at.ExpiresOn,
	}, nil
}
