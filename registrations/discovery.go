package registrations

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Discover fills in missing provider endpoints from the issuer's OpenID
// Connect discovery document. Registrations without an issuer, or with both
// endpoints already set, are left untouched.
func Discover(ctx context.Context, reg *ClientRegistration) error {
	details := &reg.ProviderDetails
	if details.IssuerURI == "" {
		return nil
	}
	if details.AuthorizationURI != "" && details.TokenURI != "" {
		return nil
	}

	provider, err := oidc.NewProvider(ctx, details.IssuerURI)
	if err != nil {
		return fmt.Errorf("[registrations Discover] %s: failed to discover provider %s: %w", reg.RegistrationID, details.IssuerURI, err)
	}

	endpoint := provider.Endpoint()
	if details.AuthorizationURI == "" {
		details.AuthorizationURI = endpoint.AuthURL
	}
	if details.TokenURI == "" {
		details.TokenURI = endpoint.TokenURL
	}
	if len(reg.Scopes) == 0 {
		reg.Scopes = []string{oidc.ScopeOpenID}
	}
	return nil
}
