package registrations

import (
	"errors"
	"fmt"
	"strings"
)

// GrantType is the OAuth 2.0 authorization grant a registration uses.
type GrantType string

const (
	GrantTypeAuthorizationCode GrantType = "authorization_code"
	GrantTypeImplicit          GrantType = "implicit"
	GrantTypeRefreshToken      GrantType = "refresh_token"
	GrantTypeClientCredentials GrantType = "client_credentials"
	GrantTypePassword          GrantType = "password"
)

// ClientAuthenticationMethod is how the client authenticates at the token endpoint.
type ClientAuthenticationMethod string

const (
	// ClientAuthenticationNone is used by public clients (SPAs, native apps) that cannot keep a secret
	ClientAuthenticationNone              ClientAuthenticationMethod = "none"
	ClientAuthenticationClientSecretBasic ClientAuthenticationMethod = "client_secret_basic"
	ClientAuthenticationClientSecretPost  ClientAuthenticationMethod = "client_secret_post"
	ClientAuthenticationClientSecretJWT   ClientAuthenticationMethod = "client_secret_jwt"
	ClientAuthenticationPrivateKeyJWT     ClientAuthenticationMethod = "private_key_jwt"
)

// DefaultRedirectURITemplate is the login callback used by the common providers
const DefaultRedirectURITemplate = "{baseUrl}/{action}/oauth2/code/{registrationId}"

var (
	ErrRegistrationNotFound = errors.New("client registration not found")
	ErrInvalidRegistration  = errors.New("invalid client registration")
)

type ProviderDetails struct {
	AuthorizationURI string `json:"authorizationUri"`
	TokenURI         string `json:"tokenUri,omitempty"`
	// IssuerURI, when set, allows the other endpoints to be discovered
	IssuerURI string `json:"issuerUri,omitempty"`
}

// ClientRegistration is a client's registration with an OAuth 2.0 or OpenID Connect provider.
type ClientRegistration struct {
	RegistrationID             string                     `json:"registrationId"`
	ClientID                   string                     `json:"clientId"`
	ClientSecret               string                     `json:"clientSecret,omitempty"`
	ClientAuthenticationMethod ClientAuthenticationMethod `json:"clientAuthenticationMethod"`
	AuthorizationGrantType     GrantType                  `json:"authorizationGrantType"`
	RedirectURITemplate        string                     `json:"redirectUriTemplate"`
	Scopes                     []string                   `json:"scopes"`
	ProviderDetails            ProviderDetails            `json:"providerDetails"`
	ClientName                 string                     `json:"clientName,omitempty"`
}

// IsPublic returns true if the client does not authenticate with a secret or key
func (c *ClientRegistration) IsPublic() bool {
	return c.ClientAuthenticationMethod == ClientAuthenticationNone
}

// Normalize fills defaults and removes duplicate scopes while keeping their order
func (c *ClientRegistration) Normalize() {
	if c.ClientAuthenticationMethod == "" {
		if c.ClientSecret == "" {
			c.ClientAuthenticationMethod = ClientAuthenticationNone
		} else {
			c.ClientAuthenticationMethod = ClientAuthenticationClientSecretBasic
		}
	}
	if c.ClientName == "" {
		c.ClientName = c.RegistrationID
	}
	c.Scopes = uniqueScopes(c.Scopes)
}

// Validate checks the registration has everything needed to build an authorization request
func (c *ClientRegistration) Validate() error {
	switch {
	case strings.TrimSpace(c.RegistrationID) == "":
		return fmt.Errorf("%w: registrationId cannot be empty", ErrInvalidRegistration)
	case strings.TrimSpace(c.ClientID) == "":
		return fmt.Errorf("%w (%s): clientId cannot be empty", ErrInvalidRegistration, c.RegistrationID)
	case c.AuthorizationGrantType == "":
		return fmt.Errorf("%w (%s): authorizationGrantType cannot be empty", ErrInvalidRegistration, c.RegistrationID)
	}

	switch c.AuthorizationGrantType {
	case GrantTypeAuthorizationCode, GrantTypeImplicit:
		if strings.TrimSpace(c.RedirectURITemplate) == "" {
			return fmt.Errorf("%w (%s): redirectUriTemplate cannot be empty", ErrInvalidRegistration, c.RegistrationID)
		}
		if strings.TrimSpace(c.ProviderDetails.AuthorizationURI) == "" {
			return fmt.Errorf("%w (%s): authorizationUri cannot be empty", ErrInvalidRegistration, c.RegistrationID)
		}
	}
	return nil
}

// Copy returns a deep copy so callers cannot mutate repository state
func (c *ClientRegistration) Copy() *ClientRegistration {
	cp := *c
	cp.Scopes = append([]string(nil), c.Scopes...)
	return &cp
}

func uniqueScopes(scopes []string) []string {
	seen := make(map[string]struct{}, len(scopes))
	result := make([]string, 0, len(scopes))
	for _, s := range scopes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	return result
}
