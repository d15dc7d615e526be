package registrations

import (
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// CommonProvider holds the well known settings for a popular identity provider
// so a registration only needs a client id and secret.
type CommonProvider string

const (
	ProviderGoogle   CommonProvider = "google"
	ProviderGitHub   CommonProvider = "github"
	ProviderFacebook CommonProvider = "facebook"
	ProviderOkta     CommonProvider = "okta"
)

var commonProviderEndpoints = map[CommonProvider]oauth2.Endpoint{
	ProviderGoogle:   endpoints.Google,
	ProviderGitHub:   endpoints.GitHub,
	ProviderFacebook: endpoints.Facebook,
}

var commonProviderScopes = map[CommonProvider][]string{
	ProviderGoogle:   {"openid", "profile", "email"},
	ProviderGitHub:   {"read:user"},
	ProviderFacebook: {"public_profile", "email"},
	ProviderOkta:     {"openid", "profile", "email"},
}

var commonProviderNames = map[CommonProvider]string{
	ProviderGoogle:   "Google",
	ProviderGitHub:   "GitHub",
	ProviderFacebook: "Facebook",
	ProviderOkta:     "Okta",
}

// IsCommonProvider reports whether name is a known provider
func IsCommonProvider(name string) bool {
	_, ok := commonProviderNames[CommonProvider(name)]
	return ok
}

// Registration builds an authorization code registration for the provider.
// Okta is tenant specific, so issuerURI (e.g. "https://dev-123.okta.com") is
// required for it and ignored by the other providers.
func (p CommonProvider) Registration(registrationID, clientID, clientSecret, issuerURI string) *ClientRegistration {
	reg := &ClientRegistration{
		RegistrationID:             registrationID,
		ClientID:                   clientID,
		ClientSecret:               clientSecret,
		ClientAuthenticationMethod: ClientAuthenticationClientSecretBasic,
		AuthorizationGrantType:     GrantTypeAuthorizationCode,
		RedirectURITemplate:        DefaultRedirectURITemplate,
		Scopes:                     append([]string(nil), commonProviderScopes[p]...),
		ClientName:                 commonProviderNames[p],
	}
	if p == ProviderFacebook {
		reg.ClientAuthenticationMethod = ClientAuthenticationClientSecretPost
	}

	if endpoint, ok := commonProviderEndpoints[p]; ok {
		reg.ProviderDetails = ProviderDetails{
			AuthorizationURI: endpoint.AuthURL,
			TokenURI:         endpoint.TokenURL,
		}
	} else if p == ProviderOkta && issuerURI != "" {
		base := strings.TrimSuffix(issuerURI, "/")
		reg.ProviderDetails = ProviderDetails{
			AuthorizationURI: base + "/oauth2/v1/authorize",
			TokenURI:         base + "/oauth2/v1/token",
			IssuerURI:        base,
		}
	}
	if clientSecret == "" {
		reg.ClientAuthenticationMethod = ClientAuthenticationNone
	}
	return reg
}
