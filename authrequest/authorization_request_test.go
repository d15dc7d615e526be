package authrequest_test

import (
	"net/url"
	"testing"

	"github.com/jrsteele09/go-oauth-client/authrequest"
	"github.com/stretchr/testify/require"
)

const (
	testAuthorizationURI = "https://provider.example.com/oauth2/authorize"
	testClientID         = "client-1"
	testRedirectURI      = "https://example.com/app/login/oauth2/code/github"
	testState            = "random-state-value"
)

func TestBuilder_Build(t *testing.T) {
	t.Run("authorization code", func(t *testing.T) {
		req, err := authrequest.AuthorizationCode().
			ClientID(testClientID).
			AuthorizationURI(testAuthorizationURI).
			RedirectURI(testRedirectURI).
			Scopes("openid", "email").
			State(testState).
			Attributes(map[string]any{authrequest.ParamRegistrationID: "github"}).
			Build()
		require.NoError(t, err)

		require.Equal(t, authrequest.AuthorizationCodeGrant, req.GrantType())
		require.Equal(t, authrequest.CodeResponseType, req.ResponseType())
		require.Equal(t, testClientID, req.ClientID())
		require.Equal(t, testAuthorizationURI, req.AuthorizationURI())
		require.Equal(t, testRedirectURI, req.RedirectURI())
		require.Equal(t, []string{"openid", "email"}, req.Scopes())
		require.Equal(t, testState, req.State())
		require.Equal(t, "github", req.RegistrationID())
		require.Empty(t, req.CodeVerifier())
		require.Empty(t, req.AdditionalParameters())
	})

	t.Run("implicit", func(t *testing.T) {
		req, err := authrequest.Implicit().ClientID(testClientID).AuthorizationURI(testAuthorizationURI).Build()
		require.NoError(t, err)
		require.Equal(t, authrequest.ImplicitGrant, req.GrantType())
		require.Equal(t, authrequest.TokenResponseType, req.ResponseType())
		require.NotNil(t, req.Attributes())
	})

	t.Run("missing authorization uri", func(t *testing.T) {
		_, err := authrequest.AuthorizationCode().ClientID(testClientID).Build()
		require.ErrorIs(t, err, authrequest.ErrInvalidAuthorizationRequest)
	})

	t.Run("missing client id", func(t *testing.T) {
		_, err := authrequest.AuthorizationCode().AuthorizationURI(testAuthorizationURI).Build()
		require.ErrorIs(t, err, authrequest.ErrInvalidAuthorizationRequest)
	})
}

func TestAuthorizationRequest_Immutable(t *testing.T) {
	scopes := []string{"openid"}
	attrs := map[string]any{authrequest.ParamCodeVerifier: "verifier"}
	params := map[string]any{authrequest.ParamCodeChallenge: "challenge"}

	req, err := authrequest.AuthorizationCode().
		ClientID(testClientID).
		AuthorizationURI(testAuthorizationURI).
		Scopes(scopes...).
		Attributes(attrs).
		AdditionalParameters(params).
		Build()
	require.NoError(t, err)

	// Mutating the inputs does not leak into the request
	scopes[0] = "changed"
	attrs[authrequest.ParamCodeVerifier] = "changed"
	params[authrequest.ParamCodeChallenge] = "changed"

	// Mutating the returned copies does not leak either
	req.Scopes()[0] = "changed"
	req.Attributes()[authrequest.ParamCodeVerifier] = "changed"
	req.AdditionalParameters()[authrequest.ParamCodeChallenge] = "changed"

	require.Equal(t, []string{"openid"}, req.Scopes())
	require.Equal(t, "verifier", req.CodeVerifier())
	require.Equal(t, "challenge", req.AdditionalParameters()[authrequest.ParamCodeChallenge])
}

func TestAuthorizationRequest_AuthorizationRequestURI(t *testing.T) {
	t.Run("authorization code with pkce", func(t *testing.T) {
		req, err := authrequest.AuthorizationCode().
			ClientID(testClientID).
			AuthorizationURI(testAuthorizationURI).
			RedirectURI(testRedirectURI).
			Scopes("openid", "profile").
			State(testState).
			AdditionalParameters(map[string]any{
				authrequest.ParamCodeChallenge:       "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM",
				authrequest.ParamCodeChallengeMethod: string(authrequest.CodeMethodTypeS256),
			}).
			Build()
		require.NoError(t, err)

		u, err := url.Parse(req.AuthorizationRequestURI())
		require.NoError(t, err)
		require.Equal(t, "provider.example.com", u.Host)
		require.Equal(t, "/oauth2/authorize", u.Path)

		q := u.Query()
		require.Equal(t, "code", q.Get("response_type"))
		require.Equal(t, testClientID, q.Get("client_id"))
		require.Equal(t, testRedirectURI, q.Get("redirect_uri"))
		require.Equal(t, "openid profile", q.Get("scope"))
		require.Equal(t, testState, q.Get("state"))
		require.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", q.Get("code_challenge"))
		require.Equal(t, "S256", q.Get("code_challenge_method"))
		require.False(t, q.Has("code_verifier"))
	})

	t.Run("implicit keeps existing query", func(t *testing.T) {
		req, err := authrequest.Implicit().
			ClientID(testClientID).
			AuthorizationURI(testAuthorizationURI + "?prompt=consent").
			State(testState).
			Build()
		require.NoError(t, err)

		u, err := url.Parse(req.AuthorizationRequestURI())
		require.NoError(t, err)
		q := u.Query()
		require.Equal(t, "token", q.Get("response_type"))
		require.Equal(t, "consent", q.Get("prompt"))
		require.False(t, q.Has("scope"))
		require.False(t, q.Has("redirect_uri"))
	})
}
