// Package authrequest holds the OAuth 2.0 authorization request a client
// sends to an authorization server, and its serialization to a redirect URL.
package authrequest

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"golang.org/x/oauth2"
)

var ErrInvalidAuthorizationRequest = errors.New("invalid authorization request")

// AuthorizationRequest is an immutable OAuth 2.0 Authorization Request for the
// authorization code or implicit grant. Use AuthorizationCode or Implicit to build one.
type AuthorizationRequest struct {
	grantType            GrantType
	responseType         ResponseType
	clientID             string
	authorizationURI     string
	redirectURI          string
	scopes               []string
	state                string
	attributes           map[string]any
	additionalParameters map[string]any
}

func (a *AuthorizationRequest) GrantType() GrantType       { return a.grantType }
func (a *AuthorizationRequest) ResponseType() ResponseType { return a.responseType }
func (a *AuthorizationRequest) ClientID() string           { return a.clientID }
func (a *AuthorizationRequest) AuthorizationURI() string   { return a.authorizationURI }
func (a *AuthorizationRequest) RedirectURI() string        { return a.redirectURI }
func (a *AuthorizationRequest) State() string              { return a.state }

// Scopes returns a copy of the requested scopes
func (a *AuthorizationRequest) Scopes() []string {
	return slices.Clone(a.scopes)
}

// Attributes returns a copy of the attributes kept by the client for the
// callback. They are never sent to the authorization server.
func (a *AuthorizationRequest) Attributes() map[string]any {
	return maps.Clone(a.attributes)
}

// Attribute returns a single attribute
func (a *AuthorizationRequest) Attribute(name string) (any, bool) {
	v, ok := a.attributes[name]
	return v, ok
}

// AdditionalParameters returns a copy of the extra parameters sent to the authorization server
func (a *AuthorizationRequest) AdditionalParameters() map[string]any {
	return maps.Clone(a.additionalParameters)
}

// RegistrationID is the client registration the request was resolved for
func (a *AuthorizationRequest) RegistrationID() string {
	id, _ := a.attributes[ParamRegistrationID].(string)
	return id
}

// CodeVerifier returns the PKCE code verifier, or "" when PKCE is not used
func (a *AuthorizationRequest) CodeVerifier() string {
	v, _ := a.attributes[ParamCodeVerifier].(string)
	return v
}

// AuthorizationRequestURI returns the URL the user agent is redirected to:
// the authorization URI with response_type, client_id, redirect_uri, scope,
// state and every additional parameter in its query.
func (a *AuthorizationRequest) AuthorizationRequestURI() string {
	cfg := oauth2.Config{
		ClientID:    a.clientID,
		Endpoint:    oauth2.Endpoint{AuthURL: a.authorizationURI},
		RedirectURL: a.redirectURI,
		Scopes:      a.scopes,
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam(ParamResponseType, string(a.responseType)),
	}
	keys := slices.Collect(maps.Keys(a.additionalParameters))
	sort.Strings(keys)
	for _, k := range keys {
		opts = append(opts, oauth2.SetAuthURLParam(k, fmt.Sprint(a.additionalParameters[k])))
	}
	return cfg.AuthCodeURL(a.state, opts...)
}

// Builder builds an AuthorizationRequest
type Builder struct {
	req AuthorizationRequest
}

// AuthorizationCode starts a request for the authorization code grant
func AuthorizationCode() *Builder {
	return &Builder{req: AuthorizationRequest{grantType: AuthorizationCodeGrant, responseType: CodeResponseType}}
}

// Implicit starts a request for the implicit grant
func Implicit() *Builder {
	return &Builder{req: AuthorizationRequest{grantType: ImplicitGrant, responseType: TokenResponseType}}
}

func (b *Builder) ClientID(clientID string) *Builder {
	b.req.clientID = clientID
	return b
}

func (b *Builder) AuthorizationURI(uri string) *Builder {
	b.req.authorizationURI = uri
	return b
}

func (b *Builder) RedirectURI(uri string) *Builder {
	b.req.redirectURI = uri
	return b
}

func (b *Builder) Scopes(scopes ...string) *Builder {
	b.req.scopes = slices.Clone(scopes)
	return b
}

func (b *Builder) State(state string) *Builder {
	b.req.state = state
	return b
}

func (b *Builder) Attributes(attributes map[string]any) *Builder {
	b.req.attributes = maps.Clone(attributes)
	return b
}

func (b *Builder) AdditionalParameters(params map[string]any) *Builder {
	b.req.additionalParameters = maps.Clone(params)
	return b
}

// Build validates the request and returns it. The builder must not be reused.
func (b *Builder) Build() (*AuthorizationRequest, error) {
	if strings.TrimSpace(b.req.authorizationURI) == "" {
		return nil, fmt.Errorf("%w: authorizationUri cannot be empty", ErrInvalidAuthorizationRequest)
	}
	if strings.TrimSpace(b.req.clientID) == "" {
		return nil, fmt.Errorf("%w: clientId cannot be empty", ErrInvalidAuthorizationRequest)
	}

	req := b.req
	req.scopes = slices.Clone(b.req.scopes)
	if req.attributes == nil {
		req.attributes = map[string]any{}
	}
	if req.additionalParameters == nil {
		req.additionalParameters = map[string]any{}
	}
	return &req, nil
}
