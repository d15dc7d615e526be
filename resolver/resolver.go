// Package resolver resolves an OAuth 2.0 authorization request from an
// incoming HTTP request. The client registration id is taken from the request
// path (by default /oauth2/authorization/{registrationId}) or supplied by the
// caller, and the request carries the authorization endpoint, the expanded
// redirect uri, the scopes, a fresh state and, for public clients using the
// authorization code grant, PKCE parameters.
package resolver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-oauth-client/authrequest"
	apperrors "github.com/jrsteele09/go-oauth-client/internal/errors"
	"github.com/jrsteele09/go-oauth-client/internal/keygen"
	"github.com/jrsteele09/go-oauth-client/internal/pathmatch"
	"github.com/jrsteele09/go-oauth-client/registrations"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultAuthorizationRequestBaseURI is the base of the default path template
	DefaultAuthorizationRequestBaseURI = "/oauth2/authorization"

	actionParam = "action"
	// DefaultLoginAction is used when the registration id comes from the request path
	DefaultLoginAction = "login"
	// DefaultAuthorizeAction is used when the caller supplies the registration id
	DefaultAuthorizeAction = "authorize"
)

// Resolver builds authorization requests. It is immutable once created and
// safe for concurrent use.
type Resolver struct {
	repo                  registrations.Repo
	matcher               *pathmatch.Template
	contextPath           string
	stateGenerator        keygen.StringKeyGenerator
	codeVerifierGenerator keygen.StringKeyGenerator
	codeChallenge         CodeChallengeFunc
}

type Option func(*Resolver)

// WithContextPath sets the path prefix the application is mounted under. It
// is stripped before path matching and is part of {baseUrl}.
func WithContextPath(contextPath string) Option {
	return func(r *Resolver) {
		r.contextPath = strings.TrimSuffix(contextPath, "/")
	}
}

func WithStateGenerator(g keygen.StringKeyGenerator) Option {
	return func(r *Resolver) {
		r.stateGenerator = g
	}
}

func WithCodeVerifierGenerator(g keygen.StringKeyGenerator) Option {
	return func(r *Resolver) {
		r.codeVerifierGenerator = g
	}
}

func WithCodeChallengeFunc(f CodeChallengeFunc) Option {
	return func(r *Resolver) {
		r.codeChallenge = f
	}
}

// New creates a Resolver matching authorizationRequestBaseURI + "/{registrationId}"
func New(repo registrations.Repo, authorizationRequestBaseURI string, opts ...Option) (*Resolver, error) {
	if repo == nil {
		return nil, errors.New("[resolver New] registrations repo cannot be nil")
	}
	if strings.TrimSpace(authorizationRequestBaseURI) == "" {
		return nil, errors.New("[resolver New] authorizationRequestBaseURI cannot be empty")
	}

	matcher, err := pathmatch.Parse(strings.TrimSuffix(authorizationRequestBaseURI, "/") + "/{" + varRegistrationID + "}")
	if err != nil {
		return nil, fmt.Errorf("[resolver New] %w", err)
	}

	r := &Resolver{
		repo:                  repo,
		matcher:               matcher,
		stateGenerator:        keygen.NewBase64StringKeyGenerator(keygen.DefaultKeyLength),
		codeVerifierGenerator: keygen.NewBase64StringKeyGenerator(keygen.CodeVerifierKeyLength),
		codeChallenge:         S256CodeChallenge,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.stateGenerator == nil || r.codeVerifierGenerator == nil || r.codeChallenge == nil {
		return nil, errors.New("[resolver New] generators cannot be nil")
	}
	return r, nil
}

// Resolve resolves the authorization request for a request whose path matches
// the template. A nil request and nil error mean the path did not match and
// the request should be passed on unchanged.
func (r *Resolver) Resolve(req *http.Request) (*authrequest.AuthorizationRequest, error) {
	registrationID := r.resolveRegistrationID(req)
	return r.resolve(req, registrationID, getAction(req, DefaultLoginAction))
}

// ResolveRegistration resolves the authorization request for an explicit
// registration id. An empty id yields a nil request and nil error.
func (r *Resolver) ResolveRegistration(req *http.Request, registrationID string) (*authrequest.AuthorizationRequest, error) {
	return r.resolve(req, registrationID, getAction(req, DefaultAuthorizeAction))
}

// Matches reports whether the request path matches the authorization request template
func (r *Resolver) Matches(req *http.Request) bool {
	return r.resolveRegistrationID(req) != ""
}

func (r *Resolver) resolve(req *http.Request, registrationID, action string) (*authrequest.AuthorizationRequest, error) {
	if registrationID == "" {
		return nil, nil
	}

	reg, err := r.repo.FindByRegistrationID(registrationID)
	if apperrors.Is(err, registrations.ErrRegistrationNotFound) || (err == nil && reg == nil) {
		return nil, apperrors.Wrapf(ErrUnknownRegistration, "client registration with id %q", registrationID)
	}
	if err != nil {
		return nil, fmt.Errorf("[resolver] failed to find client registration %q: %w", registrationID, err)
	}

	attributes := map[string]any{
		authrequest.ParamRegistrationID: reg.RegistrationID,
	}

	var builder *authrequest.Builder
	switch reg.AuthorizationGrantType {
	case registrations.GrantTypeAuthorizationCode:
		builder = authrequest.AuthorizationCode()
		if reg.IsPublic() {
			params := map[string]any{}
			r.addPkceParameters(attributes, params)
			builder.AdditionalParameters(params)
		}
	case registrations.GrantTypeImplicit:
		builder = authrequest.Implicit()
	default:
		return nil, apperrors.Wrapf(ErrInvalidGrantType, "grant type (%s) for client registration with id %q", reg.AuthorizationGrantType, reg.RegistrationID)
	}

	redirectURI, err := r.expandRedirectURI(req, reg, action)
	if err != nil {
		return nil, err
	}

	authRequest, err := builder.
		ClientID(reg.ClientID).
		AuthorizationURI(reg.ProviderDetails.AuthorizationURI).
		RedirectURI(redirectURI).
		Scopes(reg.Scopes...).
		State(r.stateGenerator.GenerateKey()).
		Attributes(attributes).
		Build()
	if err != nil {
		return nil, fmt.Errorf("[resolver] client registration %q: %w", reg.RegistrationID, err)
	}

	log.Debug().
		Str("registration_id", reg.RegistrationID).
		Str("grant_type", string(authRequest.GrantType())).
		Str("redirect_uri", redirectURI).
		Bool("pkce", authRequest.CodeVerifier() != "").
		Msg("Resolved authorization request")
	return authRequest, nil
}

func (r *Resolver) resolveRegistrationID(req *http.Request) string {
	path, ok := r.pathWithinApplication(req.URL.Path)
	if !ok {
		return ""
	}
	vars, ok := r.matcher.Match(path)
	if !ok {
		return ""
	}
	return vars[varRegistrationID]
}

// pathWithinApplication strips the context path. Paths outside the context path do not match.
func (r *Resolver) pathWithinApplication(path string) (string, bool) {
	if r.contextPath == "" {
		return path, true
	}
	if path == r.contextPath {
		return "/", true
	}
	if !strings.HasPrefix(path, r.contextPath+"/") {
		return "", false
	}
	return strings.TrimPrefix(path, r.contextPath), true
}

func getAction(req *http.Request, defaultAction string) string {
	if values, ok := req.URL.Query()[actionParam]; ok && len(values) > 0 {
		return values[0]
	}
	return defaultAction
}
