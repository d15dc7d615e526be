package authrequest

// ResponseType represents the OAuth 2.0 response type.
// Determines what is returned from the authorization endpoint.
type ResponseType string

const (
	// CodeResponseType indicates the authorization code flow.
	// Returns an authorization code that must be exchanged for tokens at the token endpoint.
	// Example: /oauth/authorize?response_type=code&client_id=...
	CodeResponseType ResponseType = "code"

	// TokenResponseType indicates the implicit flow.
	// The access token is returned directly in the redirect URI fragment.
	TokenResponseType ResponseType = "token"
)

// GrantType is the authorization grant an AuthorizationRequest belongs to
type GrantType string

const (
	AuthorizationCodeGrant GrantType = "authorization_code"
	ImplicitGrant          GrantType = "implicit"
)

// CodeMethodType represents the PKCE (Proof Key for Code Exchange) challenge method.
type CodeMethodType string

const (
	// CodeMethodTypeS256 means code_challenge = BASE64URL(SHA256(code_verifier))
	CodeMethodTypeS256 CodeMethodType = "S256"

	// CodeMethodTypePlain means code_challenge = code_verifier.
	// It is the default when code_challenge_method is omitted.
	CodeMethodTypePlain CodeMethodType = "plain"
)

// OAuth 2.0 parameter names
const (
	ParamResponseType   = "response_type"
	ParamClientID       = "client_id"
	ParamRedirectURI    = "redirect_uri"
	ParamScope          = "scope"
	ParamState          = "state"
	ParamCode           = "code"
	ParamError          = "error"
	ParamErrorDesc      = "error_description"
	ParamRegistrationID = "registration_id"
)

// PKCE parameter names (RFC 7636)
const (
	ParamCodeVerifier        = "code_verifier"
	ParamCodeChallenge       = "code_challenge"
	ParamCodeChallengeMethod = "code_challenge_method"
)
