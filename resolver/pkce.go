package resolver

import (
	"github.com/jrsteele09/go-oauth-client/authrequest"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// CodeChallengeFunc derives an S256 PKCE code challenge from a code verifier
type CodeChallengeFunc func(codeVerifier string) (string, error)

// S256CodeChallenge returns BASE64URL(SHA256(ASCII(codeVerifier))) without padding
func S256CodeChallenge(codeVerifier string) (string, error) {
	return oauth2.S256ChallengeFromVerifier(codeVerifier), nil
}

// addPkceParameters stores the code verifier in attributes for the token
// request and puts the code challenge in params for the authorization request.
//
// If the challenge cannot be derived the verifier itself is sent as the
// challenge with no method, which authorization servers treat as "plain".
// This keeps PKCE available at all and is not a security recommendation.
func (r *Resolver) addPkceParameters(attributes, params map[string]any) {
	codeVerifier := r.codeVerifierGenerator.GenerateKey()
	attributes[authrequest.ParamCodeVerifier] = codeVerifier

	codeChallenge, err := r.codeChallenge(codeVerifier)
	if err != nil {
		log.Warn().Err(err).
			Str("code_challenge_method", string(authrequest.CodeMethodTypePlain)).
			Msg("S256 code challenge unavailable, falling back to plain")
		params[authrequest.ParamCodeChallenge] = codeVerifier
		return
	}
	params[authrequest.ParamCodeChallenge] = codeChallenge
	params[authrequest.ParamCodeChallengeMethod] = string(authrequest.CodeMethodTypeS256)
}
