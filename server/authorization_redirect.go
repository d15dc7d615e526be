package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-oauth-client/authrequest"
	"github.com/jrsteele09/go-oauth-client/resolver"
	"github.com/jrsteele09/go-oauth-client/server/authflowrepo"
	"github.com/rs/zerolog/log"
)

// AuthorizationRequestRedirectMiddleware redirects requests matching the
// authorization request template to the provider's authorization endpoint.
// Requests that do not resolve are passed to next unchanged.
func (s *Server) AuthorizationRequestRedirectMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.resolver.Matches(r) {
			next(w, r)
			return
		}
		authRequest, err := s.resolver.Resolve(r)
		if err != nil {
			s.handleResolveError(w, r, err)
			return
		}
		if authRequest == nil {
			next(w, r)
			return
		}
		s.sendRedirectForAuthorization(w, r, authRequest)
	}
}

func (s *Server) sendRedirectForAuthorization(w http.ResponseWriter, r *http.Request, authRequest *authrequest.AuthorizationRequest) {
	// The implicit grant returns the token in the uri fragment to the user
	// agent, so there is no callback to correlate.
	if authRequest.GrantType() == authrequest.AuthorizationCodeGrant {
		authState := &authflowrepo.AuthFlowState{
			AuthorizationRequest: authRequest,
			ReturnURL:            safeReturnURL(r.URL.Query().Get(returnURLParam)),
			CreatedAt:            time.Now(),
		}
		if err := s.authState.Upsert(authRequest.State(), authState); err != nil {
			log.Err(err).
				Str("request_id", RequestID(r.Context())).
				Str("registration_id", authRequest.RegistrationID()).
				Msg("Failed to save authorization request")
			writeOAuthError(w, http.StatusInternalServerError, "server_error", "failed to save authorization request")
			return
		}
	}

	log.Info().
		Str("request_id", RequestID(r.Context())).
		Str("registration_id", authRequest.RegistrationID()).
		Str("grant_type", string(authRequest.GrantType())).
		Msg("Redirecting to authorization endpoint")
	http.Redirect(w, r, authRequest.AuthorizationRequestURI(), http.StatusFound)
}

func (s *Server) handleResolveError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := RequestID(r.Context())
	switch {
	case errors.Is(err, resolver.ErrUnknownRegistration),
		errors.Is(err, resolver.ErrInvalidGrantType),
		errors.Is(err, resolver.ErrTemplateExpansion):
		log.Warn().Err(err).Str("request_id", requestID).Str("path", r.URL.Path).Msg("Authorization request rejected")
		writeOAuthError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		log.Err(err).Str("request_id", requestID).Msg("Failed to resolve authorization request")
		writeOAuthError(w, http.StatusInternalServerError, "server_error", "failed to resolve authorization request")
	}
}

// safeReturnURL only accepts local absolute paths to avoid open redirects
func safeReturnURL(returnURL string) string {
	if !strings.HasPrefix(returnURL, "/") || strings.HasPrefix(returnURL, "//") || strings.HasPrefix(returnURL, "/\\") {
		return ""
	}
	return returnURL
}
