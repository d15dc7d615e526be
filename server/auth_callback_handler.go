package server

import (
	"errors"
	"net/http"

	"github.com/jrsteele09/go-oauth-client/authrequest"
	"github.com/jrsteele09/go-oauth-client/server/authflowrepo"
	"github.com/rs/zerolog/log"
)

// AuthorizationResponse is the correlated authorization response returned by the callback.
// The code is handed on as is, exchanging it for tokens happens elsewhere.
type AuthorizationResponse struct {
	RegistrationID string `json:"registrationId"`
	State          string `json:"state"`
	Code           string `json:"code"`
	RedirectURI    string `json:"redirectUri"`
	ReturnURL      string `json:"returnUrl,omitempty"`
}

func (s *Server) AuthorizationCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// r.FormValue works for both query params and POST form data
		state := r.FormValue(authrequest.ParamState)
		code := r.FormValue(authrequest.ParamCode)
		errorParam := r.FormValue(authrequest.ParamError)
		errorDesc := r.FormValue(authrequest.ParamErrorDesc)
		registrationID := r.PathValue(pathValueRegistrationID)

		if state == "" {
			writeOAuthError(w, http.StatusBadRequest, "invalid_request", "missing state parameter")
			return
		}

		// Clean up state on first use, whatever the outcome
		authState, err := s.authState.Remove(state)
		if err != nil {
			if !errors.Is(err, authflowrepo.ErrStateNotFound) && !errors.Is(err, authflowrepo.ErrStateExpired) {
				log.Err(err).Str("request_id", RequestID(r.Context())).Msg("Failed to load authorization request")
			}
			writeOAuthError(w, http.StatusBadRequest, "authorization_request_not_found", "unknown or expired state parameter")
			return
		}

		authRequest := authState.AuthorizationRequest
		if authRequest.RegistrationID() != registrationID {
			log.Warn().
				Str("request_id", RequestID(r.Context())).
				Str("expected", authRequest.RegistrationID()).
				Str("actual", registrationID).
				Msg("Callback registration id does not match the authorization request")
			writeOAuthError(w, http.StatusBadRequest, "invalid_request", "registration id does not match the authorization request")
			return
		}

		if errorParam != "" {
			writeOAuthError(w, http.StatusBadRequest, errorParam, errorDesc)
			return
		}
		if code == "" {
			writeOAuthError(w, http.StatusBadRequest, "invalid_request", "missing code parameter")
			return
		}

		writeJSON(w, http.StatusOK, AuthorizationResponse{
			RegistrationID: registrationID,
			State:          state,
			Code:           code,
			RedirectURI:    authRequest.RedirectURI(),
			ReturnURL:      authState.ReturnURL,
		})
	}
}
