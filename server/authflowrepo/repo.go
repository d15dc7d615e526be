package authflowrepo

import (
	"errors"
	"time"

	"github.com/jrsteele09/go-oauth-client/authrequest"
)

var (
	ErrStateNotFound = errors.New("state not found")
	ErrStateExpired  = errors.New("state expired")
)

// AuthFlowState is an authorization request waiting for its callback
type AuthFlowState struct {
	AuthorizationRequest *authrequest.AuthorizationRequest
	ReturnURL            string
	CreatedAt            time.Time
}

// Repo correlates the state parameter of a callback with the authorization
// request that was sent. Remove returns the entry and deletes it so a state
// can only be used once.
type Repo interface {
	Upsert(state string, authState *AuthFlowState) error
	Remove(state string) (*AuthFlowState, error)
}
