package config

import (
	"strings"
	"time"
)

const (
	contextPathEnvVar          = "CONTEXT_PATH"
	authorizationBaseURIEnvVar = "AUTHORIZATION_BASE_URI"
	registrationsFileEnvVar    = "REGISTRATIONS_FILE"
	authRequestTimeoutEnvVar   = "AUTH_REQUEST_TIMEOUT"

	DefaultAuthorizationBaseURI = "/oauth2/authorization"
	defaultAuthRequestTimeout   = 10 * time.Minute
)

type OAuthClientConfig interface {
	GetContextPath() string
	GetAuthorizationBaseURI() string
	GetRegistrationsFile() string
	GetAuthRequestTimeout() time.Duration
}

type OAuthClient struct{}

var _ OAuthClientConfig = OAuthClient{}

// GetContextPath returns the path prefix the application is mounted under, e.g. "/app".
// An empty value means the application is served from the root.
func (OAuthClient) GetContextPath() string {
	return strings.TrimSuffix(GetEnv(contextPathEnvVar, ""), "/")
}

func (OAuthClient) GetAuthorizationBaseURI() string {
	return GetEnv(authorizationBaseURIEnvVar, DefaultAuthorizationBaseURI)
}

func (OAuthClient) GetRegistrationsFile() string {
	return GetEnv(registrationsFileEnvVar, "./registrations.json")
}

// GetAuthRequestTimeout is how long a saved authorization request waits for its callback
func (OAuthClient) GetAuthRequestTimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv(authRequestTimeoutEnvVar, ""))
	if err != nil || d <= 0 {
		return defaultAuthRequestTimeout
	}
	return d
}
