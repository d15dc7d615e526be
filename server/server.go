package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-oauth-client/internal/config"
	"github.com/jrsteele09/go-oauth-client/registrations"
	"github.com/jrsteele09/go-oauth-client/resolver"
	"github.com/jrsteele09/go-oauth-client/server/authflowrepo"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env         string // Environment (e.g., "DEV", "PROD")
	contextPath string
	mux         *http.ServeMux
	handler     http.Handler
	routes      []string
	config      config.Config
	resolver    *resolver.Resolver
	authState   authflowrepo.Repo
}

func New(config config.Config, registrationRepo registrations.Repo, authStateRepo authflowrepo.Repo) (*Server, error) {
	if authStateRepo == nil {
		return nil, fmt.Errorf("[Server New] auth state repo cannot be nil")
	}

	contextPath := strings.TrimSuffix(config.GetContextPath(), "/")
	r, err := resolver.New(registrationRepo, config.GetAuthorizationBaseURI(), resolver.WithContextPath(contextPath))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create authorization request resolver: %w", err)
	}

	s := &Server{
		env:         config.GetEnv(),
		contextPath: contextPath,
		mux:         http.NewServeMux(),
		config:      config,
		resolver:    r,
		authState:   authStateRepo,
	}

	s.initRoutes()
	s.logRoutes()

	// The redirect filter runs before routing so any path matching the
	// authorization request template is handled, whatever the mux holds.
	s.handler = ChainMiddleware(s.mux.ServeHTTP,
		s.RequestIDMiddleware,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.AuthorizationRequestRedirectMiddleware,
	)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	logRoute("GET", s.contextPath+s.config.GetAuthorizationBaseURI()+"/{registrationId}")
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
