package server

import (
	"net/http"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+s.contextPath+RouteHealth, s.HealthHandler())

	// form_post response mode delivers the callback as a POST
	s.RegisterRouteFunc("GET "+s.contextPath+RouteLoginCallback, s.AuthorizationCallbackHandler())
	s.RegisterRouteFunc("POST "+s.contextPath+RouteLoginCallback, s.AuthorizationCallbackHandler())
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
