package server

// Route path constants, relative to the context path
const (
	// RouteLoginCallback receives the authorization response for the default
	// redirect uri template "{baseUrl}/{action}/oauth2/code/{registrationId}"
	RouteLoginCallback = "/{action}/oauth2/code/{registrationId}"
	RouteHealth        = "/healthz"
)

const (
	pathValueRegistrationID = "registrationId"
	returnURLParam          = "return_url"
)
