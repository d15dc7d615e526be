package resolver

import (
	"net/http"
	"regexp"
	"strings"

	apperrors "github.com/jrsteele09/go-oauth-client/internal/errors"
	"github.com/jrsteele09/go-oauth-client/registrations"
	"github.com/yosida95/uritemplate/v3"
)

// Redirect uri template variables
const (
	varBaseURL        = "baseUrl"
	varAction         = "action"
	varRegistrationID = "registrationId"
)

var templateExpression = regexp.MustCompile(`\{[^{}]*\}`)

// expandRedirectURI expands {baseUrl}, {action} and {registrationId} in the
// registration's redirect uri template. Values are substituted as is and the
// literal text around the expressions is left alone.
func (r *Resolver) expandRedirectURI(req *http.Request, reg *registrations.ClientRegistration, action string) (string, error) {
	template := reg.RedirectURITemplate
	values := map[string]string{
		varBaseURL:        r.baseURL(req),
		varAction:         action,
		varRegistrationID: reg.RegistrationID,
	}

	for _, expr := range templateExpression.FindAllString(template, -1) {
		tmpl, err := uritemplate.New(expr)
		if err != nil {
			return "", apperrors.Wrapf(ErrTemplateExpansion, "client registration %q: malformed expression %s in redirect uri template %q (%v)", reg.RegistrationID, expr, template, err)
		}
		names := tmpl.Varnames()
		for _, name := range names {
			if _, ok := values[name]; !ok {
				return "", apperrors.Wrapf(ErrTemplateExpansion, "client registration %q: no value for variable %q in redirect uri template %q", reg.RegistrationID, name, template)
			}
		}
		// Only simple {name} expressions are supported, operators such as {+name} are not
		if len(names) != 1 || expr != "{"+names[0]+"}" {
			return "", apperrors.Wrapf(ErrTemplateExpansion, "client registration %q: unsupported expression %s in redirect uri template %q", reg.RegistrationID, expr, template)
		}
	}
	if strings.ContainsAny(templateExpression.ReplaceAllString(template, ""), "{}") {
		return "", apperrors.Wrapf(ErrTemplateExpansion, "client registration %q: unbalanced braces in redirect uri template %q", reg.RegistrationID, template)
	}

	return templateExpression.ReplaceAllStringFunc(template, func(expr string) string {
		return values[expr[1:len(expr)-1]]
	}), nil
}

// baseURL is scheme://host[:port] followed by the context path. The request's
// own path and query are not included.
func (r *Resolver) baseURL(req *http.Request) string {
	return getScheme(req) + "://" + req.Host + r.contextPath
}

// getScheme trusts the first X-Forwarded-Proto entry when it is http or https
func getScheme(req *http.Request) string {
	if req.TLS != nil {
		return "https"
	}
	proto, _, _ := strings.Cut(req.Header.Get("X-Forwarded-Proto"), ",")
	switch scheme := strings.ToLower(strings.TrimSpace(proto)); scheme {
	case "http", "https":
		return scheme
	}
	return "http"
}
