package pathmatch_test

import (
	"testing"

	"github.com/jrsteele09/go-oauth-client/internal/pathmatch"
	"github.com/stretchr/testify/require"
)

func parseTemplate(t *testing.T, pattern string) *pathmatch.Template {
	t.Helper()
	tmpl, err := pathmatch.Parse(pattern)
	require.NoError(t, err)
	return tmpl
}

func TestTemplate_Match(t *testing.T) {
	tmpl := parseTemplate(t, "/oauth2/authorization/{registrationId}")

	testCases := []struct {
		path    string
		match   bool
		capture string
	}{
		{path: "/oauth2/authorization/github", match: true, capture: "github"},
		{path: "/oauth2/authorization/my-okta.tenant_1", match: true, capture: "my-okta.tenant_1"},
		{path: "//oauth2//authorization/google", match: true, capture: "google"},
		{path: "/oauth2/authorization/", match: false},
		{path: "/oauth2/authorization", match: false},
		{path: "/oauth2/authorization/github/", match: false},
		{path: "/oauth2/authorization/github/extra", match: false},
		{path: "/OAuth2/authorization/github", match: false},
		{path: "oauth2/authorization/github", match: false},
		{path: "/login/oauth2/code/github", match: false},
		{path: "", match: false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			vars, ok := tmpl.Match(tc.path)
			require.Equal(t, tc.match, ok)
			if !tc.match {
				require.Nil(t, vars)
				return
			}
			require.Equal(t, tc.capture, vars["registrationId"])
		})
	}
}

func TestTemplate_MultipleVariablesAndWildcard(t *testing.T) {
	tmpl := parseTemplate(t, "/{action}/oauth2/*/{registrationId}")

	vars, ok := tmpl.Match("/login/oauth2/code/github")
	require.True(t, ok)
	require.Equal(t, map[string]string{"action": "login", "registrationId": "github"}, vars)

	_, ok = tmpl.Match("/login/oauth2/github")
	require.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	for _, pattern := range []string{"", "  ", "/a/{}", "/a/{id", "/a/pre{id}", "/{id}/{id}"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := pathmatch.Parse(pattern)
			require.ErrorIs(t, err, pathmatch.ErrInvalidTemplate)
		})
	}
}
