package authflowrepo_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth-client/authrequest"
	"github.com/jrsteele09/go-oauth-client/server/authflowrepo"
	"github.com/stretchr/testify/require"
)

func testAuthorizationRequest(t *testing.T, state string) *authrequest.AuthorizationRequest {
	t.Helper()
	req, err := authrequest.AuthorizationCode().
		ClientID("client-1").
		AuthorizationURI("https://provider.example.com/authorize").
		State(state).
		Attributes(map[string]any{authrequest.ParamRegistrationID: "github"}).
		Build()
	require.NoError(t, err)
	return req
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func TestInMemoryRepo(t *testing.T) {
	c := &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	repo := authflowrepo.NewInMemoryRepo(time.Minute).WithClock(c.Now)

	t.Run("validation", func(t *testing.T) {
		require.Error(t, repo.Upsert("", &authflowrepo.AuthFlowState{AuthorizationRequest: testAuthorizationRequest(t, "x")}))
		require.Error(t, repo.Upsert("x", nil))
		require.Error(t, repo.Upsert("x", &authflowrepo.AuthFlowState{}))
		_, err := repo.Remove("")
		require.Error(t, err)
		require.Equal(t, 0, repo.Len())
	})

	t.Run("upsert stores a copy", func(t *testing.T) {
		authState := &authflowrepo.AuthFlowState{
			AuthorizationRequest: testAuthorizationRequest(t, "s1"),
			ReturnURL:            "/dashboard",
		}
		require.NoError(t, repo.Upsert("s1", authState))
		authState.ReturnURL = "/changed"

		got, err := repo.Remove("s1")
		require.NoError(t, err)
		require.Equal(t, "github", got.AuthorizationRequest.RegistrationID())
		require.Equal(t, "/dashboard", got.ReturnURL)
		require.Equal(t, c.now, got.CreatedAt)
	})

	t.Run("remove is single use", func(t *testing.T) {
		require.NoError(t, repo.Upsert("s1", &authflowrepo.AuthFlowState{AuthorizationRequest: testAuthorizationRequest(t, "s1")}))

		got, err := repo.Remove("s1")
		require.NoError(t, err)
		require.Equal(t, "s1", got.AuthorizationRequest.State())

		_, err = repo.Remove("s1")
		require.ErrorIs(t, err, authflowrepo.ErrStateNotFound)
	})

	t.Run("expiry", func(t *testing.T) {
		require.NoError(t, repo.Upsert("s2", &authflowrepo.AuthFlowState{AuthorizationRequest: testAuthorizationRequest(t, "s2")}))
		require.NoError(t, repo.Upsert("s3", &authflowrepo.AuthFlowState{AuthorizationRequest: testAuthorizationRequest(t, "s3")}))

		c.now = c.now.Add(2 * time.Minute)
		require.NoError(t, repo.Upsert("s4", &authflowrepo.AuthFlowState{AuthorizationRequest: testAuthorizationRequest(t, "s4")}))

		// Expired entries are deleted when removed
		_, err := repo.Remove("s2")
		require.ErrorIs(t, err, authflowrepo.ErrStateExpired)
		_, err = repo.Remove("s2")
		require.ErrorIs(t, err, authflowrepo.ErrStateNotFound)

		require.Equal(t, 1, repo.PurgeExpired())
		require.Equal(t, 1, repo.Len())

		got, err := repo.Remove("s4")
		require.NoError(t, err)
		require.Equal(t, "s4", got.AuthorizationRequest.State())
		require.Equal(t, 0, repo.Len())
	})
}
