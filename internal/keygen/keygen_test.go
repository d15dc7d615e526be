package keygen_test

import (
	"encoding/base64"
	"strings"
	"sync"
	"testing"

	"github.com/jrsteele09/go-oauth-client/internal/keygen"
	"github.com/stretchr/testify/require"
)

func TestBase64StringKeyGenerator(t *testing.T) {
	testCases := []struct {
		name       string
		length     int
		wantLength int
	}{
		{name: "default", length: keygen.DefaultKeyLength, wantLength: 32},
		{name: "code verifier", length: keygen.CodeVerifierKeyLength, wantLength: 96},
		{name: "short length is raised", length: 8, wantLength: 32},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := keygen.NewBase64StringKeyGenerator(tc.length)
			require.Equal(t, tc.wantLength, g.KeyLength())

			key := g.GenerateKey()
			require.NotContains(t, key, "=")
			require.False(t, strings.ContainsAny(key, "+/"))

			decoded, err := base64.RawURLEncoding.DecodeString(key)
			require.NoError(t, err)
			require.Len(t, decoded, tc.wantLength)
		})
	}
}

func TestBase64StringKeyGenerator_Concurrent(t *testing.T) {
	g := keygen.NewBase64StringKeyGenerator(keygen.DefaultKeyLength)

	const workers = 16
	const perWorker = 64
	keys := make(chan string, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				keys <- g.GenerateKey()
			}
		}()
	}
	wg.Wait()
	close(keys)

	seen := make(map[string]struct{}, workers*perWorker)
	for k := range keys {
		_, dup := seen[k]
		require.False(t, dup, "duplicate key generated")
		seen[k] = struct{}{}
	}
	require.Len(t, seen, workers*perWorker)
}
