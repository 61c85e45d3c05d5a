package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestPollInterval(t *testing.T) {
	tests := []struct {
		name      string
		remaining *int
		want      time.Duration
	}{
		{"unknown", nil, 200 * time.Millisecond},
		{"zero", intPtr(0), 200 * time.Millisecond},
		{"short", intPtr(2), 2 * time.Second},
		{"capped", intPtr(30), 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pollInterval(tt.remaining))
		})
	}
}

func TestSmoke(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("auth_key")
		if r.URL.Path != "/v2/usage" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cmd := testCommand(t, srv.URL)
	require.NoError(t, runSmoke(cmd, nil))
	assert.Equal(t, "smoke_test", gotKey)
}

func TestSmokeFailsOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := runSmoke(testCommand(t, srv.URL), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSessionHeaders(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(documentCmd.Flags())
	require.NoError(t, cmd.Flags().Set("session", "s1"))
	require.NoError(t, cmd.Flags().Set("doc-failure", "1"))

	headers, err := sessionHeaders(cmd)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"mock-server-session":             "s1",
		"mock-server-session-doc-failure": "1",
	}, headers)
}

func testCommand(t *testing.T, url string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, cmd.Flags().Set("url", url))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	cmd.SetContext(ctx)
	return cmd
}
