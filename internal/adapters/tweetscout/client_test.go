package tweetscout_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitegun/snipebot/internal/adapters/tweetscout"
	"github.com/mitegun/snipebot/internal/domain"
)

func TestAnalyze_OK(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Write([]byte(`{"overallScore": 71.5, "knownFollowers": 42, "trustLevel": "medium"}`))
	}))
	defer srv.Close()

	c := tweetscout.NewClient(srv.URL, "ts-key")
	rep, err := c.Analyze(context.Background(), "somehandle")
	require.NoError(t, err)

	assert.True(t, rep.Known)
	assert.Equal(t, 71.5, rep.OverallScore)
	assert.Equal(t, 42, rep.KnownFollowers)
	assert.Equal(t, "medium", rep.TrustLevel)
	assert.Equal(t, "Bearer ts-key", gotAuth)
	assert.Equal(t, "/api/somehandle", gotPath)
}

func TestAnalyze_EmptyTrustLevelDefaultsToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"overallScore": 10}`))
	}))
	defer srv.Close()

	c := tweetscout.NewClient(srv.URL, "k")
	rep, err := c.Analyze(context.Background(), "h")
	require.NoError(t, err)
	assert.Equal(t, domain.TrustUnknown, rep.TrustLevel)
}

func TestAnalyze_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := tweetscout.NewClient(srv.URL, "k")
	_, err := c.Analyze(context.Background(), "h")
	require.Error(t, err)
}
