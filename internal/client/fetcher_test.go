package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Esubaalew/2merkato/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSiteConfig() config.SiteConfig {
	cfg := config.Default().Site
	cfg.Timeout = 5
	return cfg
}

func TestFetch_SendsUserAgent(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	html, err := NewFetcher(testSiteConfig(), nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Mozilla/5.0", gotAgent)
	assert.Contains(t, html, "ok")
}

func TestFetch_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher(testSiteConfig(), nil).Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrHTTPStatus)
	assert.NotErrorIs(t, err, ErrTransport)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, KindHTTPStatus, fetchErr.Kind)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, srv.URL+"/missing", fetchErr.URL)
}

func TestFetch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(testSiteConfig(), nil).Fetch(context.Background(), url)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrHTTPStatus)
	assert.Contains(t, err.Error(), url)
}

func TestFetch_ReplacesInvalidUTF8(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<p>caf\xe9 ok</p>"))
	}))
	defer srv.Close()

	html, err := NewFetcher(testSiteConfig(), nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "<p>caf\uFFFD ok</p>", html)
}

func TestFetch_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(testSiteConfig(), nil).Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetchErrorKind_String(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "http status", KindHTTPStatus.String())
	assert.Equal(t, "unknown", FetchErrorKind(9).String())
}
