package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	feedService "github.com/reshetovitsme/offer-listener/internal/modules/feed/service"
	"github.com/reshetovitsme/offer-listener/internal/modules/offer/domain"
	offerRepo "github.com/reshetovitsme/offer-listener/internal/modules/offer/repository"
	"github.com/reshetovitsme/offer-listener/internal/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, offerRepo.Repository) {
	t.Helper()
	repo := offerRepo.NewMemoryStorage(10)
	srv := New(&config.Config{Port: "0"}, feedService.New(repo))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, repo
}

func get(t *testing.T, url string) (int, string, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(body)
}

func TestLivenessOnAnyPath(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"/", "/health", "/some/deep/path"} {
		status, _, body := get(t, ts.URL+path)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Equal(t, livenessBody, body, path)
	}
}

func TestOffersFeed(t *testing.T) {
	ts, repo := newTestServer(t)
	require.NoError(t, repo.SaveOffer(&domain.Offer{
		URL:           "http://shop.example/x",
		RawText:       "Big sale! http://shop.example/x",
		SourceChannel: "Deals",
		SubmittedAt:   time.Now(),
	}))

	status, contentType, body := get(t, ts.URL+"/offers.rss")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/rss+xml; charset=utf-8", contentType)
	assert.Contains(t, body, "http://shop.example/x")
}

func TestShutdownBeforeStart(t *testing.T) {
	srv := New(&config.Config{}, nil)
	assert.NoError(t, srv.Shutdown(t.Context()))
}
