package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	channelDomain "github.com/reshetovitsme/offer-listener/internal/modules/channel/domain"
	"github.com/reshetovitsme/offer-listener/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const previewPage = `<!DOCTYPE html>
<html><body>
<section class="tgme_channel_history js-message_history">
  <div class="tgme_widget_message_wrap js-widget_message_wrap">
    <div class="tgme_widget_message text_not_supported_wrap js-widget_message" data-post="deals_ch/101">
      <div class="tgme_widget_message_text js-message_text" dir="auto">Old post http://shop.example/old</div>
      <a class="tgme_widget_message_date" href="https://t.me/deals_ch/101"><time datetime="2026-10-18T10:00:00+00:00" class="time">10:00</time></a>
    </div>
  </div>
  <div class="tgme_widget_message_wrap js-widget_message_wrap">
    <div class="tgme_widget_message js-widget_message" data-post="deals_ch/103">
      <a class="tgme_widget_message_reply" href="https://t.me/deals_ch/101">
        <div class="tgme_widget_message_text js-message_reply_text">Old post</div>
      </a>
      <div class="tgme_widget_message_text js-message_text" dir="auto">Big sale!<br/><a href="http://shop.example/x" target="_blank">http://shop.example/x</a></div>
      <a class="tgme_widget_message_date" href="https://t.me/deals_ch/103"><time datetime="2026-10-18T12:30:00+00:00" class="time">12:30</time></a>
    </div>
  </div>
  <div class="tgme_widget_message_wrap js-widget_message_wrap">
    <div class="tgme_widget_message js-widget_message" data-post="deals_ch/102">
      <div class="tgme_widget_message_photo_wrap"></div>
      <div class="tgme_widget_message_text js-message_text" dir="auto">Caption https://cdn.example/p.jpg</div>
    </div>
  </div>
  <div class="tgme_widget_message js-widget_message" data-post="broken">no id</div>
</section>
</body></html>`

func previewServer(t *testing.T, status int) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(previewPage))
	}))
	t.Cleanup(server.Close)
	return server, &paths
}

func TestPreviewRecent(t *testing.T) {
	server, paths := previewServer(t, http.StatusOK)
	preview := NewPreview(server.URL+"/s/", 100, time.Second)

	posts, err := preview.Recent(context.Background(), "@deals_ch", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"/s/deals_ch"}, *paths)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(102), posts[0].ID)
	assert.Equal(t, "Caption https://cdn.example/p.jpg", posts[0].Text)
	assert.True(t, posts[0].Date.IsZero())

	assert.Equal(t, int64(103), posts[1].ID)
	assert.Equal(t, "Big sale!\nhttp://shop.example/x", posts[1].Text)
	assert.Equal(t, time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC), posts[1].Date.UTC())
}

func TestPreviewRecentWithoutLimit(t *testing.T) {
	server, _ := previewServer(t, http.StatusOK)

	posts, err := NewPreview(server.URL, 100, time.Second).Recent(context.Background(), "deals_ch", 0)
	require.NoError(t, err)

	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{101, 102, 103}, ids)
}

func TestPreviewRecentBadStatus(t *testing.T) {
	server, _ := previewServer(t, http.StatusNotFound)

	_, err := NewPreview(server.URL, 100, time.Second).Recent(context.Background(), "missing", 3)
	assert.ErrorIs(t, err, errors.ErrUnexpectedStatus)
}

func TestFetchRecentMapsPosts(t *testing.T) {
	server, _ := previewServer(t, http.StatusOK)
	source := &Source{preview: NewPreview(server.URL, 100, time.Second), fatal: make(chan error, 1)}

	messages, err := source.FetchRecent(context.Background(), channelDomain.Channel{
		ID:       "-100123",
		Username: "deals_ch",
		Title:    "Deals",
	}, 3)
	require.NoError(t, err)

	require.Len(t, messages, 3)
	for _, msg := range messages {
		assert.Equal(t, "-100123", msg.ChatID)
		assert.Equal(t, "Deals", msg.SenderChatTitle)
	}
	assert.Equal(t, int64(103), messages[2].ID)
}

func TestFetchRecentRequiresUsername(t *testing.T) {
	source := &Source{fatal: make(chan error, 1)}

	_, err := source.FetchRecent(context.Background(), channelDomain.Channel{ID: "-100123"}, 3)
	assert.ErrorIs(t, err, errors.ErrNoPublicPreview)
}
