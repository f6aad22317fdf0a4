package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weather-api/internal/observability"
	"weather-api/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `{
  "items": [
    {"id": {"kind": "youtube#video", "videoId": "abc123"},
     "snippet": {"title": "Kyoto Travel Guide", "channelTitle": "Wander",
       "thumbnails": {"default": {"url": "https://i.ytimg.com/vi/abc123/default.jpg"},
                      "high": {"url": "https://i.ytimg.com/vi/abc123/hqdefault.jpg"}}}},
    {"id": {"kind": "youtube#video", "videoId": "def456"},
     "snippet": {"title": "48 Hours in Kyoto", "channelTitle": "Trips",
       "thumbnails": {"medium": {"url": "https://i.ytimg.com/vi/def456/mqdefault.jpg"}}}},
    {"id": {"kind": "youtube#channel", "channelId": "UC1"},
     "snippet": {"title": "A channel"}}
  ]
}`

func TestSearchVideos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "Kyoto travel guide", q.Get("q"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "4", q.Get("maxResults"))
		assert.Equal(t, "yt-key", q.Get("key"))
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	client := NewClient("yt-key", srv.URL, srv.Client(), observability.NewMetricsForTesting())

	videos, err := client.SearchVideos(context.Background(), "Kyoto travel guide", 4)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	assert.Equal(t, Video{
		ID:           "abc123",
		Title:        "Kyoto Travel Guide",
		Thumbnail:    "https://i.ytimg.com/vi/abc123/hqdefault.jpg",
		ChannelTitle: "Wander",
	}, videos[0])
	assert.Equal(t, "https://i.ytimg.com/vi/def456/mqdefault.jpg", videos[1].Thumbnail)
}

func TestSearchVideosQuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quotaExceeded"}}`))
	}))
	defer srv.Close()

	client := NewClient("yt-key", srv.URL, srv.Client(), nil)
	client.httpCfg.Backoff = providers.BackoffConfig{MaxRetries: 0, InitialInterval: time.Millisecond}

	_, err := client.SearchVideos(context.Background(), "anything", 4)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, providers.UpstreamStatus(err))
}

func TestSearchVideosWithoutKey(t *testing.T) {
	client := NewClient("", "", nil, nil)

	assert.False(t, client.Enabled())
	_, err := client.SearchVideos(context.Background(), "anything", 4)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
