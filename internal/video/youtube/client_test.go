package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/exerciseresolver/internal/video"
)

func TestSearchParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "snippet", query.Get("part"))
		require.Equal(t, "video", query.Get("type"))
		require.Equal(t, "true", query.Get("videoEmbeddable"))
		require.Equal(t, "goblet squat form", query.Get("q"))
		require.Equal(t, "5", query.Get("maxResults"))
		require.Equal(t, "test-key", query.Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{
					"id": {"videoId": "abc123"},
					"snippet": {
						"title": "Goblet Squat Form",
						"channelTitle": "FitChannel",
						"thumbnails": {"medium": {"url": "https://img/abc123.jpg"}}
					}
				},
				{
					"id": {"videoId": ""},
					"snippet": {"title": "not a video"}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	results, err := client.Search(context.Background(), "goblet squat form", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "abc123", results[0].ID)
	require.Equal(t, "Goblet Squat Form", results[0].Title)
	require.Equal(t, "FitChannel", results[0].ChannelTitle)
	require.Equal(t, "https://img/abc123.jpg", results[0].ThumbnailURL)
}

func TestVideoDetailsParsesCounters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/videos", r.URL.Path)
		require.Equal(t, "abc123,def456", r.URL.Query().Get("id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{
					"id": "abc123",
					"contentDetails": {"duration": "PT4M30S"},
					"statistics": {"viewCount": "12345", "likeCount": "678"}
				},
				{
					"id": "def456",
					"contentDetails": {"duration": "PT45S"},
					"statistics": {"viewCount": "not-a-number"}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	details, err := client.VideoDetails(context.Background(), []string{"abc123", "def456"})
	require.NoError(t, err)
	require.Len(t, details, 2)
	require.Equal(t, "PT4M30S", details[0].Duration)
	require.Equal(t, int64(12345), details[0].ViewCount)
	require.Equal(t, int64(678), details[0].LikeCount)
	require.Equal(t, int64(0), details[1].ViewCount)
}

func TestQuotaRefusalMapsToErrQuotaExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "errors": [{"reason": "quotaExceeded"}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	_, err := client.Search(context.Background(), "anything", 5)
	require.ErrorIs(t, err, video.ErrQuotaExceeded)
}

func TestNonQuotaFailureIsPlainError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	_, err := client.Search(context.Background(), "anything", 5)
	require.Error(t, err)
	require.NotErrorIs(t, err, video.ErrQuotaExceeded)
}
