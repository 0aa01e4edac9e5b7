package twitter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
)

func TestFetchRecent(t *testing.T) {
	since := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/tweets/search/recent", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "#ElizaOS -is:retweet", r.URL.Query().Get("query"))
		assert.Equal(t, "2026-03-01T12:00:00Z", r.URL.Query().Get("start_time"))
		assert.Equal(t, "100", r.URL.Query().Get("max_results"))

		_, _ = w.Write([]byte(`{
			"data": [
				{
					"id": "1001",
					"text": "loving the new release",
					"author_id": "42",
					"created_at": "2026-03-01T13:00:00Z",
					"public_metrics": {"retweet_count": 2, "reply_count": 1, "like_count": 10, "quote_count": 0}
				}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	interactions, err := client.FetchRecent(context.Background(), "ElizaOS", since)
	require.NoError(t, err)
	require.Len(t, interactions, 1)

	assert.Equal(t, domain.Interaction{
		ID:           "1001",
		AuthorID:     "42",
		Text:         "loving the new release",
		CreatedAt:    time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC),
		LikeCount:    10,
		RetweetCount: 2,
		ReplyCount:   1,
		QuoteCount:   0,
	}, interactions[0])
}

func TestFetchRecent_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meta": {"result_count": 0}}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	interactions, err := client.FetchRecent(context.Background(), "ElizaOS", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, interactions)
}

func TestFetchRecent_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	clock := clockwork.NewFakeClock()
	client := NewClient("test-token", WithBaseURL(srv.URL), WithClock(clock))

	done := make(chan error, 1)
	go func() {
		_, err := client.FetchRecent(context.Background(), "ElizaOS", time.Now().Add(-time.Hour))
		done <- err
	}()

	clock.BlockUntil(1)
	clock.Advance(time.Second)

	require.NoError(t, <-done)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchRecent_RateLimitUsesLongerBackoff(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	clock := clockwork.NewFakeClock()
	client := NewClient("test-token", WithBaseURL(srv.URL), WithClock(clock))

	done := make(chan error, 1)
	go func() {
		_, err := client.FetchRecent(context.Background(), "ElizaOS", time.Now().Add(-time.Hour))
		done <- err
	}()

	clock.BlockUntil(1)

	// A normal backoff advance is not enough to wake the rate-limit wait.
	clock.Advance(time.Second)
	select {
	case err := <-done:
		t.Fatalf("request completed before rate-limit backoff elapsed: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	clock.Advance(5 * time.Second)
	require.NoError(t, <-done)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchRecent_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	_, err := client.FetchRecent(context.Background(), "ElizaOS", time.Now().Add(-time.Hour))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/users/42", r.URL.Path)
		assert.Equal(t, "public_metrics", r.URL.Query().Get("user.fields"))

		_, _ = w.Write([]byte(`{
			"data": {
				"id": "42",
				"username": "alice",
				"public_metrics": {"followers_count": 1500, "following_count": 200, "tweet_count": 3200}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	profile, err := client.GetProfile(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, "42", profile.AuthorID)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, 1500, profile.FollowersCount)
	assert.Equal(t, 200, profile.FollowingCount)
	assert.Equal(t, 3200, profile.TweetCount)
}

func TestGetProfile_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	_, err := client.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestGetProfile_UnknownUserWithOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors": [{"title": "Not Found Error"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	_, err := client.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2/dm_conversations/with/42/messages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body dmRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello there", body.Text)

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	require.NoError(t, client.Send(context.Background(), "42", "hello there"))
}

func TestSend_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	assert.Error(t, client.Send(context.Background(), "42", "hello there"))
}
