package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkupapp/linkup/internal/client/api"
	"github.com/linkupapp/linkup/internal/client/cache"
	"github.com/linkupapp/linkup/internal/client/optimistic"
	"github.com/linkupapp/linkup/internal/client/session"
	"github.com/linkupapp/linkup/internal/client/storage"
	"github.com/linkupapp/linkup/internal/client/storage/boltdb"
)

func testToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": "me",
		"name": "Tester",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// newTestService wires the whole client stack against a mock backend and
// a signed-in session for user "me".
func newTestService(t *testing.T, handler http.Handler) (*Service, *cache.Store, *httptest.Server) {
	t.Helper()
	ctx := context.Background()
	logger := slogt.New(t)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	bolt, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "feed_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, bolt.Close()) })

	sess := session.NewService(bolt, logger)
	apiClient := api.NewClient(server.URL, server.URL, sess, logger)
	sess.AttachClient(apiClient)

	require.NoError(t, bolt.SaveAuth(ctx, &storage.AuthData{
		Token:       testToken(t),
		DisplayName: "Tester",
		SavedAt:     time.Now(),
	}))
	require.NoError(t, sess.Load(ctx))
	require.True(t, sess.IsAuthenticated())

	store := cache.NewStore(time.Minute, logger)
	toggles := optimistic.NewRegistry(time.Second, logger)
	service := NewService(apiClient, store, sess, toggles, logger)
	return service, store, server
}

func TestToggleFollow_Success(t *testing.T) {
	var followCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile-data", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"_id":"me","name":"Tester","following":[]}}`))
	})
	mux.HandleFunc("/users/u2/follow", func(w http.ResponseWriter, r *http.Request) {
		followCalls.Add(1)
		assert.Equal(t, http.MethodPut, r.Method)
		_, _ = w.Write([]byte(`{"message":"success"}`))
	})

	service, store, _ := newTestService(t, mux)
	ctx := context.Background()

	following, err := service.ToggleFollow(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, int32(1), followCalls.Load())

	// settlement invalidates the keys that derive the follow state
	assert.True(t, store.IsStale(cache.CurrentUser()))
	assert.True(t, store.IsStale(cache.UserProfile("u2")))
}

func TestToggleFollow_FailureRevertsAndKeepsCache(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile-data", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"_id":"me","name":"Tester","following":["u2"]}}`))
	})
	mux.HandleFunc("/users/u2/follow", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	})

	service, store, _ := newTestService(t, mux)
	ctx := context.Background()

	// already following; the failed toggle restores that exact value
	following, err := service.ToggleFollow(ctx, "u2")
	require.Error(t, err)
	assert.True(t, api.IsTransportError(err))
	assert.True(t, following)

	// a failed mutation invalidates nothing
	assert.False(t, store.IsStale(cache.CurrentUser()))
	assert.False(t, store.IsStale(cache.UserProfile("u2")))
}

// After a successful like the displayed state comes from an authoritative
// refetch, not from the optimistic flip.
func TestToggleLike_CacheWinsAfterRefetch(t *testing.T) {
	var liked atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		if liked.Load() {
			_, _ = w.Write([]byte(`{"posts":[{"_id":"p1","user":{"_id":"u9"},"likes":["me","u3"]}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"posts":[{"_id":"p1","user":{"_id":"u9"},"likes":["u3"]}]}`))
	})
	mux.HandleFunc("/posts/p1/like", func(w http.ResponseWriter, r *http.Request) {
		liked.Store(true)
		_, _ = w.Write([]byte(`{"message":"success"}`))
	})
	mux.HandleFunc("/posts/p1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"post":{"_id":"p1","user":{"_id":"u9"},"likes":["u3"]}}`))
	})

	service, store, _ := newTestService(t, mux)
	ctx := context.Background()

	posts := service.Feed(ctx, 50)
	require.Len(t, posts, 1)
	assert.False(t, posts[0].IsLikedBy("me"))
	assert.Equal(t, 1, posts[0].LikeCount())

	display, err := service.ToggleLike(ctx, &posts[0])
	require.NoError(t, err)
	assert.True(t, display)
	assert.True(t, store.IsStale(cache.Posts()))
	assert.True(t, store.IsStale(cache.Post("p1")))

	// the refetched collection carries the authoritative likers list
	posts = service.Feed(ctx, 50)
	require.Len(t, posts, 1)
	assert.True(t, posts[0].IsLikedBy("me"))
	assert.Equal(t, 2, posts[0].LikeCount())
}

// A failed refetch must not wipe what the user last saw: the fetch error
// has to reach the store so it keeps serving the last good collection.
func TestFeed_ServesLastGoodAcrossRefetchFailure(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	mux := http.NewServeMux()
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"boom"}`))
			return
		}
		_, _ = w.Write([]byte(`{"posts":[{"_id":"p1","user":{"_id":"u9"},"body":"still here"}]}`))
	})

	service, store, _ := newTestService(t, mux)
	ctx := context.Background()

	posts := service.Feed(ctx, 50)
	require.Len(t, posts, 1)

	// backend goes down, then something invalidates the collection
	healthy.Store(false)
	store.Invalidate(cache.Posts())

	posts = service.Feed(ctx, 50)
	require.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].ID)
	// still flagged, so the next read retries the backend
	assert.True(t, store.IsStale(cache.Posts()))

	// once the backend recovers the flag clears again
	healthy.Store(true)
	posts = service.Feed(ctx, 50)
	require.Len(t, posts, 1)
	assert.False(t, store.IsStale(cache.Posts()))
}

// With nothing cached yet a failing backend degrades the view to empty.
func TestFeed_EmptyWithoutLastGood(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	})

	service, _, _ := newTestService(t, mux)
	posts := service.Feed(context.Background(), 50)
	assert.Empty(t, posts)
}

func TestToggleSave(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile-data", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"_id":"me","bookmarks":["p7"]}}`))
	})
	mux.HandleFunc("/posts/p7/bookmark", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		_, _ = w.Write([]byte(`{"message":"success"}`))
	})

	service, store, _ := newTestService(t, mux)
	ctx := context.Background()

	// p7 is already bookmarked; the toggle flips it off
	saved, err := service.ToggleSave(ctx, "p7")
	require.NoError(t, err)
	assert.False(t, saved)

	assert.True(t, store.IsStale(cache.CurrentUser()))
	assert.True(t, store.IsStale(cache.SavedPosts()))
}

func TestAddComment_Invalidation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"posts":[]}`))
	})
	mux.HandleFunc("/posts/p1/comments", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"comments":[]}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"success"}`))
	})

	service, store, _ := newTestService(t, mux)
	ctx := context.Background()

	_ = service.Feed(ctx, 50)
	_ = service.Comments(ctx, "p1")

	require.NoError(t, service.AddComment(ctx, "p1", "nice post"))

	// the posts collection displays comment counts, so it goes stale too
	assert.True(t, store.IsStale(cache.Comments("p1")))
	assert.True(t, store.IsStale(cache.Posts()))
}

func TestMutationFailureKeepsCache(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"posts":[]}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"body is required"}`))
	})

	service, store, _ := newTestService(t, mux)
	ctx := context.Background()

	_ = service.Feed(ctx, 50)

	err := service.CreatePost(ctx, "", "", nil)
	require.Error(t, err)
	assert.True(t, api.IsValidationError(err))
	assert.False(t, store.IsStale(cache.Posts()))
}

func TestMarkAllRead_Invalidation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notifications", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"notifications":[]}`))
	})
	mux.HandleFunc("/notifications/unread-count", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unreadCount":3}`))
	})
	mux.HandleFunc("/notifications/read-all", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		_, _ = w.Write([]byte(`{"message":"success"}`))
	})

	service, store, _ := newTestService(t, mux)
	ctx := context.Background()

	count, err := service.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	_ = service.Notifications(ctx)

	require.NoError(t, service.MarkAllRead(ctx))
	assert.True(t, store.IsStale(cache.Notifications()))
	assert.True(t, store.IsStale(cache.UnreadCount()))
}

func TestClearCache(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"posts":[]}`))
	})

	service, _, _ := newTestService(t, mux)
	ctx := context.Background()

	_ = service.Feed(ctx, 50)
	service.ClearCache(ctx)
	_ = service.Feed(ctx, 50)
	assert.Equal(t, 2, calls)
}

func TestPoller_RefreshesUnreadCount(t *testing.T) {
	var count atomic.Int32
	count.Store(1)
	mux := http.NewServeMux()
	mux.HandleFunc("/notifications/unread-count", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fmt.Sprintf(`{"unreadCount":%d}`, count.Load())))
	})

	service, _, _ := newTestService(t, mux)

	got := make(chan int, 16)
	poller := NewPoller(service, 10*time.Millisecond, func(c int) {
		got <- c
	}, slogt.New(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		poller.Run(ctx)
	}()

	// the first refresh is immediate
	select {
	case c := <-got:
		assert.Equal(t, 1, c)
	case <-time.After(time.Second):
		t.Fatal("poller never delivered the first count")
	}

	// the counter changes and a later tick picks it up
	count.Store(4)
	deadline := time.After(time.Second)
	for {
		select {
		case c := <-got:
			if c == 4 {
				cancel()
				<-done
				return
			}
		case <-deadline:
			t.Fatal("poller never observed the updated count")
		}
	}
}
