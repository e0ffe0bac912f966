package culler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/bmk-dev/bmk/internal/culler"
	"github.com/bmk-dev/bmk/internal/model"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/error", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/gets-only", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckURLs_Statuses(t *testing.T) {
	srv := newServer(t)
	bookmarks := []model.Bookmark{
		{Name: "ok", URL: srv.URL + "/ok"},
		{Name: "missing", URL: srv.URL + "/missing"},
		{Name: "gone", URL: srv.URL + "/gone"},
		{Name: "error", URL: srv.URL + "/error"},
		{Name: "redirect", URL: srv.URL + "/redirect"},
		{Name: "gets-only", URL: srv.URL + "/gets-only"},
	}

	results := culler.CheckURLs(context.Background(), bookmarks, culler.Options{Concurrency: 3, Timeout: time.Second})

	assert.Equal(t, len(results), len(bookmarks))
	want := []struct {
		status culler.Status
		code   int
	}{
		{culler.Healthy, 200},
		{culler.Dead, 404},
		{culler.Dead, 410},
		{culler.Unreachable, 500},
		{culler.Healthy, 200},
		{culler.Healthy, 200},
	}
	for i, w := range want {
		assert.Equal(t, results[i].Bookmark.Name, bookmarks[i].Name)
		assert.Check(t, is.Equal(results[i].Status, w.status), bookmarks[i].Name)
		assert.Check(t, is.Equal(results[i].StatusCode, w.code), bookmarks[i].Name)
	}
	assert.Equal(t, results[3].Error, "Internal Server Error")
}

func TestCheckURLs_ExcludedDomain(t *testing.T) {
	srv := newServer(t)
	bookmarks := []model.Bookmark{{Name: "private", URL: srv.URL + "/missing"}}

	results := culler.CheckURLs(context.Background(), bookmarks, culler.Options{
		ExcludeDomains: []string{"127.0.0.1"},
	})

	assert.Equal(t, results[0].Status, culler.Unreachable)
	assert.Equal(t, results[0].Error, "Possibly private (auth required)")
}

func TestCheckURLs_Unreachable(t *testing.T) {
	srv := newServer(t)
	url := srv.URL + "/ok"
	srv.Close()

	results := culler.CheckURLs(context.Background(), []model.Bookmark{
		{Name: "closed", URL: url},
		{Name: "bad-scheme", URL: "notaurl"},
	}, culler.Options{Timeout: time.Second})

	assert.Equal(t, results[0].Status, culler.Unreachable)
	assert.Equal(t, results[0].StatusCode, 0)
	assert.Equal(t, results[0].Error, "Connection refused")

	assert.Equal(t, results[1].Status, culler.Unreachable)
	assert.Equal(t, results[1].Error, "Unsupported URL")
}

func TestCheckURLs_Timeout(t *testing.T) {
	srv := newServer(t)

	results := culler.CheckURLs(context.Background(), []model.Bookmark{
		{Name: "slow", URL: srv.URL + "/slow"},
	}, culler.Options{Timeout: 50 * time.Millisecond})

	assert.Equal(t, results[0].Status, culler.Unreachable)
	assert.Equal(t, results[0].Error, "Timeout")
}

func TestCheckURLs_Progress(t *testing.T) {
	srv := newServer(t)
	bookmarks := make([]model.Bookmark, 5)
	for i := range bookmarks {
		bookmarks[i] = model.Bookmark{Name: string(rune('a' + i)), URL: srv.URL + "/ok"}
	}

	var mu sync.Mutex
	var calls []int
	culler.CheckURLs(context.Background(), bookmarks, culler.Options{
		Concurrency: 2,
		OnProgress: func(completed, total int) {
			mu.Lock()
			defer mu.Unlock()
			assert.Check(t, is.Equal(total, 5))
			calls = append(calls, completed)
		},
	})

	assert.DeepEqual(t, calls, []int{1, 2, 3, 4, 5})
}

func TestCheckURLs_Empty(t *testing.T) {
	assert.Assert(t, culler.CheckURLs(context.Background(), nil, culler.Options{}) == nil)
}

func TestGroup(t *testing.T) {
	results := []culler.Result{
		{Bookmark: model.Bookmark{Name: "a"}, Status: culler.Healthy},
		{Bookmark: model.Bookmark{Name: "b"}, Status: culler.Dead},
		{Bookmark: model.Bookmark{Name: "c"}, Status: culler.Healthy},
	}

	groups := culler.Group(results)

	assert.Equal(t, len(groups[culler.Healthy]), 2)
	assert.Equal(t, groups[culler.Healthy][1].Bookmark.Name, "c")
	assert.Equal(t, len(groups[culler.Dead]), 1)
	assert.Equal(t, len(groups[culler.Unreachable]), 0)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, culler.Healthy.String(), "healthy")
	assert.Equal(t, culler.Dead.String(), "dead")
	assert.Equal(t, culler.Unreachable.String(), "unreachable")
}
