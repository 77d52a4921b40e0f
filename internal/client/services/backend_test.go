package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/fusion-condo/fusion/internal/client/client"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a chi-routed stand-in for the Fusion API. It records the
// last body and Authorization header per route and serves canned answers.
type fakeBackend struct {
	srv *httptest.Server

	mu         sync.Mutex
	bodies     map[string][]byte
	authz      map[string]string
	hits       map[string]int
	me         string
	authAnswer string
	uploadCode int
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{
		bodies:     map[string][]byte{},
		authz:      map[string]string{},
		hits:       map[string]int{},
		me:         `{"id":1,"full_name":"Admin","user_type":"admin"}`,
		authAnswer: `{"token":"tok-new","user":{"id":10}}`,
		uploadCode: http.StatusOK,
	}

	r := chi.NewRouter()
	r.Post("/auth/login", fb.answer("login", func() (int, string) { return http.StatusOK, fb.authAnswer }))
	r.Post("/auth/register", fb.answer("register", func() (int, string) { return http.StatusOK, fb.authAnswer }))
	r.Post("/register/student", fb.answer("student", func() (int, string) { return http.StatusCreated, fb.authAnswer }))
	r.Post("/register/instructor", fb.answer("instructor", func() (int, string) { return http.StatusCreated, fb.authAnswer }))
	r.Post("/admin/users", fb.answer("admin-create", func() (int, string) { return http.StatusCreated, `{"id":99}` }))
	r.Put("/api/{table}/{id}", func(w http.ResponseWriter, r *http.Request) {
		key := "update " + chi.URLParam(r, "table") + "/" + chi.URLParam(r, "id")
		fb.answer(key, func() (int, string) { return http.StatusOK, `{"ok":true}` })(w, r)
	})
	r.Get("/me", fb.answer("me-get", func() (int, string) { return http.StatusOK, fb.me }))
	r.Put("/me", fb.answer("me-put", func() (int, string) { return http.StatusOK, `{}` }))
	r.Post("/upload", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.hits["upload"]++
		code := fb.uploadCode
		fb.mu.Unlock()
		if code != http.StatusOK {
			w.WriteHeader(code)
			return
		}
		if _, _, err := r.FormFile("file"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, `{"url":"/uploads/avatar-1"}`)
	})

	fb.srv = httptest.NewServer(r)
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) answer(key string, reply func() (int, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.bodies[key] = body
		fb.authz[key] = r.Header.Get("Authorization")
		fb.hits[key]++
		code, out := reply()
		fb.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = io.WriteString(w, out)
	}
}

func (fb *fakeBackend) body(t *testing.T, key string) map[string]any {
	t.Helper()
	fb.mu.Lock()
	raw, ok := fb.bodies[key]
	fb.mu.Unlock()
	require.True(t, ok, "no request recorded for %q", key)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func (fb *fakeBackend) hitCount(key string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.hits[key]
}

func (fb *fakeBackend) authHeader(key string) string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.authz[key]
}

func newAPIClient(t *testing.T, fb *fakeBackend) *client.HTTPClient {
	t.Helper()
	c, err := client.New(context.Background(), fb.srv.URL, client.Options{})
	require.NoError(t, err)
	return c
}
