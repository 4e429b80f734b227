// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// The content store runs on the in-memory remote client and Valkey is
// replaced by miniredis, so no external services are needed.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"brsite/internal/cache"
	"brsite/internal/content"
	"brsite/internal/middleware"
	"brsite/internal/remote"
	"brsite/internal/session"
	"brsite/internal/storage"
	"brsite/internal/store"
)

const (
	testAdminEmail    = "admin@brsite.local"
	testAdminPassword = "admin-password"
)

// fakeBlob records uploads and returns a predictable URL.
type fakeBlob struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{objects: map[string][]byte{}, types: map[string]string{}}
}

func (b *fakeBlob) Put(_ context.Context, bucket, key, contentType string, body io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[bucket+"/"+key] = data
	b.types[bucket+"/"+key] = contentType
	return "https://cdn.test/" + bucket + "/" + key, nil
}

// memCacheLog implements CacheLogger in memory.
type memCacheLog struct {
	mu      sync.Mutex
	entries []store.CacheLogEntry
}

func (l *memCacheLog) Log(_ context.Context, entityType string, entityID int64, action string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, store.CacheLogEntry{
		ID:            int64(len(l.entries) + 1),
		EntityType:    entityType,
		EntityID:      entityID,
		Action:        action,
		InvalidatedAt: time.Now(),
	})
}

func (l *memCacheLog) RecentEntries(_ context.Context, limit int) ([]store.CacheLogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []store.CacheLogEntry{}
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}

func (l *memCacheLog) actions() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		out = append(out, e.EntityType+":"+e.Action)
	}
	return out
}

// memRevisions implements RevisionReader in memory.
type memRevisions struct {
	revs []store.DocumentRevision
}

func (m *memRevisions) List(_ context.Context, limit int) ([]store.DocumentRevision, error) {
	out := []store.DocumentRevision{}
	for _, r := range m.revs {
		if len(out) == limit {
			break
		}
		r.Content = nil
		out = append(out, r)
	}
	return out, nil
}

func (m *memRevisions) FindByID(_ context.Context, id int64) (*store.DocumentRevision, error) {
	for _, r := range m.revs {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Mini      *miniredis.Miniredis
	Valkey    *redis.Client
	Remote    *remote.Memory
	Blob      *fakeBlob
	Store     *content.Store
	Cache     *cache.ResponseCache
	Sessions  *session.Store
	Users     *store.MemoryUsers
	CacheLog  *memCacheLog
	Revisions *memRevisions
	Admin     *Admin
	Auth      *Auth
	Public    *Public
}

// newTestEnv creates a complete test environment with a loaded store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, remote.NewMemory)
}

// newTestEnvWith builds the environment on a custom remote client
// constructor, e.g. remote.NewFallback.
func newTestEnvWith(t *testing.T, newClient func(blob storage.Blob) *remote.Memory) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	vk := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { vk.Close() })

	blob := newFakeBlob()
	client := newClient(blob)
	cs := content.NewStore(client, content.MustDefaultDocument())
	if err := cs.Load(context.Background()); err != nil {
		t.Fatalf("load content: %v", err)
	}

	users, err := store.NewMemoryUsers(testAdminEmail, testAdminPassword)
	if err != nil {
		t.Fatalf("NewMemoryUsers: %v", err)
	}

	rc := cache.NewResponseCache(vk, time.Minute)
	sessions := session.NewStore(vk, false)
	cacheLog := &memCacheLog{}
	revisions := &memRevisions{}

	return &testEnv{
		Mini:      mr,
		Valkey:    vk,
		Remote:    client,
		Blob:      blob,
		Store:     cs,
		Cache:     rc,
		Sessions:  sessions,
		Users:     users,
		CacheLog:  cacheLog,
		Revisions: revisions,
		Admin:     NewAdmin(cs, rc, cacheLog, revisions),
		Auth:      NewAuth(sessions, users),
		Public:    NewPublic(cs, rc),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, sess *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, sess)
}

// testSession creates a session.Data for tests.
func testSession(userID uuid.UUID, email string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Admin",
		Role:        "admin",
		TwoFADone:   twoFADone,
	}
}

// withURLParams attaches chi route parameters to the request.
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonRequest builds a request with a JSON-encoded body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody decodes a JSON response body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// errorMessage returns the "error" field of a JSON error response.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, rec, &body)
	return body["error"]
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
