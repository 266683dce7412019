package graylog

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/grayops-hq/grayctl/pkg/httpclient"
)

type fakeResponse struct {
	status int
	body   []byte
}

func (f fakeResponse) Body() []byte    { return f.body }
func (f fakeResponse) StatusCode() int { return f.status }

// fakeTransport records the last request and answers with a fixed response.
type fakeTransport struct {
	req    httpclient.Request
	calls  int
	status int
	body   []byte
	err    error
}

func (f *fakeTransport) Do(_ context.Context, req httpclient.Request) (httpclient.Response, error) {
	f.req = req
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return fakeResponse{status: f.status, body: f.body}, nil
}

func newTestClient(t *testing.T, baseURL string, transport httpclient.Client) *Client {
	t.Helper()
	c, err := New("abc123", Options{BaseURL: baseURL, Transport: transport})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestResolveJoinSemantics(t *testing.T) {
	cases := []struct {
		base string
		op   string
		want string
	}{
		{"http://localhost:9000/api/", "users", "http://localhost:9000/api/users"},
		{"http://localhost:9000/api/", "users/alice", "http://localhost:9000/api/users/alice"},
		// Without a trailing slash the last segment is replaced, per
		// standard relative-URL resolution.
		{"http://localhost:9000/api", "users", "http://localhost:9000/users"},
		// A leading slash overrides the base path.
		{"http://localhost:9000/api/", "/streams", "http://localhost:9000/streams"},
	}

	for _, tc := range cases {
		c := newTestClient(t, tc.base, &fakeTransport{status: 200, body: []byte("{}")})
		got, err := c.resolve(tc.op)
		if err != nil {
			t.Fatalf("resolve(%q): %v", tc.op, err)
		}
		if got != tc.want {
			t.Fatalf("resolve(%q) against %q = %q, want %q", tc.op, tc.base, got, tc.want)
		}
	}
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	if _, err := New("abc123", Options{BaseURL: "://nope"}); err == nil {
		t.Fatalf("expected error for unparseable base url")
	}
	if _, err := New("abc123", Options{BaseURL: "api/"}); err == nil {
		t.Fatalf("expected error for relative base url")
	}
}

func TestGetSendsAuthAndHeaders(t *testing.T) {
	transport := &fakeTransport{status: 200, body: []byte(`{}`)}
	c := newTestClient(t, "http://localhost:9000/api/", transport)

	if _, _, err := c.Get(context.Background(), "users"); err != nil {
		t.Fatalf("Get: %v", err)
	}

	req := transport.req
	if req.Method != http.MethodGet {
		t.Fatalf("method = %s, want GET", req.Method)
	}
	if req.BasicAuth == nil || req.BasicAuth.Username != "abc123" || req.BasicAuth.Password != "token" {
		t.Fatalf("basic auth = %#v, want token/\"token\" pair", req.BasicAuth)
	}
	if got := req.Headers["Content-Type"]; got != "application/json" {
		t.Fatalf("Content-Type = %q", got)
	}
	if got := req.Headers["X-Requested-By"]; got != "cli" {
		t.Fatalf("X-Requested-By = %q", got)
	}
}

func TestGetReturnsResultOnlyOn200(t *testing.T) {
	for _, status := range []int{100, 201, 204, 301, 400, 401, 403, 404, 500, 599} {
		transport := &fakeTransport{status: status, body: []byte(`{"x":1}`)}
		c := newTestClient(t, "http://localhost:9000/api/", transport)

		_, ok, err := c.Get(context.Background(), "users")
		if err != nil {
			t.Fatalf("status %d: unexpected error: %v", status, err)
		}
		if ok {
			t.Fatalf("status %d: expected absent result", status)
		}
	}

	transport := &fakeTransport{status: 200, body: []byte(`{"x":1}`)}
	c := newTestClient(t, "http://localhost:9000/api/", transport)
	res, ok, err := c.Get(context.Background(), "users")
	if err != nil || !ok {
		t.Fatalf("status 200: ok=%v err=%v", ok, err)
	}
	if res.Get("x").Int() != 1 {
		t.Fatalf("parsed body = %s", res.Raw)
	}
}

func TestPutAndDeleteReturnRawStatus(t *testing.T) {
	for _, status := range []int{100, 200, 201, 204, 301, 400, 401, 403, 418, 500, 599} {
		transport := &fakeTransport{status: status}
		c := newTestClient(t, "http://localhost:9000/api/", transport)

		got, err := c.Put(context.Background(), "users/alice/permissions", map[string]any{"permissions": []string{}})
		if err != nil {
			t.Fatalf("Put status %d: %v", status, err)
		}
		if got != status {
			t.Fatalf("Put returned %d, want %d", got, status)
		}

		got, err = c.Delete(context.Background(), "users/id/42")
		if err != nil {
			t.Fatalf("Delete status %d: %v", status, err)
		}
		if got != status {
			t.Fatalf("Delete returned %d, want %d", got, status)
		}
	}
}

func TestPutSerializesPayload(t *testing.T) {
	transport := &fakeTransport{status: 200}
	c := newTestClient(t, "http://localhost:9000/api/", transport)

	if _, err := c.Put(context.Background(), "users/alice/permissions", permissionsUpdate{Permissions: []string{"read"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	raw, err := json.Marshal(transport.req.Body)
	if err != nil {
		t.Fatalf("marshal recorded body: %v", err)
	}
	if string(raw) != `{"permissions":["read"]}` {
		t.Fatalf("body = %s", raw)
	}
}

// mapCache is an in-memory Cache for tests.
type mapCache struct {
	entries map[string][]byte
}

func (m *mapCache) Get(key string) ([]byte, bool, error) {
	body, ok := m.entries[key]
	return body, ok, nil
}

func (m *mapCache) Put(key string, body []byte) error {
	m.entries[key] = body
	return nil
}

func TestGetUsesCache(t *testing.T) {
	transport := &fakeTransport{status: 200, body: []byte(`{"streams":[]}`)}
	store := &mapCache{entries: map[string][]byte{}}
	c, err := New("abc123", Options{
		BaseURL:   "http://localhost:9000/api/",
		Transport: transport,
		Cache:     store,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, ok, err := c.Get(context.Background(), "streams"); err != nil || !ok {
			t.Fatalf("Get #%d: ok=%v err=%v", i, ok, err)
		}
	}
	if transport.calls != 1 {
		t.Fatalf("transport called %d times, want 1 (cache hit expected)", transport.calls)
	}
}
