package graylog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStreamsReturnsStreamsField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/streams" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "abc123" || pass != "token" {
			t.Fatalf("basic auth = %s/%s ok=%v", user, pass, ok)
		}
		if got := r.Header.Get("X-Requested-By"); got != "cli" {
			t.Fatalf("X-Requested-By = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total":1,"streams":[{"id":"1","title":"test"}]}`))
	}))
	defer srv.Close()

	c, err := New("abc123", Options{BaseURL: srv.URL + "/api/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	streams, err := c.Streams(context.Background())
	if err != nil {
		t.Fatalf("Streams: %v", err)
	}
	if len(streams) != 1 || streams[0].ID != "1" || streams[0].Title != "test" {
		t.Fatalf("streams = %#v", streams)
	}
}

func TestStreamsErrorsOnNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New("abc123", Options{BaseURL: srv.URL + "/api/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Streams(context.Background()); err == nil {
		t.Fatalf("expected error when server does not answer 200")
	}
}

func TestStreamFetchesByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/streams/abc" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"id":"abc","title":"audit trail","disabled":true}`))
	}))
	defer srv.Close()

	c, err := New("abc123", Options{BaseURL: srv.URL + "/api/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	stream, ok, err := c.Stream(context.Background(), "abc")
	if err != nil || !ok {
		t.Fatalf("Stream: ok=%v err=%v", ok, err)
	}
	if stream.Title != "audit trail" || !stream.Disabled {
		t.Fatalf("stream = %#v", stream)
	}

	_, ok, err = c.Stream(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Stream missing: %v", err)
	}
	if ok {
		t.Fatalf("expected absent stream for 404")
	}
}
