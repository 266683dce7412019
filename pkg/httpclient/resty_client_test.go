package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("method = %s, want PUT", r.Method)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "secret" {
			t.Fatalf("basic auth = %s/%s ok=%v", user, pass, ok)
		}
		if got := r.Header.Get("X-Custom"); got != "1" {
			t.Fatalf("X-Custom = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"k":"v"}` {
			t.Fatalf("body = %s", body)
		}
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("done"))
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.Do(context.Background(), Request{
		Method:    http.MethodPut,
		URL:       srv.URL,
		Headers:   map[string]string{"X-Custom": "1", "Content-Type": "application/json"},
		BasicAuth: &BasicAuth{Username: "user", Password: "secret"},
		Body:      map[string]string{"k": "v"},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode() != http.StatusAccepted {
		t.Fatalf("status = %d", resp.StatusCode())
	}
	if string(resp.Body()) != "done" {
		t.Fatalf("body = %s", resp.Body())
	}
}
