package unsplash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID test-key" {
			t.Errorf("Authorization = %q", got)
		}
		q := r.URL.Query()
		if q.Get("query") != "mountain lake" {
			t.Errorf("query = %q", q.Get("query"))
		}
		if q.Get("page") != "2" {
			t.Errorf("page = %q", q.Get("page"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total": 24,
			"total_pages": 2,
			"results": [{
				"id": "abc",
				"alt_description": "a lake at dawn",
				"urls": {"regular": "https://img/r", "small": "https://img/s", "thumb": "https://img/t"},
				"user": {"name": "Jane Doe"}
			}]
		}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	res, err := c.Search(context.Background(), "mountain lake", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Results) != 1 {
		t.Fatalf("got %d results", len(res.Results))
	}
	p := res.Results[0]
	if p.Alt() != "a lake at dawn" {
		t.Errorf("Alt = %q", p.Alt())
	}
	if p.Attribution() != "Photo by Jane Doe on Unsplash" {
		t.Errorf("Attribution = %q", p.Attribution())
	}
	if p.URLs.Regular != "https://img/r" {
		t.Errorf("Regular URL = %q", p.URLs.Regular)
	}
}

func TestSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":["OAuth error"]}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("bad-key", srv.URL)
	if _, err := c.Search(context.Background(), "x", 1); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
