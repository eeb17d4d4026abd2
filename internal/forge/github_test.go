package forge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octocat/hello" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"description": "A test repository"}`))
	}))
	defer srv.Close()

	g := NewGitHub(WithBaseURL(srv.URL))

	got, err := g.Description(context.Background(), "octocat/hello")
	if err != nil {
		t.Fatalf("Description failed: %v", err)
	}
	if got != "A test repository" {
		t.Errorf("description = %q", got)
	}
}

func TestDescription_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	g := NewGitHub(WithBaseURL(srv.URL))

	if _, err := g.Description(context.Background(), "nobody/nothing"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestDescription_BadInput(t *testing.T) {
	g := NewGitHub()
	if _, err := g.Description(context.Background(), "not-a-repo"); err == nil {
		t.Error("expected error for malformed owner/repo")
	}
}

func TestDescription_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	g := NewGitHub(WithBaseURL(srv.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := g.Description(ctx, "octocat/hello"); err == nil {
		t.Error("expected timeout error")
	}
}

func TestDescription_AuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"description": ""}`))
	}))
	defer srv.Close()

	g := NewGitHub(WithBaseURL(srv.URL), WithToken("tok"))
	if _, err := g.Description(context.Background(), "a/b"); err != nil {
		t.Fatalf("Description failed: %v", err)
	}
}
