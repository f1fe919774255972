package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmylchreest/chromascale/internal/security"
)

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/art.svg":
			w.Write([]byte(`<svg><g id="_x31_"/></svg>`))
		case "/big.svg":
			w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	opts := FetchOptions{Client: srv.Client(), SkipURLValidation: true}

	data, err := Fetch(context.Background(), srv.URL+"/art.svg", opts)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(string(data), `_x31_`) {
		t.Errorf("Fetch() = %q", data)
	}
	if !strings.HasPrefix(gotUA, "chromascale/") {
		t.Errorf("User-Agent = %q", gotUA)
	}

	if _, err := Fetch(context.Background(), srv.URL+"/missing.svg", opts); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Fetch(missing) error = %v, want 404", err)
	}

	opts.MaxBytes = 16
	if _, err := Fetch(context.Background(), srv.URL+"/big.svg", opts); !errors.Is(err, security.ErrSizeLimit) {
		t.Errorf("Fetch(big) error = %v, want ErrSizeLimit", err)
	}
}

func TestFetchRejectsPlainHTTP(t *testing.T) {
	if _, err := Fetch(context.Background(), "http://example.com/art.svg", FetchOptions{}); err == nil {
		t.Error("Fetch() accepted a plain HTTP URL")
	}
}
