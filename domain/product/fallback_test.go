package product

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lumaxtec/site-backend/domain/content"
)

func TestSnapshotIsCanonicalized(t *testing.T) {
	cat, err := Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(cat.DE) == 0 || len(cat.EN) == 0 {
		t.Fatalf("snapshot sides de=%d en=%d, both must be non-empty", len(cat.DE), len(cat.EN))
	}
	for _, p := range cat.DE {
		if want, ok := content.CanonicalCategory(p.ContentID, content.LanguageDE); ok && p.Category != want {
			t.Errorf("de %q category = %q, want %q", p.ContentID, p.Category, want)
		}
	}
}

func TestHTTPSourceServesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"de":[{"contentId":"mvpulse","language":"de","name":"MVpulse","category":"alt"}],"en":[]}`))
	}))
	defer srv.Close()

	cat, err := NewHTTPSource(srv.URL).Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(cat.DE) != 1 {
		t.Fatalf("de side = %d, want 1", len(cat.DE))
	}
	// Remote data runs through the same category rules as live rows.
	if cat.DE[0].Category != "Machine Vision Lasermodule" {
		t.Errorf("category = %q, want the canonical label", cat.DE[0].Category)
	}
}

func TestHTTPSourceRejectsHTMLErrorPage(t *testing.T) {
	// A misconfigured upstream answers 200 with an HTML page.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>Service unavailable</body></html>"))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Catalog(context.Background())
	if !errors.Is(err, content.ErrUpstreamUnavailable) {
		t.Fatalf("Catalog = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestHTTPSourceRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Catalog(context.Background())
	if !errors.Is(err, content.ErrUpstreamUnavailable) {
		t.Fatalf("Catalog = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestHTTPSourceNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewHTTPSource(srv.URL).Catalog(context.Background())
	if !errors.Is(err, content.ErrUpstreamUnavailable) {
		t.Fatalf("Catalog = %v, want ErrUpstreamUnavailable", err)
	}
}

type stubSource struct {
	cat Catalog
	err error
}

func (s stubSource) Catalog(context.Context) (Catalog, error) {
	return s.cat, s.err
}

func TestCatalogOrFallback(t *testing.T) {
	live := Catalog{
		DE: []Product{{ContentID: "mvpulse", Language: "de"}},
		EN: []Product{},
	}

	t.Run("healthy source is passed through", func(t *testing.T) {
		cat, degraded, err := CatalogOrFallback(context.Background(), stubSource{cat: live})
		if err != nil {
			t.Fatalf("CatalogOrFallback: %v", err)
		}
		if degraded {
			t.Error("degraded = true for a healthy source")
		}
		if len(cat.DE) != 1 || cat.DE[0].ContentID != "mvpulse" {
			t.Errorf("catalog = %+v, want the live data", cat)
		}
	})

	t.Run("unavailable source degrades to the snapshot", func(t *testing.T) {
		cat, degraded, err := CatalogOrFallback(context.Background(),
			stubSource{err: content.ErrUpstreamUnavailable})
		if err != nil {
			t.Fatalf("CatalogOrFallback: %v", err)
		}
		if !degraded {
			t.Error("degraded = false, want true")
		}
		if len(cat.DE) == 0 {
			t.Error("snapshot catalog is empty")
		}
	})

	t.Run("other failures are not masked", func(t *testing.T) {
		boom := errors.New("boom")
		_, degraded, err := CatalogOrFallback(context.Background(), stubSource{err: boom})
		if !errors.Is(err, boom) {
			t.Fatalf("CatalogOrFallback = %v, want the original error", err)
		}
		if degraded {
			t.Error("degraded = true for a non-availability failure")
		}
	})
}
