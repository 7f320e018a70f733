package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lumaxtec/site-backend/domain/content"
)

// Source supplies the language-partitioned product catalog for the public
// read path. The live store is the primary source; an HTTP source can point
// at a remote catalog endpoint during migrations.
type Source interface {
	Catalog(ctx context.Context) (Catalog, error)
}

// LiveSource reads from the record store.
type LiveSource struct {
	store *Store
}

// NewLiveSource wraps a product store as a catalog source.
func NewLiveSource(store *Store) *LiveSource {
	return &LiveSource{store: store}
}

// Catalog fetches all active rows and partitions them by language.
func (s *LiveSource) Catalog(ctx context.Context) (Catalog, error) {
	rows, err := s.store.FetchAll(ctx)
	if err != nil {
		return Catalog{}, err
	}
	return Partition(rows), nil
}

// HTTPSource reads the catalog from a remote JSON endpoint. A misconfigured
// serverless upstream answers with an HTML error page and a 200, so the
// content type is checked alongside the status code; every mismatch is
// reported as the store being unavailable so the caller can fall back.
type HTTPSource struct {
	client *http.Client
	url    string
}

// NewHTTPSource creates a catalog source for a remote endpoint.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
	}
}

// Catalog fetches and decodes the remote catalog.
func (s *HTTPSource) Catalog(ctx context.Context) (Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Catalog{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", content.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Catalog{}, fmt.Errorf("%w: upstream returned status %d", content.ErrUpstreamUnavailable, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return Catalog{}, fmt.Errorf("%w: upstream returned content-type %q", content.ErrUpstreamUnavailable, ct)
	}

	var cat Catalog
	if err := json.NewDecoder(resp.Body).Decode(&cat); err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", content.ErrUpstreamUnavailable, err)
	}
	if cat.DE == nil {
		cat.DE = []Product{}
	}
	if cat.EN == nil {
		cat.EN = []Product{}
	}
	return cat.Canonicalize(), nil
}
