package product

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"

	"github.com/lumaxtec/site-backend/domain/content"
)

//go:embed snapshot.json
var snapshotJSON []byte

// Snapshot returns the build-time catalog snapshot. It runs through the same
// category canonicalization as live data so clients cannot tell which source
// served the response. Degraded-mode reads only; writes never fall back.
func Snapshot() (Catalog, error) {
	var cat Catalog
	if err := json.Unmarshal(snapshotJSON, &cat); err != nil {
		return Catalog{}, err
	}
	if cat.DE == nil {
		cat.DE = []Product{}
	}
	if cat.EN == nil {
		cat.EN = []Product{}
	}
	return cat.Canonicalize(), nil
}

// CatalogOrFallback resolves the catalog from the primary source, degrading
// to the snapshot when the store is unreachable. The second return reports
// whether the snapshot served the request. Any other failure is returned
// as-is.
func CatalogOrFallback(ctx context.Context, src Source) (Catalog, bool, error) {
	cat, err := src.Catalog(ctx)
	if err == nil {
		return cat, false, nil
	}
	if !errors.Is(err, content.ErrUpstreamUnavailable) {
		return Catalog{}, false, err
	}
	snap, snapErr := Snapshot()
	if snapErr != nil {
		return Catalog{}, false, err
	}
	return snap, true, nil
}
