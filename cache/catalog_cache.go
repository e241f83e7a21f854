package cache

import (
	"sync"
	"time"

	"github.com/fitgear/fitgear-api/models"
)

const CatalogTTL = 5 * time.Minute

// ── Catalog cache ────────────────────────────────────────────────────────────
// Holds the full ordered product list. Product listing, product detail and
// checkout item lookups all read from this.

type catalogEntry struct {
	products  []models.Product
	fetchedAt time.Time
}

var (
	catalogMu    sync.RWMutex
	catalogCache *catalogEntry
)

// GetProducts returns a copy of the cached catalog while it is fresh.
func GetProducts() ([]models.Product, bool) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	if catalogCache != nil && time.Since(catalogCache.fetchedAt) < CatalogTTL {
		out := make([]models.Product, len(catalogCache.products))
		copy(out, catalogCache.products)
		return out, true
	}
	return nil, false
}

func SetProducts(products []models.Product) {
	stored := make([]models.Product, len(products))
	copy(stored, products)

	catalogMu.Lock()
	defer catalogMu.Unlock()
	catalogCache = &catalogEntry{products: stored, fetchedAt: time.Now()}
}

// ── Invalidate (call after any review or seed write) ─────────────────────────

func InvalidateCatalog() {
	catalogMu.Lock()
	catalogCache = nil
	catalogMu.Unlock()
}
