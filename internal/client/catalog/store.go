// Package catalog owns the client-side copy of the product catalog. All other
// client components read products through the Store; none of them touch the
// network or the page directly.
package catalog

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/azadstore/storefront/internal/domain"
)

// Fetcher retrieves the catalog document from the server.
// *apiclient.Client satisfies it.
type Fetcher interface {
	FetchCatalog(ctx context.Context) (domain.Catalog, error)
}

// DocumentSource supplies the rendered storefront page used as the scrape
// fallback when the server fetch fails.
type DocumentSource func() (io.Reader, error)

// Store is the process-scoped catalog holder.
type Store struct {
	fetcher  Fetcher
	fallback DocumentSource
	logger   *zap.Logger

	mu      sync.RWMutex
	catalog domain.Catalog
}

// NewStore wires the fetcher and the optional scrape fallback.
func NewStore(fetcher Fetcher, fallback DocumentSource, logger *zap.Logger) (*Store, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("catalog: fetcher is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		fetcher:  fetcher,
		fallback: fallback,
		logger:   logger,
		catalog:  domain.Catalog{},
	}, nil
}

// Load fetches the catalog, falling back to scraping the rendered page when
// the fetch fails. Load never returns an error: the worst outcome is an empty
// catalog, which downstream renderers handle as "no products".
func (s *Store) Load(ctx context.Context) {
	catalog, err := s.fetcher.FetchCatalog(ctx)
	if err == nil {
		s.replace(catalog)
		return
	}
	s.logger.Warn("catalog fetch failed, scraping rendered page", zap.Error(err))

	if s.fallback == nil {
		s.replace(domain.Catalog{})
		return
	}
	doc, err := s.fallback()
	if err != nil {
		s.logger.Warn("fallback document unavailable", zap.Error(err))
		s.replace(domain.Catalog{})
		return
	}
	scraped, err := ScrapeDocument(doc)
	if err != nil {
		s.logger.Warn("fallback scrape failed", zap.Error(err))
		scraped = domain.Catalog{}
	}
	s.replace(scraped)
}

// Get returns the product for id plus whether it exists.
func (s *Store) Get(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.catalog[id]
	return product, ok
}

// All returns a copy of the current catalog.
func (s *Store) All() domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.Catalog, len(s.catalog))
	for id, product := range s.catalog {
		out[id] = product
	}
	return out
}

// ValidIDs returns the sorted list of known product ids.
func (s *Store) ValidIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.catalog))
	for id := range s.catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) replace(catalog domain.Catalog) {
	if catalog == nil {
		catalog = domain.Catalog{}
	}
	s.mu.Lock()
	s.catalog = catalog
	s.mu.Unlock()
}

// ScrapeDocument reconstructs a minimal catalog from rendered product cards:
// name from the card heading, price and category badge from their classed
// elements. Cards without a data-id are skipped.
func ScrapeDocument(r io.Reader) (domain.Catalog, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse document: %w", err)
	}

	catalog := domain.Catalog{}
	doc.Find(".product-card").Each(func(_ int, card *goquery.Selection) {
		id, ok := card.Attr("data-id")
		if !ok || strings.TrimSpace(id) == "" {
			return
		}
		name := strings.TrimSpace(card.Find("h3").First().Text())
		if name == "" {
			name = "Unknown"
		}
		price := strings.TrimSpace(card.Find(".price").First().Text())
		if price == "" {
			price = "N/A"
		}
		catalog[strings.TrimSpace(id)] = domain.Product{
			Name:     name,
			Price:    price,
			Category: strings.TrimSpace(card.Find(".product-badge").First().Text()),
		}
	})
	return catalog, nil
}
