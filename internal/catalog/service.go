// internal/catalog/service.go
package catalog

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/upstream"
)

// Display caps for the home page sections
const (
	homeCategoryLimit = 6
	homeBrandLimit    = 6
	homeProductLimit  = 8
)

// Catalog is the read-only slice of the upstream the aggregator fans out to
type Catalog interface {
	Products(ctx context.Context, categoryID string) ([]upstream.Product, error)
	Brands(ctx context.Context) ([]upstream.Ref, error)
	Categories(ctx context.Context) ([]upstream.Ref, error)
}

// HomeContent is the home page aggregate. A section whose fetch failed is an
// empty slice, never null, and never blocks the other sections.
type HomeContent struct {
	Categories []upstream.Ref     `json:"categories"`
	Brands     []upstream.Ref     `json:"brands"`
	Products   []upstream.Product `json:"products"`
}

// Service aggregates catalog reads for the home view
type Service struct {
	catalog Catalog
	logger  *logrus.Logger
}

// NewService creates a catalog service
func NewService(catalog Catalog, logger *logrus.Logger) *Service {
	return &Service{
		catalog: catalog,
		logger:  logger,
	}
}

// Home issues the three section fetches concurrently. Each section fails
// independently; there is no joint success/failure barrier.
func (s *Service) Home(ctx context.Context) *HomeContent {
	content := &HomeContent{
		Categories: []upstream.Ref{},
		Brands:     []upstream.Ref{},
		Products:   []upstream.Product{},
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		categories, err := s.catalog.Categories(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("home: categories section failed")
			return
		}
		if len(categories) > homeCategoryLimit {
			categories = categories[:homeCategoryLimit]
		}
		content.Categories = categories
	}()

	go func() {
		defer wg.Done()
		brands, err := s.catalog.Brands(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("home: brands section failed")
			return
		}
		if len(brands) > homeBrandLimit {
			brands = brands[:homeBrandLimit]
		}
		content.Brands = brands
	}()

	go func() {
		defer wg.Done()
		products, err := s.catalog.Products(ctx, "")
		if err != nil {
			s.logger.WithError(err).Warn("home: products section failed")
			return
		}
		if len(products) > homeProductLimit {
			products = products[:homeProductLimit]
		}
		content.Products = products
	}()

	wg.Wait()
	return content
}
