package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/teohome/storefront-backend/pkg/logger"
	"github.com/teohome/storefront-backend/pkg/woo"
)

// Source identifies where catalog reads come from. It is chosen once at
// startup from the configured commerce credentials and never changes while
// the process runs.
type Source string

const (
	SourceLive    Source = "live"
	SourceFixture Source = "fixture"
)

const (
	homepageSectionSize = 4
	maxRelatedProducts  = 4
)

type commerceAPI interface {
	ListProducts(ctx context.Context, params woo.ProductListParams) ([]woo.Product, error)
	GetProductByID(ctx context.Context, id int) (*woo.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*woo.Product, error)
	ListVariations(ctx context.Context, productID int) ([]woo.Variation, error)
	ListCategories(ctx context.Context, params woo.CategoryListParams) ([]woo.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*woo.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*woo.Category, error)
}

// Service answers catalog reads. Live reads that fail fall back to the
// bundled fixtures so the storefront keeps rendering; the fallback is logged
// but never surfaced to the caller.
type Service struct {
	source Source
	api    commerceAPI
	logg   *logger.Logger
}

func NewService(source Source, api commerceAPI, logg *logger.Logger) (*Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("catalog service requires a logger")
	}
	if source == SourceLive && api == nil {
		return nil, fmt.Errorf("catalog service requires a commerce client for the live source")
	}
	if source != SourceLive && source != SourceFixture {
		return nil, fmt.Errorf("unknown catalog source %q", source)
	}
	return &Service{source: source, api: api, logg: logg}, nil
}

// Source reports which data source the service was started with.
func (s *Service) Source() Source {
	return s.source
}

// ListParams narrows a product listing. Category holds a category slug.
type ListParams struct {
	PerPage  int
	Page     int
	Category string
	Featured bool
	OnSale   bool
	OrderBy  string
	Order    string
	Search   string
}

func (p ListParams) fixture() fixtureFilter {
	return fixtureFilter{
		featured: p.Featured,
		onSale:   p.OnSale,
		category: p.Category,
		search:   p.Search,
		perPage:  p.PerPage,
	}
}

// ListProducts returns products matching params, falling back to fixtures
// when the live API cannot answer.
func (s *Service) ListProducts(ctx context.Context, params ListParams) []woo.Product {
	if s.source == SourceFixture {
		return filterFixtureProducts(params.fixture())
	}

	apiParams := woo.ProductListParams{
		PerPage:  params.PerPage,
		Page:     params.Page,
		Featured: params.Featured,
		OnSale:   params.OnSale,
		OrderBy:  params.OrderBy,
		Order:    params.Order,
		Search:   params.Search,
	}
	if params.Category != "" {
		category, err := s.api.GetCategoryBySlug(ctx, params.Category)
		if err != nil {
			s.warnFallback(ctx, "list products", err)
			return filterFixtureProducts(params.fixture())
		}
		apiParams.Category = strconv.Itoa(category.ID)
	}

	products, err := s.api.ListProducts(ctx, apiParams)
	if err != nil {
		s.warnFallback(ctx, "list products", err)
		return filterFixtureProducts(params.fixture())
	}
	return products
}

// GetProduct resolves a product by numeric ID or slug. A missing product
// yields the first fixture product rather than an error; product pages
// always have something to render.
func (s *Service) GetProduct(ctx context.Context, slugOrID string) woo.Product {
	id, slug := splitSlugOrID(slugOrID)

	if s.source == SourceFixture {
		if p := findFixtureProduct(id, slug); p != nil {
			return *p
		}
		return fixtureProducts[0]
	}

	var (
		product *woo.Product
		err     error
	)
	if id > 0 {
		product, err = s.api.GetProductByID(ctx, id)
	} else {
		product, err = s.api.GetProductBySlug(ctx, slug)
	}
	if err != nil {
		s.warnFallback(ctx, "get product", err)
		if p := findFixtureProduct(id, slug); p != nil {
			return *p
		}
		return fixtureProducts[0]
	}
	return *product
}

// ListVariations returns the purchasable variations of a product. Fixture
// products carry no variations; live failures degrade to none.
func (s *Service) ListVariations(ctx context.Context, productID int) []woo.Variation {
	if s.source == SourceFixture {
		return []woo.Variation{}
	}
	variations, err := s.api.ListVariations(ctx, productID)
	if err != nil {
		s.warnFallback(ctx, "list variations", err)
		return []woo.Variation{}
	}
	return variations
}

// ListCategories returns all product categories.
func (s *Service) ListCategories(ctx context.Context) []woo.Category {
	if s.source == SourceFixture {
		return fixtureCategories
	}
	categories, err := s.api.ListCategories(ctx, woo.CategoryListParams{})
	if err != nil {
		s.warnFallback(ctx, "list categories", err)
		return fixtureCategories
	}
	return categories
}

// GetCategory resolves a category by numeric ID or slug, falling back to the
// first fixture category when it cannot be found.
func (s *Service) GetCategory(ctx context.Context, slugOrID string) woo.Category {
	id, slug := splitSlugOrID(slugOrID)

	if s.source == SourceFixture {
		if c := findFixtureCategory(id, slug); c != nil {
			return *c
		}
		return fixtureCategories[0]
	}

	var (
		category *woo.Category
		err      error
	)
	if id > 0 {
		category, err = s.api.GetCategoryByID(ctx, id)
	} else {
		category, err = s.api.GetCategoryBySlug(ctx, slug)
	}
	if err != nil {
		s.warnFallback(ctx, "get category", err)
		if c := findFixtureCategory(id, slug); c != nil {
			return *c
		}
		return fixtureCategories[0]
	}
	return *category
}

// ListRelated returns up to four products related to the given one. Live
// related IDs are fetched individually and failures are skipped.
func (s *Service) ListRelated(ctx context.Context, productID int) []woo.Product {
	if s.source == SourceFixture {
		return fixtureRelated(productID)
	}

	product, err := s.api.GetProductByID(ctx, productID)
	if err != nil {
		s.warnFallback(ctx, "list related", err)
		return fixtureRelated(productID)
	}
	if len(product.RelatedIDs) == 0 {
		return []woo.Product{}
	}

	ids := product.RelatedIDs
	if len(ids) > maxRelatedProducts {
		ids = ids[:maxRelatedProducts]
	}
	related := make([]woo.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.api.GetProductByID(ctx, id)
		if err != nil {
			continue
		}
		related = append(related, *p)
	}
	return related
}

// FeaturedProducts returns the homepage featured section.
func (s *Service) FeaturedProducts(ctx context.Context) []woo.Product {
	return s.ListProducts(ctx, ListParams{Featured: true, PerPage: homepageSectionSize})
}

// NewProducts returns the most recently added products.
func (s *Service) NewProducts(ctx context.Context) []woo.Product {
	if s.source == SourceFixture {
		return filterFixtureProducts(fixtureFilter{perPage: homepageSectionSize})
	}
	return s.ListProducts(ctx, ListParams{OrderBy: "date", Order: "desc", PerPage: homepageSectionSize})
}

// OnSaleProducts returns discounted products.
func (s *Service) OnSaleProducts(ctx context.Context) []woo.Product {
	return s.ListProducts(ctx, ListParams{OnSale: true, PerPage: homepageSectionSize})
}

// SearchProducts returns products whose names match the query.
func (s *Service) SearchProducts(ctx context.Context, query string) []woo.Product {
	return s.ListProducts(ctx, ListParams{Search: query})
}

func (s *Service) warnFallback(ctx context.Context, operation string, err error) {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"operation": operation,
		"error":     err.Error(),
	})
	s.logg.Warn(ctx, "commerce api unavailable, serving fixture catalog")
}

func fixtureRelated(productID int) []woo.Product {
	related := make([]woo.Product, 0, maxRelatedProducts)
	for _, p := range fixtureProducts {
		if p.ID == productID {
			continue
		}
		related = append(related, p)
		if len(related) == maxRelatedProducts {
			break
		}
	}
	return related
}

func splitSlugOrID(slugOrID string) (int, string) {
	if id, err := strconv.Atoi(slugOrID); err == nil && id > 0 {
		return id, ""
	}
	return 0, slugOrID
}
