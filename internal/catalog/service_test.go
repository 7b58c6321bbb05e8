package catalog

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/teohome/storefront-backend/pkg/logger"
	"github.com/teohome/storefront-backend/pkg/woo"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

type stubAPI struct {
	listProductsFn      func(ctx context.Context, params woo.ProductListParams) ([]woo.Product, error)
	getProductByIDFn    func(ctx context.Context, id int) (*woo.Product, error)
	getProductBySlugFn  func(ctx context.Context, slug string) (*woo.Product, error)
	listVariationsFn    func(ctx context.Context, productID int) ([]woo.Variation, error)
	listCategoriesFn    func(ctx context.Context, params woo.CategoryListParams) ([]woo.Category, error)
	getCategoryByIDFn   func(ctx context.Context, id int) (*woo.Category, error)
	getCategoryBySlugFn func(ctx context.Context, slug string) (*woo.Category, error)
}

var errStub = errors.New("stub not configured")

func (s *stubAPI) ListProducts(ctx context.Context, params woo.ProductListParams) ([]woo.Product, error) {
	if s.listProductsFn == nil {
		return nil, errStub
	}
	return s.listProductsFn(ctx, params)
}

func (s *stubAPI) GetProductByID(ctx context.Context, id int) (*woo.Product, error) {
	if s.getProductByIDFn == nil {
		return nil, errStub
	}
	return s.getProductByIDFn(ctx, id)
}

func (s *stubAPI) GetProductBySlug(ctx context.Context, slug string) (*woo.Product, error) {
	if s.getProductBySlugFn == nil {
		return nil, errStub
	}
	return s.getProductBySlugFn(ctx, slug)
}

func (s *stubAPI) ListVariations(ctx context.Context, productID int) ([]woo.Variation, error) {
	if s.listVariationsFn == nil {
		return nil, errStub
	}
	return s.listVariationsFn(ctx, productID)
}

func (s *stubAPI) ListCategories(ctx context.Context, params woo.CategoryListParams) ([]woo.Category, error) {
	if s.listCategoriesFn == nil {
		return nil, errStub
	}
	return s.listCategoriesFn(ctx, params)
}

func (s *stubAPI) GetCategoryByID(ctx context.Context, id int) (*woo.Category, error) {
	if s.getCategoryByIDFn == nil {
		return nil, errStub
	}
	return s.getCategoryByIDFn(ctx, id)
}

func (s *stubAPI) GetCategoryBySlug(ctx context.Context, slug string) (*woo.Category, error) {
	if s.getCategoryBySlugFn == nil {
		return nil, errStub
	}
	return s.getCategoryBySlugFn(ctx, slug)
}

func newFixtureService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(SourceFixture, nil, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func newLiveService(t *testing.T, api commerceAPI) *Service {
	t.Helper()
	svc, err := NewService(SourceLive, api, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNewServiceValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewService(SourceLive, &stubAPI{}, nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
	if _, err := NewService(SourceLive, nil, testLogger()); err == nil {
		t.Fatal("expected error for live source without client")
	}
	if _, err := NewService(Source("other"), nil, testLogger()); err == nil {
		t.Fatal("expected error for unknown source")
	}
	svc, err := NewService(SourceFixture, nil, testLogger())
	if err != nil {
		t.Fatalf("fixture source should not need a client: %v", err)
	}
	if svc.Source() != SourceFixture {
		t.Fatalf("unexpected source %s", svc.Source())
	}
}

func TestFixtureListProductsFilters(t *testing.T) {
	t.Parallel()
	svc := newFixtureService(t)
	ctx := context.Background()

	all := svc.ListProducts(ctx, ListParams{})
	if len(all) != 6 {
		t.Fatalf("expected 6 fixture products, got %d", len(all))
	}

	featured := svc.ListProducts(ctx, ListParams{Featured: true})
	if len(featured) != 2 {
		t.Fatalf("expected 2 featured products, got %d", len(featured))
	}
	for _, p := range featured {
		if !p.Featured {
			t.Fatalf("non-featured product %s in featured listing", p.Name)
		}
	}

	onSale := svc.ListProducts(ctx, ListParams{OnSale: true})
	if len(onSale) != 1 || onSale[0].ID != 1 {
		t.Fatalf("expected only PARIS on sale, got %+v", onSale)
	}

	limited := svc.ListProducts(ctx, ListParams{PerPage: 3})
	if len(limited) != 3 {
		t.Fatalf("expected 3 products with per_page=3, got %d", len(limited))
	}

	byCategory := svc.ListProducts(ctx, ListParams{Category: "kuchnie"})
	if len(byCategory) != 6 {
		t.Fatalf("expected all products in kuchnie, got %d", len(byCategory))
	}
	if empty := svc.ListProducts(ctx, ListParams{Category: "sofy"}); len(empty) != 0 {
		t.Fatalf("expected no products in sofy, got %d", len(empty))
	}

	found := svc.ListProducts(ctx, ListParams{Search: "lyon"})
	if len(found) != 1 || found[0].Slug != "szafka-kuchenna-lyon" {
		t.Fatalf("search should match LYON case-insensitively, got %+v", found)
	}
}

func TestLiveListProductsFallsBackToFixtures(t *testing.T) {
	t.Parallel()
	api := &stubAPI{
		listProductsFn: func(ctx context.Context, params woo.ProductListParams) ([]woo.Product, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newLiveService(t, api)

	products := svc.ListProducts(context.Background(), ListParams{Featured: true})
	if len(products) != 2 {
		t.Fatalf("expected fixture featured fallback, got %d products", len(products))
	}
}

func TestLiveListProductsResolvesCategorySlug(t *testing.T) {
	t.Parallel()
	var gotCategory string
	api := &stubAPI{
		getCategoryBySlugFn: func(ctx context.Context, slug string) (*woo.Category, error) {
			if slug != "kuchnie" {
				t.Errorf("unexpected slug %q", slug)
			}
			return &woo.Category{ID: 15, Slug: slug}, nil
		},
		listProductsFn: func(ctx context.Context, params woo.ProductListParams) ([]woo.Product, error) {
			gotCategory = params.Category
			return []woo.Product{{ID: 9}}, nil
		},
	}
	svc := newLiveService(t, api)

	products := svc.ListProducts(context.Background(), ListParams{Category: "kuchnie"})
	if len(products) != 1 || products[0].ID != 9 {
		t.Fatalf("unexpected products %+v", products)
	}
	if gotCategory != "15" {
		t.Fatalf("expected resolved category id 15, got %q", gotCategory)
	}
}

func TestGetProduct(t *testing.T) {
	t.Parallel()
	svc := newFixtureService(t)
	ctx := context.Background()

	byID := svc.GetProduct(ctx, "3")
	if byID.Slug != "szafka-kuchenna-roma" {
		t.Fatalf("expected ROMA for id 3, got %s", byID.Slug)
	}

	bySlug := svc.GetProduct(ctx, "szafka-kuchenna-nice")
	if bySlug.ID != 5 {
		t.Fatalf("expected NICE for its slug, got id %d", bySlug.ID)
	}

	missing := svc.GetProduct(ctx, "no-such-product")
	if missing.ID != 1 {
		t.Fatalf("missing product should yield the first fixture, got id %d", missing.ID)
	}
}

func TestGetProductLiveFallsBack(t *testing.T) {
	t.Parallel()
	api := &stubAPI{
		getProductBySlugFn: func(ctx context.Context, slug string) (*woo.Product, error) {
			return nil, errors.New("timeout")
		},
	}
	svc := newLiveService(t, api)

	product := svc.GetProduct(context.Background(), "szafka-kuchenna-oslo")
	if product.ID != 4 {
		t.Fatalf("expected fixture OSLO fallback, got id %d", product.ID)
	}
}

func TestListVariations(t *testing.T) {
	t.Parallel()
	if got := newFixtureService(t).ListVariations(context.Background(), 1); len(got) != 0 {
		t.Fatalf("fixture variations should be empty, got %d", len(got))
	}

	api := &stubAPI{
		listVariationsFn: func(ctx context.Context, productID int) ([]woo.Variation, error) {
			return []woo.Variation{{ID: 11, Price: "250"}}, nil
		},
	}
	got := newLiveService(t, api).ListVariations(context.Background(), 1)
	if len(got) != 1 || got[0].ID != 11 {
		t.Fatalf("unexpected variations %+v", got)
	}
}

func TestGetCategory(t *testing.T) {
	t.Parallel()
	svc := newFixtureService(t)
	ctx := context.Background()

	if got := svc.GetCategory(ctx, "sofy"); got.ID != 3 {
		t.Fatalf("expected Sofy, got %+v", got)
	}
	if got := svc.GetCategory(ctx, "2"); got.Slug != "szafy-diy" {
		t.Fatalf("expected Szafy DIY for id 2, got %+v", got)
	}
	if got := svc.GetCategory(ctx, "missing"); got.ID != 1 {
		t.Fatalf("missing category should yield the first fixture, got %+v", got)
	}
}

func TestListRelatedLiveSkipsFailures(t *testing.T) {
	t.Parallel()
	api := &stubAPI{
		getProductByIDFn: func(ctx context.Context, id int) (*woo.Product, error) {
			switch id {
			case 1:
				return &woo.Product{ID: 1, RelatedIDs: []int{2, 3, 4, 5, 6}}, nil
			case 3:
				return nil, errors.New("missing")
			default:
				return &woo.Product{ID: id}, nil
			}
		},
	}
	svc := newLiveService(t, api)

	related := svc.ListRelated(context.Background(), 1)
	if len(related) != 3 {
		t.Fatalf("expected 3 related (4 attempted, 1 failed), got %d", len(related))
	}
	for _, p := range related {
		if p.ID == 3 || p.ID == 6 {
			t.Fatalf("unexpected related product %d", p.ID)
		}
	}
}

func TestListRelatedFixtureExcludesSelf(t *testing.T) {
	t.Parallel()
	related := newFixtureService(t).ListRelated(context.Background(), 2)
	if len(related) != 4 {
		t.Fatalf("expected 4 related fixtures, got %d", len(related))
	}
	for _, p := range related {
		if p.ID == 2 {
			t.Fatal("related products must exclude the product itself")
		}
	}
}

func TestHomepageSections(t *testing.T) {
	t.Parallel()
	svc := newFixtureService(t)
	ctx := context.Background()

	if got := svc.FeaturedProducts(ctx); len(got) != 2 {
		t.Fatalf("expected 2 featured, got %d", len(got))
	}
	if got := svc.NewProducts(ctx); len(got) != 4 {
		t.Fatalf("expected 4 new products, got %d", len(got))
	}
	if got := svc.OnSaleProducts(ctx); len(got) != 1 {
		t.Fatalf("expected 1 on-sale product, got %d", len(got))
	}
	if got := svc.SearchProducts(ctx, "szafka"); len(got) != 6 {
		t.Fatalf("expected all products to match szafka, got %d", len(got))
	}
}
