package woo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/teohome/storefront-backend/pkg/errors"
)

const (
	apiBasePath                 = "wp-json/wc/v3"
	defaultProductsPerPage      = 12
	defaultCategoriesPerPage    = 100
	variationsPerPage           = 100
	responseBodyReadLimit int64 = 1024
)

var (
	errAPIURLRequired      = errors.New("commerce api url is required")
	errCredentialsRequired = errors.New("commerce consumer key and secret are required")
)

// Client talks to a WooCommerce REST API using query-parameter key auth.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	consumerKey    string
	consumerSecret string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds a WooCommerce client for the given store URL and keys.
func NewClient(apiURL, consumerKey, consumerSecret string, opts ...Option) (*Client, error) {
	trimmedURL := strings.TrimSpace(apiURL)
	if trimmedURL == "" {
		return nil, errAPIURLRequired
	}
	key := strings.TrimSpace(consumerKey)
	secret := strings.TrimSpace(consumerSecret)
	if key == "" || secret == "" {
		return nil, errCredentialsRequired
	}

	client := &Client{
		baseURL:        strings.TrimRight(trimmedURL, "/"),
		consumerKey:    key,
		consumerSecret: secret,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

// ProductListParams narrows a product listing.
type ProductListParams struct {
	PerPage  int
	Page     int
	Category string
	Featured bool
	OnSale   bool
	OrderBy  string
	Order    string
	Search   string
	Slug     string
}

func (p ProductListParams) query() url.Values {
	q := url.Values{}
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = defaultProductsPerPage
	}
	q.Set("per_page", strconv.Itoa(perPage))
	if p.Page > 1 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Featured {
		q.Set("featured", "true")
	}
	if p.OnSale {
		q.Set("on_sale", "true")
	}
	if p.OrderBy != "" {
		q.Set("orderby", p.OrderBy)
	}
	if p.Order != "" {
		q.Set("order", p.Order)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Slug != "" {
		q.Set("slug", p.Slug)
	}
	return q
}

// ListProducts fetches products matching the given params.
func (c *Client) ListProducts(ctx context.Context, params ProductListParams) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "products", params.query(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByID fetches a single product.
func (c *Client) GetProductByID(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := c.get(ctx, fmt.Sprintf("products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductBySlug resolves a product through the slug filter. The API
// returns a list; the first element wins, an empty list is a not-found.
func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	products, err := c.ListProducts(ctx, ProductListParams{Slug: slug, PerPage: 1})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", slug))
	}
	return &products[0], nil
}

// ListVariations fetches the purchasable variations of a product.
func (c *Client) ListVariations(ctx context.Context, productID int) ([]Variation, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(variationsPerPage))
	var variations []Variation
	if err := c.get(ctx, fmt.Sprintf("products/%d/variations", productID), q, &variations); err != nil {
		return nil, err
	}
	return variations, nil
}

// CategoryListParams narrows a category listing.
type CategoryListParams struct {
	PerPage   int
	HideEmpty *bool
	Slug      string
}

func (p CategoryListParams) query() url.Values {
	q := url.Values{}
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = defaultCategoriesPerPage
	}
	q.Set("per_page", strconv.Itoa(perPage))
	hideEmpty := true
	if p.HideEmpty != nil {
		hideEmpty = *p.HideEmpty
	}
	if hideEmpty {
		q.Set("hide_empty", "1")
	}
	if p.Slug != "" {
		q.Set("slug", p.Slug)
	}
	return q
}

// ListCategories fetches product categories.
func (c *Client) ListCategories(ctx context.Context, params CategoryListParams) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "products/categories", params.query(), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryByID fetches a single category.
func (c *Client) GetCategoryByID(ctx context.Context, id int) (*Category, error) {
	var category Category
	if err := c.get(ctx, fmt.Sprintf("products/categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategoryBySlug resolves a category through the slug filter.
func (c *Client) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	categories, err := c.ListCategories(ctx, CategoryListParams{Slug: slug, PerPage: 1})
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("category %q not found", slug))
	}
	return &categories[0], nil
}

// CreateOrder submits a new order and returns the upstream result.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (*Order, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "commerce client not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal order payload")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL("orders", nil), bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build create order request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute create order request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "create order request failed")
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode create order response")
	}
	return &order, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "commerce client not configured")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path, query), nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build commerce request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute commerce request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s not found", path))
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "commerce request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode commerce response")
	}
	return nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	q := url.Values{}
	for key, values := range query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("consumer_key", c.consumerKey)
	q.Set("consumer_secret", c.consumerSecret)
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, apiBasePath, strings.TrimLeft(path, "/"), q.Encode())
}
