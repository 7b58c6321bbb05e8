package woo

// Image is a product or category image reference.
type Image struct {
	ID  int    `json:"id,omitempty"`
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// CategoryRef is the compact category embedded in product payloads.
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Attribute describes a configurable option on a product (for example a
// front colour with its selectable values).
type Attribute struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Position  int      `json:"position,omitempty"`
	Visible   bool     `json:"visible,omitempty"`
	Variation bool     `json:"variation,omitempty"`
	Options   []string `json:"options"`
}

// Product mirrors the WooCommerce product resource. Prices arrive as
// strings and stay strings; arithmetic happens elsewhere.
type Product struct {
	ID               int          `json:"id"`
	Name             string       `json:"name"`
	Slug             string       `json:"slug"`
	Permalink        string       `json:"permalink,omitempty"`
	DateCreated      string       `json:"date_created,omitempty"`
	Type             string       `json:"type"`
	Status           string       `json:"status"`
	Featured         bool         `json:"featured"`
	Description      string       `json:"description"`
	ShortDescription string       `json:"short_description"`
	SKU              string       `json:"sku,omitempty"`
	Price            string       `json:"price"`
	RegularPrice     string       `json:"regular_price"`
	SalePrice        string       `json:"sale_price"`
	OnSale           bool         `json:"on_sale"`
	StockStatus      string       `json:"stock_status"`
	Categories       []CategoryRef `json:"categories"`
	Images           []Image      `json:"images"`
	Attributes       []Attribute  `json:"attributes"`
	Variations       []int        `json:"variations,omitempty"`
	RelatedIDs       []int        `json:"related_ids,omitempty"`
}

// Category mirrors the WooCommerce product-category resource.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Parent      int    `json:"parent,omitempty"`
	Description string `json:"description,omitempty"`
	Image       *Image `json:"image,omitempty"`
	Count       int    `json:"count"`
}

// VariationAttribute is a single selected option on a variation.
type VariationAttribute struct {
	ID     int    `json:"id,omitempty"`
	Name   string `json:"name"`
	Option string `json:"option"`
}

// Variation mirrors the WooCommerce product-variation resource.
type Variation struct {
	ID           int                  `json:"id"`
	Price        string               `json:"price"`
	RegularPrice string               `json:"regular_price"`
	SalePrice    string               `json:"sale_price"`
	OnSale       bool                 `json:"on_sale"`
	StockStatus  string               `json:"stock_status"`
	Attributes   []VariationAttribute `json:"attributes"`
	Image        *Image               `json:"image,omitempty"`
}

// Address is the billing or shipping block on an order.
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// OrderLineItem is one purchased product on an order payload.
type OrderLineItem struct {
	ProductID   int `json:"product_id"`
	VariationID int `json:"variation_id,omitempty"`
	Quantity    int `json:"quantity"`
}

// ShippingLine carries the shipping method and cost on an order payload.
type ShippingLine struct {
	MethodID    string `json:"method_id"`
	MethodTitle string `json:"method_title"`
	Total       string `json:"total"`
}

// OrderPayload is the request body for creating an order.
type OrderPayload struct {
	PaymentMethod      string          `json:"payment_method"`
	PaymentMethodTitle string          `json:"payment_method_title,omitempty"`
	SetPaid            bool            `json:"set_paid"`
	Status             string          `json:"status,omitempty"`
	Billing            Address         `json:"billing"`
	Shipping           Address         `json:"shipping"`
	LineItems          []OrderLineItem `json:"line_items"`
	ShippingLines      []ShippingLine  `json:"shipping_lines,omitempty"`
	CustomerNote       string          `json:"customer_note,omitempty"`
}

// Order is the subset of the created-order response the storefront uses.
type Order struct {
	ID          int    `json:"id"`
	Number      string `json:"number,omitempty"`
	Status      string `json:"status"`
	Currency    string `json:"currency,omitempty"`
	Total       string `json:"total"`
	DateCreated string `json:"date_created,omitempty"`
}
