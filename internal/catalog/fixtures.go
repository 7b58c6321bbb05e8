package catalog

import (
	"sort"
	"strings"

	"github.com/teohome/storefront-backend/pkg/woo"
)

// Bundled catalog used when no commerce API credentials are configured and
// as the fallback when the live API is unreachable.

var fixtureCategories = []woo.Category{
	{
		ID: 1, Name: "Kuchnie", Slug: "kuchnie",
		Description: "Kuchnie na wymiar", Count: 24,
		Image: &woo.Image{ID: 1, Src: "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=600&q=80", Alt: "Kuchnie"},
	},
	{
		ID: 2, Name: "Szafy DIY", Slug: "szafy-diy",
		Description: "Szafy do samodzielnego montażu", Count: 18,
		Image: &woo.Image{ID: 2, Src: "https://images.unsplash.com/photo-1558618666-fcd25c85f82e?w=600&q=80", Alt: "Szafy DIY"},
	},
	{
		ID: 3, Name: "Sofy", Slug: "sofy",
		Description: "Sofy i kanapy", Count: 12,
		Image: &woo.Image{ID: 3, Src: "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=600&q=80", Alt: "Sofy"},
	},
	{
		ID: 4, Name: "Projekty wnętrz", Slug: "projekty-wnetrz",
		Description: "Projekty wnętrz na wymiar", Count: 8,
		Image: &woo.Image{ID: 4, Src: "https://images.unsplash.com/photo-1616486338812-3dadae4b4ace?w=600&q=80", Alt: "Projekty wnętrz"},
	},
}

var fixtureAttributes = []woo.Attribute{
	{ID: 1, Name: "Kolor frontu", Position: 0, Visible: true, Variation: true, Options: []string{"Dąb naturalny", "Biały", "Ciemny"}},
	{ID: 2, Name: "Szerokość", Position: 1, Visible: true, Variation: true, Options: []string{"40cm", "60cm", "80cm"}},
}

func fixtureProduct(id int, name, slug, price, regularPrice, salePrice, shortDescription string, featured, onSale bool, images []woo.Image) woo.Product {
	return woo.Product{
		ID:               id,
		Name:             name,
		Slug:             slug,
		Type:             "simple",
		Status:           "publish",
		Featured:         featured,
		Description:      "Szafka kuchenna to połączenie klasycznej elegancji z nowoczesną funkcjonalnością. Korpus wykonany z wytrzymałej płyty laminowanej w kolorze białym, a fronty z naturalnego forniru dębowego nadają meblowi ciepła i przytulności.",
		ShortDescription: shortDescription,
		Price:            price,
		RegularPrice:     regularPrice,
		SalePrice:        salePrice,
		OnSale:           onSale,
		StockStatus:      "instock",
		Categories:       []woo.CategoryRef{{ID: 1, Name: "Kuchnie", Slug: "kuchnie"}},
		Images:           images,
		Attributes:       fixtureAttributes,
	}
}

var fixtureProducts = []woo.Product{
	fixtureProduct(1, "Szafka kuchenna PARIS", "szafka-kuchenna-paris", "250", "300", "250", "Szuflady 3 szt, szerokość do wyboru", true, true, []woo.Image{
		{ID: 1, Src: "https://images.unsplash.com/photo-1595428774223-ef52624120d2?w=600&q=80", Alt: "Szafka kuchenna PARIS"},
		{ID: 2, Src: "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=600&q=80", Alt: "Szafka kuchenna PARIS"},
	}),
	fixtureProduct(2, "Szafka kuchenna LYON", "szafka-kuchenna-lyon", "320", "320", "", "Szuflady 2 szt, drzwiczki", false, false, []woo.Image{
		{ID: 3, Src: "https://images.unsplash.com/photo-1600585154526-990dced4db0d?w=600&q=80", Alt: "Szafka kuchenna LYON"},
	}),
	fixtureProduct(3, "Szafka kuchenna ROMA", "szafka-kuchenna-roma", "410", "410", "", "Szuflady 4 szt, organizer", false, false, []woo.Image{
		{ID: 4, Src: "https://images.unsplash.com/photo-1600210492486-724fe5c67fb0?w=600&q=80", Alt: "Szafka kuchenna ROMA"},
	}),
	fixtureProduct(4, "Szafka kuchenna OSLO", "szafka-kuchenna-oslo", "280", "280", "", "Szuflady 2 szt, szerokość 60 cm", false, false, []woo.Image{
		{ID: 5, Src: "https://images.unsplash.com/photo-1600566753086-00f18fb6b3ea?w=600&q=80", Alt: "Szafka kuchenna OSLO"},
	}),
	fixtureProduct(5, "Szafka kuchenna NICE", "szafka-kuchenna-nice", "350", "350", "", "Szuflady 3 szt, front ciemny", true, false, []woo.Image{
		{ID: 6, Src: "https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=600&q=80", Alt: "Szafka kuchenna NICE"},
	}),
	fixtureProduct(6, "Szafka kuchenna MARSEILLE", "szafka-kuchenna-marseille", "380", "380", "", "Szuflady 4 szt, front dąb", false, false, []woo.Image{
		{ID: 7, Src: "https://images.unsplash.com/photo-1618221195710-dd6b41faaea6?w=600&q=80", Alt: "Szafka kuchenna MARSEILLE"},
	}),
}

type fixtureFilter struct {
	featured bool
	onSale   bool
	category string
	search   string
	perPage  int
}

func filterFixtureProducts(f fixtureFilter) []woo.Product {
	products := make([]woo.Product, 0, len(fixtureProducts))
	for _, p := range fixtureProducts {
		if f.featured && !p.Featured {
			continue
		}
		if f.onSale && !p.OnSale {
			continue
		}
		if f.category != "" && !productInCategory(p, f.category) {
			continue
		}
		if f.search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.search)) {
			continue
		}
		products = append(products, p)
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	if f.perPage > 0 && len(products) > f.perPage {
		products = products[:f.perPage]
	}
	return products
}

func productInCategory(p woo.Product, slug string) bool {
	for _, c := range p.Categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

func findFixtureProduct(id int, slug string) *woo.Product {
	for i := range fixtureProducts {
		if id > 0 && fixtureProducts[i].ID == id {
			return &fixtureProducts[i]
		}
		if id == 0 && slug != "" && fixtureProducts[i].Slug == slug {
			return &fixtureProducts[i]
		}
	}
	return nil
}

func findFixtureCategory(id int, slug string) *woo.Category {
	for i := range fixtureCategories {
		if id > 0 && fixtureCategories[i].ID == id {
			return &fixtureCategories[i]
		}
		if id == 0 && slug != "" && fixtureCategories[i].Slug == slug {
			return &fixtureCategories[i]
		}
	}
	return nil
}
