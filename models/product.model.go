package models

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tags is a set of category tags. It decodes from either a JSON array or a
// single string so that older records holding one category still load.
type Tags []string

// UnmarshalJSON accepts ["a","b"], "a" and null.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*t = nil
		return nil
	}
	*t = Tags{single}
	return nil
}

// UnmarshalYAML accepts a sequence or a single scalar.
func (t *Tags) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*t = nil
		if single != "" {
			*t = Tags{single}
		}
		return nil
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*t = list
	return nil
}

// Has reports whether tag is one of t, ignoring case.
func (t Tags) Has(tag string) bool {
	for _, c := range t {
		if strings.EqualFold(c, tag) {
			return true
		}
	}
	return false
}

// Product represents a catalog entry
type Product struct {
	ID            int     `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Brand         string  `json:"brand" yaml:"brand"`
	Description   string  `json:"description" yaml:"description"`
	Image         string  `json:"image" yaml:"image"`
	Price         float64 `json:"price" yaml:"price"`
	OriginalPrice float64 `json:"original_price,omitempty" yaml:"original_price"`
	Stock         int     `json:"stock" yaml:"stock"`
	Available     bool    `json:"available" yaml:"available"`
	Category      Tags    `json:"category" yaml:"category"`
	IsNew         bool    `json:"is_new" yaml:"is_new"`
	IsPopular     bool    `json:"is_popular" yaml:"is_popular"`
}

// Purchasable is derived and never stored.
func (p Product) Purchasable() bool {
	return p.Available && p.Stock > 0
}

// Promoted reports whether the product carries a promotional flag.
func (p Product) Promoted() bool {
	return p.IsNew || p.IsPopular
}

// ProductView is the wire form of a product with its derived fields.
type ProductView struct {
	Product
	Purchasable bool `json:"purchasable"`
}

// ViewProducts attaches derived fields to each product.
func ViewProducts(products []Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{Product: p, Purchasable: p.Purchasable()})
	}
	return views
}

// ProductPatch is a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name          *string  `json:"name,omitempty"`
	Brand         *string  `json:"brand,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Image         *string  `json:"image,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Stock         *int     `json:"stock,omitempty"`
	Available     *bool    `json:"available,omitempty"`
	Category      *Tags    `json:"category,omitempty"`
	IsNew         *bool    `json:"is_new,omitempty"`
	IsPopular     *bool    `json:"is_popular,omitempty"`
}

// Apply merges the patch into p (shallow).
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		p.OriginalPrice = *patch.OriginalPrice
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Available != nil {
		p.Available = *patch.Available
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.IsNew != nil {
		p.IsNew = *patch.IsNew
	}
	if patch.IsPopular != nil {
		p.IsPopular = *patch.IsPopular
	}
}

// Catalog filters
const (
	FilterAll     = "all"
	FilterPopular = "popular"
	FilterNew     = "new"
)

// FilterProducts returns the products matching filter: "all" (or empty),
// "popular", "new", or any other value as a category tag.
func FilterProducts(products []Product, filter string) []Product {
	filter = strings.TrimSpace(filter)
	out := []Product{}
	for _, p := range products {
		switch strings.ToLower(filter) {
		case "", FilterAll:
			out = append(out, p)
		case FilterPopular:
			if p.IsPopular {
				out = append(out, p)
			}
		case FilterNew:
			if p.IsNew {
				out = append(out, p)
			}
		default:
			if p.Category.Has(filter) {
				out = append(out, p)
			}
		}
	}
	return out
}

// NextProductID returns max(existing ids)+1, or 1 for an empty catalog.
func NextProductID(products []Product) int {
	max := 0
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}
