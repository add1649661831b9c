package product

import "time"

type Product struct {
	ID            int64
	Name          string
	Brand         string
	Category      string
	Description   string
	Price         float64
	OriginalPrice float64
	Images        []string
	Sizes         []string
	Colors        []string
	Rating        float64
	ReviewCount   int64
	InStock       bool
	IsFeatured    bool
	CreatedAt     time.Time
}

// HasDiscount reports whether the catalog lists a strike-through price
// above the selling price.
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice > p.Price
}

// MainImage returns the first catalog image, or "" when none exist.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type ListFilter struct {
	Category    string
	Brand       string
	Search      string
	Featured    bool
	Discounted  bool
	OnlyInStock bool
	Sort        string
	Limit       int64
}
