package pricing

import (
	"context"
	"errors"

	domcart "example.com/trendy-store/internal/domain/cart"
	domproduct "example.com/trendy-store/internal/domain/product"
)

const (
	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	FreeShippingThreshold = 150.0
	// FlatShippingFee applies below the threshold.
	FlatShippingFee = 29.99
)

// ProductResolver reads current catalog data for a product.
type ProductResolver interface {
	GetByID(ctx context.Context, id int64) (*domproduct.Product, error)
}

// ResolvedLine is a cart line joined with live catalog data.
type ResolvedLine struct {
	Product  *domproduct.Product
	Quantity int64
	Size     string
	Color    string
	Total    float64
}

// Breakdown is the cost summary of a cart at current catalog prices.
// Discount is informational: the selling price is already discounted, so
// Total does not subtract it again.
type Breakdown struct {
	Subtotal float64
	Discount float64
	Shipping float64
	Total    float64
	Lines    []ResolvedLine
	Dropped  int
}

// Compute prices the cart lines against the live catalog. Lines whose
// product no longer exists are dropped and counted in Dropped; any other
// resolver failure aborts the computation.
func Compute(ctx context.Context, lines []domcart.Line, resolver ProductResolver) (Breakdown, error) {
	b := Breakdown{Lines: make([]ResolvedLine, 0, len(lines))}

	for _, line := range lines {
		p, err := resolver.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domproduct.ErrProductNotFound) {
				b.Dropped++
				continue
			}
			return Breakdown{}, err
		}

		lineTotal := p.Price * float64(line.Quantity)
		originalTotal := lineTotal
		if p.OriginalPrice > 0 {
			originalTotal = p.OriginalPrice * float64(line.Quantity)
		}

		b.Subtotal += lineTotal
		b.Discount += originalTotal - lineTotal
		b.Lines = append(b.Lines, ResolvedLine{
			Product:  p,
			Quantity: line.Quantity,
			Size:     line.Size,
			Color:    line.Color,
			Total:    lineTotal,
		})
	}

	b.Shipping = ShippingFor(b.Subtotal)
	b.Total = b.Subtotal + b.Shipping
	return b, nil
}

// ShippingFor returns the shipping cost for a subtotal.
func ShippingFor(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}
