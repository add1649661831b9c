package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domcart "example.com/trendy-store/internal/domain/cart"
	domproduct "example.com/trendy-store/internal/domain/product"
)

type fakeResolver struct {
	products map[int64]*domproduct.Product
	err      error
}

func (f *fakeResolver) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, domproduct.ErrProductNotFound
}

func TestCompute_DiscountedCartAboveThreshold(t *testing.T) {
	resolver := &fakeResolver{products: map[int64]*domproduct.Product{
		1: {ID: 1, Price: 100, OriginalPrice: 120},
		2: {ID: 2, Price: 60, OriginalPrice: 60},
	}}
	lines := []domcart.Line{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 2},
	}

	b, err := Compute(context.Background(), lines, resolver)

	require.NoError(t, err)
	require.InDelta(t, 220.0, b.Subtotal, 0.001)
	require.InDelta(t, 20.0, b.Discount, 0.001)
	require.InDelta(t, 0.0, b.Shipping, 0.001)
	require.InDelta(t, 220.0, b.Total, 0.001)
	require.Len(t, b.Lines, 2)
}

func TestCompute_ExactlyAtThresholdShipsFree(t *testing.T) {
	resolver := &fakeResolver{products: map[int64]*domproduct.Product{
		1: {ID: 1, Price: 100, OriginalPrice: 120},
		2: {ID: 2, Price: 60},
	}}
	lines := []domcart.Line{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	}

	b, err := Compute(context.Background(), lines, resolver)

	require.NoError(t, err)
	require.InDelta(t, 160.0, b.Subtotal, 0.001)
	require.InDelta(t, 0.0, b.Shipping, 0.001)
	require.InDelta(t, 160.0, b.Total, 0.001)
}

func TestCompute_BelowThresholdChargesFlatFee(t *testing.T) {
	resolver := &fakeResolver{products: map[int64]*domproduct.Product{
		1: {ID: 1, Price: 90},
	}}
	lines := []domcart.Line{{ProductID: 1, Quantity: 1}}

	b, err := Compute(context.Background(), lines, resolver)

	require.NoError(t, err)
	require.InDelta(t, 90.0, b.Subtotal, 0.001)
	require.InDelta(t, 29.99, b.Shipping, 0.001)
	require.InDelta(t, 119.99, b.Total, 0.001)
}

func TestShippingFor_Boundary(t *testing.T) {
	require.InDelta(t, 0.0, ShippingFor(150.00), 0.0001)
	require.InDelta(t, 29.99, ShippingFor(149.99), 0.0001)
}

func TestCompute_SubtotalIsSumOfLineTotals(t *testing.T) {
	resolver := &fakeResolver{products: map[int64]*domproduct.Product{
		1: {ID: 1, Price: 19.99},
		2: {ID: 2, Price: 5.50},
	}}
	lines := []domcart.Line{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 4},
	}

	b, err := Compute(context.Background(), lines, resolver)

	require.NoError(t, err)
	var want float64
	for _, line := range b.Lines {
		want += line.Total
	}
	require.InDelta(t, want, b.Subtotal, 0.001)
	require.InDelta(t, 19.99*3+5.50*4, b.Subtotal, 0.001)
}

func TestCompute_VanishedProductIsDroppedAndCounted(t *testing.T) {
	resolver := &fakeResolver{products: map[int64]*domproduct.Product{
		1: {ID: 1, Price: 50},
	}}
	lines := []domcart.Line{
		{ProductID: 1, Quantity: 1},
		{ProductID: 999, Quantity: 2},
	}

	b, err := Compute(context.Background(), lines, resolver)

	require.NoError(t, err)
	require.Len(t, b.Lines, 1)
	require.Equal(t, 1, b.Dropped)
	require.InDelta(t, 50.0, b.Subtotal, 0.001)
}

func TestCompute_ResolverFailureAborts(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("db down")}
	lines := []domcart.Line{{ProductID: 1, Quantity: 1}}

	_, err := Compute(context.Background(), lines, resolver)

	require.Error(t, err)
}

func TestCompute_EmptyCart(t *testing.T) {
	b, err := Compute(context.Background(), nil, &fakeResolver{})

	require.NoError(t, err)
	require.Empty(t, b.Lines)
	require.InDelta(t, 0.0, b.Subtotal, 0.001)
	require.InDelta(t, 29.99, b.Shipping, 0.001)
}
