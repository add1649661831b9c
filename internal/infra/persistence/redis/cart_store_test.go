package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	domcart "example.com/trendy-store/internal/domain/cart"
)

func newTestStore(t *testing.T) (*CartStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCartStore(client), mr
}

func TestGet_MissReturnsEmptyCart(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.Get(context.Background(), "s1")

	require.NoError(t, err)
	require.Equal(t, "s1", c.SessionID)
	require.True(t, c.IsEmpty())
}

func TestSaveGet_Roundtrip(t *testing.T) {
	store, _ := newTestStore(t)
	c := domcart.New("s1")
	c.Merge(domcart.Line{ProductID: 1, Quantity: 2, Size: "42", Color: "black", Name: "Air Max 270", Price: 100})

	require.NoError(t, store.Save(context.Background(), c))

	got, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, "s1", got.SessionID)
	require.Len(t, got.Lines, 1)
	require.Equal(t, int64(1), got.Lines[0].ProductID)
	require.Equal(t, int64(2), got.Lines[0].Quantity)
	require.Equal(t, "42", got.Lines[0].Size)
	require.InDelta(t, 100.0, got.Lines[0].Price, 0.001)
	require.False(t, got.UpdatedAt.IsZero())
}

func TestSave_SetsExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	c := domcart.New("s1")
	c.Merge(domcart.Line{ProductID: 1, Quantity: 1})

	require.NoError(t, store.Save(context.Background(), c))

	ttl := mr.TTL("cart:s1")
	require.Equal(t, 7*24*time.Hour, ttl)
}

func TestGet_AfterExpiryReturnsEmptyCart(t *testing.T) {
	store, mr := newTestStore(t)
	c := domcart.New("s1")
	c.Merge(domcart.Line{ProductID: 1, Quantity: 1})
	require.NoError(t, store.Save(context.Background(), c))

	mr.FastForward(7*24*time.Hour + time.Second)

	got, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestClear_RemovesCart(t *testing.T) {
	store, mr := newTestStore(t)
	c := domcart.New("s1")
	c.Merge(domcart.Line{ProductID: 1, Quantity: 1})
	require.NoError(t, store.Save(context.Background(), c))

	require.NoError(t, store.Clear(context.Background(), "s1"))

	require.False(t, mr.Exists("cart:s1"))
}

func TestClear_MissingCartIsNoop(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Clear(context.Background(), "nope"))
}

func TestCarts_AreSessionScoped(t *testing.T) {
	store, _ := newTestStore(t)
	a := domcart.New("alice")
	a.Merge(domcart.Line{ProductID: 1, Quantity: 1})
	b := domcart.New("bob")
	b.Merge(domcart.Line{ProductID: 2, Quantity: 5})
	require.NoError(t, store.Save(context.Background(), a))
	require.NoError(t, store.Save(context.Background(), b))

	gotA, err := store.Get(context.Background(), "alice")
	require.NoError(t, err)
	gotB, err := store.Get(context.Background(), "bob")
	require.NoError(t, err)

	require.Equal(t, int64(1), gotA.Lines[0].ProductID)
	require.Equal(t, int64(2), gotB.Lines[0].ProductID)
}
