package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domorder "example.com/trendy-store/internal/domain/order"
)

func seedOrder(t *testing.T, env *testEnv, number string, userID int64, status domorder.Status) *domorder.Order {
	t.Helper()
	o, err := env.orders.Save(context.Background(), &domorder.Order{
		OrderNumber: number,
		UserID:      userID,
		Status:      status,
		Total:       129.99,
		Items: []domorder.OrderItem{
			{ProductID: 1, ProductName: "Air Max 270", UnitPrice: 100, Quantity: 1, LineTotal: 100},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	return o
}

func TestGetOrder_Owner(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "ORD1", 7, domorder.StatusPending)

	rec := env.do(t, http.MethodGet, "/api/v1/orders/ORD1", nil, withToken(userToken))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	decodeBody(t, rec, &resp)
	require.Equal(t, "ORD1", resp["order_number"])
	require.Equal(t, "pending", resp["status"])
}

func TestGetOrder_OtherUsersOrderIs403(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "ORD1", 99, domorder.StatusPending)

	rec := env.do(t, http.MethodGet, "/api/v1/orders/ORD1", nil, withToken(userToken))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetOrder_AdminReadsAnyOrder(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "ORD1", 99, domorder.StatusPending)

	rec := env.do(t, http.MethodGet, "/api/v1/orders/ORD1", nil, withToken(adminToken))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetOrder_UnknownIs404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/orders/ORD404", nil, withToken(userToken))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrder_NoTokenIs401(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "ORD1", 7, domorder.StatusPending)

	rec := env.do(t, http.MethodGet, "/api/v1/orders/ORD1", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCancelOrder_FromPending(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "ORD1", 7, domorder.StatusPending)

	rec := env.do(t, http.MethodPost, "/api/v1/orders/ORD1/cancel",
		map[string]any{"reason": "changed my mind"},
		withToken(userToken))

	require.Equal(t, http.StatusOK, rec.Code)
	o := env.orders.orders["ORD1"]
	require.Equal(t, domorder.StatusCancelled, o.Status)
	require.Equal(t, "changed my mind", o.CancellationReason)
	require.NotNil(t, o.CancelledAt)
}

func TestCancelOrder_MissingReasonIs400(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "ORD1", 7, domorder.StatusPending)

	rec := env.do(t, http.MethodPost, "/api/v1/orders/ORD1/cancel",
		map[string]any{},
		withToken(userToken))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, domorder.StatusPending, env.orders.orders["ORD1"].Status)
}

func TestCancelOrder_ShippedIs400(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "ORD1", 7, domorder.StatusShipped)

	rec := env.do(t, http.MethodPost, "/api/v1/orders/ORD1/cancel",
		map[string]any{"reason": "too late"},
		withToken(userToken))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, domorder.StatusShipped, env.orders.orders["ORD1"].Status)
}

func TestUpdateOrderStatus_SkipAheadIs400(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "ORD1", 7, domorder.StatusPending)

	rec := env.do(t, http.MethodPost, "/api/v1/orders/ORD1/status",
		map[string]any{"status": "delivered"},
		withToken(userToken))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMyOrders_ListsOnlyOwn(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "ORD1", 7, domorder.StatusPending)
	seedOrder(t, env, "ORD2", 99, domorder.StatusPending)

	rec := env.do(t, http.MethodGet, "/api/v1/me/orders", nil, withToken(userToken))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Orders []map[string]any `json:"orders"`
	}
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Orders, 1)
	require.Equal(t, "ORD1", resp.Orders[0]["order_number"])
}

func TestAdminListOrders_CustomerIs403(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/orders/", nil, withToken(userToken))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminListOrders(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "ORD1", 7, domorder.StatusPending)
	seedOrder(t, env, "ORD2", 99, domorder.StatusDelivered)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/orders/", nil, withToken(adminToken))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Orders []map[string]any `json:"orders"`
	}
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Orders, 2)
}

func TestAdminUpdateOrderStatus_ForwardStep(t *testing.T) {
	env := newTestEnv(t)
	o := seedOrder(t, env, "ORD1", 7, domorder.StatusPending)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/orders/1/status",
		map[string]any{"status": "processing"},
		withToken(adminToken))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domorder.StatusProcessing, o.Status)
}

func TestAdminDeleteOrder(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "ORD1", 7, domorder.StatusCancelled)

	rec := env.do(t, http.MethodDelete, "/api/v1/admin/orders/1", nil, withToken(adminToken))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, env.orders.orders)
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "ORD1", 7, domorder.StatusPending)
	seedOrder(t, env, "ORD2", 99, domorder.StatusDelivered)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/stats", nil, withToken(adminToken))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		TotalOrders  int64            `json:"total_orders"`
		TotalRevenue float64          `json:"total_revenue"`
		ByStatus     map[string]int64 `json:"by_status"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, int64(2), resp.TotalOrders)
	require.InDelta(t, 259.98, resp.TotalRevenue, 0.001)
	require.Equal(t, int64(1), resp.ByStatus["pending"])
	require.Equal(t, int64(1), resp.ByStatus["delivered"])
}
