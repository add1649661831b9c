package http

import (
	"net/http"

	domorder "example.com/trendy-store/internal/domain/order"
)

func (a *API) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := a.orderSvc.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		out = append(out, mapOrder(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": out})
}

func (a *API) handleAdminGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	o, err := a.orderSvc.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(o))
}

// Admin status updates run through the same state machine as customer
// ones; operators cannot skip steps either.
func (a *API) handleAdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req updateStatusRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}

	o, err := a.orderSvc.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	updated, err := a.orderSvc.UpdateStatus(r.Context(), o.OrderNumber, 0, true, domorder.Status(req.Status))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": updated.Status})
}

func (a *API) handleAdminDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.orderSvc.Delete(r.Context(), id); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleOrderStats(w http.ResponseWriter, r *http.Request) {
	stats, counts, err := a.orderSvc.Stats(r.Context(), nil)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	byStatus := make(map[string]int64, len(counts))
	for status, n := range counts {
		byStatus[string(status)] = n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_orders":        stats.TotalOrders,
		"total_revenue":       stats.TotalRevenue,
		"average_order_value": stats.AverageOrderValue,
		"by_status":           byStatus,
	})
}
