package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	domcart "example.com/trendy-store/internal/domain/cart"
	domorder "example.com/trendy-store/internal/domain/order"
	domproduct "example.com/trendy-store/internal/domain/product"
	domuser "example.com/trendy-store/internal/domain/user"
	authuc "example.com/trendy-store/internal/usecase/auth"
	cartuc "example.com/trendy-store/internal/usecase/cart"
	checkoutuc "example.com/trendy-store/internal/usecase/checkout"
	orderuc "example.com/trendy-store/internal/usecase/order"
	productuc "example.com/trendy-store/internal/usecase/product"
)

type API struct {
	authSvc     *authuc.Service
	productSvc  *productuc.Service
	cartSvc     *cartuc.Service
	checkoutSvc *checkoutuc.Service
	orderSvc    *orderuc.Service
	tokenSvc    authuc.TokenService
	validator   *validator.Validate
}

type Dependencies struct {
	AuthService     *authuc.Service
	ProductService  *productuc.Service
	CartService     *cartuc.Service
	CheckoutService *checkoutuc.Service
	OrderService    *orderuc.Service
	TokenService    authuc.TokenService
}

func NewAPI(deps Dependencies) *API {
	return &API{
		authSvc:     deps.AuthService,
		productSvc:  deps.ProductService,
		cartSvc:     deps.CartService,
		checkoutSvc: deps.CheckoutService,
		orderSvc:    deps.OrderService,
		tokenSvc:    deps.TokenService,
		validator:   validator.New(),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", a.handleLogin)
		r.Post("/auth/register", a.handleRegister)

		r.Get("/products", a.handleListProducts)
		r.Get("/products/{id}", a.handleGetProduct)

		r.Group(func(sr chi.Router) {
			sr.Use(a.sessionMiddleware)

			sr.Get("/cart", a.handleGetCart)
			sr.Post("/cart/add", a.handleAddToCart)
			sr.Post("/cart/remove", a.handleRemoveFromCart)
			sr.Post("/cart/update", a.handleUpdateCart)
			sr.Post("/cart/clear", a.handleClearCart)

			sr.Group(func(cr chi.Router) {
				cr.Use(a.authMiddleware)
				cr.Post("/checkout/place-order", a.handlePlaceOrder)
			})
		})

		r.Group(func(or chi.Router) {
			or.Use(a.authMiddleware)

			or.Get("/me/orders", a.handleMyOrders)
			or.Get("/orders/{orderNumber}", a.handleGetOrder)
			or.Post("/orders/{orderNumber}/status", a.handleUpdateOrderStatus)
			or.Post("/orders/{orderNumber}/cancel", a.handleCancelOrder)
		})

		r.Group(func(ar chi.Router) {
			ar.Use(a.authMiddleware)
			ar.Use(a.requireAdmin)

			ar.Route("/admin", func(admin chi.Router) {
				admin.Route("/products", func(pr chi.Router) {
					pr.Post("/", a.handleCreateProduct)
					pr.Put("/{id}", a.handleUpdateProduct)
					pr.Delete("/{id}", a.handleDeleteProduct)
				})
				admin.Route("/orders", func(rr chi.Router) {
					rr.Get("/", a.handleListOrders)
					rr.Get("/{id}", a.handleAdminGetOrder)
					rr.Post("/{id}/status", a.handleAdminUpdateOrderStatus)
					rr.Delete("/{id}", a.handleAdminDeleteOrder)
				})
				admin.Get("/stats", a.handleOrderStats)
			})
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// respondValidationError reports the first violated rule in readable form.
func respondValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		msg := strings.ToLower(first.Field()) + " is required"
		if first.Tag() != "required" && first.Tag() != "required_if" {
			msg = strings.ToLower(first.Field()) + " is invalid"
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}
	respondError(w, http.StatusBadRequest, err)
}

var errInternal = errors.New("internal server error")

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domcart.ErrLineNotFound),
		errors.Is(err, domorder.ErrOrderNotFound),
		errors.Is(err, domuser.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domorder.ErrEmptyOrder),
		errors.Is(err, domorder.ErrInvalidPayment),
		errors.Is(err, domorder.ErrCheckoutValidation),
		errors.Is(err, domorder.ErrInvalidTransition),
		errors.Is(err, domorder.ErrReasonRequired):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domorder.ErrNotOwned):
		respondError(w, http.StatusForbidden, err)
	case errors.Is(err, domuser.ErrInvalidCredential),
		errors.Is(err, domuser.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err)
	case errors.Is(err, domuser.ErrEmailAlreadyUsed):
		respondError(w, http.StatusConflict, err)
	default:
		// Storage and broker failures stay opaque to the client.
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, errInternal)
	}
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}

func mapProduct(p *domproduct.Product) map[string]any {
	return map[string]any{
		"id":             p.ID,
		"name":           p.Name,
		"brand":          p.Brand,
		"category":       p.Category,
		"description":    p.Description,
		"price":          p.Price,
		"original_price": p.OriginalPrice,
		"images":         p.Images,
		"sizes":          p.Sizes,
		"colors":         p.Colors,
		"rating":         p.Rating,
		"review_count":   p.ReviewCount,
		"in_stock":       p.InStock,
		"is_featured":    p.IsFeatured,
	}
}

func mapCartView(v *cartuc.View) map[string]any {
	lines := make([]map[string]any, 0, len(v.Cart.Lines))
	for _, line := range v.Cart.Lines {
		lines = append(lines, map[string]any{
			"product_id": line.ProductID,
			"name":       line.Name,
			"price":      line.Price,
			"image":      line.Image,
			"quantity":   line.Quantity,
			"size":       line.Size,
			"color":      line.Color,
		})
	}
	return map[string]any{
		"items":    lines,
		"subtotal": v.Breakdown.Subtotal,
		"discount": v.Breakdown.Discount,
		"shipping": v.Breakdown.Shipping,
		"total":    v.Breakdown.Total,
	}
}

func mapOrder(o *domorder.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, map[string]any{
			"product_id":    item.ProductID,
			"product_name":  item.ProductName,
			"product_image": item.ProductImage,
			"unit_price":    item.UnitPrice,
			"quantity":      item.Quantity,
			"size":          item.Size,
			"color":         item.Color,
			"line_total":    item.LineTotal,
		})
	}

	out := map[string]any{
		"order_number":   o.OrderNumber,
		"user_id":        o.UserID,
		"items":          items,
		"subtotal":       o.Subtotal,
		"discount":       o.Discount,
		"shipping":       o.Shipping,
		"total":          o.Total,
		"payment_method": o.PaymentMethod,
		"status":         o.Status,
		"shipping_address": map[string]any{
			"first_name":  o.ShippingAddress.FirstName,
			"last_name":   o.ShippingAddress.LastName,
			"email":       o.ShippingAddress.Email,
			"phone":       o.ShippingAddress.Phone,
			"address":     o.ShippingAddress.Address,
			"district":    o.ShippingAddress.District,
			"city":        o.ShippingAddress.City,
			"postal_code": o.ShippingAddress.PostalCode,
		},
		"created_at": o.CreatedAt,
		"updated_at": o.UpdatedAt,
	}
	if o.Status == domorder.StatusCancelled {
		out["cancellation_reason"] = o.CancellationReason
		out["cancelled_at"] = o.CancelledAt
	}
	return out
}
