package http

import "net/http"

type addToCartRequest struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type removeFromCartRequest struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type updateCartRequest struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type cartMutationResponse struct {
	Success   bool `json:"success"`
	CartCount int  `json:"cartCount"`
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	view, err := a.cartSvc.Get(r.Context(), getSessionID(r.Context()))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartView(view))
}

func (a *API) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}

	count, err := a.cartSvc.Add(r.Context(), getSessionID(r.Context()), req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartMutationResponse{Success: true, CartCount: count})
}

func (a *API) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req removeFromCartRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}

	count, err := a.cartSvc.Remove(r.Context(), getSessionID(r.Context()), req.ProductID, req.Size, req.Color)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartMutationResponse{Success: true, CartCount: count})
}

func (a *API) handleUpdateCart(w http.ResponseWriter, r *http.Request) {
	var req updateCartRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}

	count, err := a.cartSvc.UpdateQuantity(r.Context(), getSessionID(r.Context()), req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartMutationResponse{Success: true, CartCount: count})
}

func (a *API) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := a.cartSvc.Clear(r.Context(), getSessionID(r.Context())); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartMutationResponse{Success: true, CartCount: 0})
}
