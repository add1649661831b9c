package http

import (
	"net/http"

	checkoutuc "example.com/trendy-store/internal/usecase/checkout"
)

type placeOrderRequest struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	District   string `json:"district" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`

	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=card cash"`
	CardNumber    string `json:"cardNumber" validate:"required_if=PaymentMethod card"`
	CardName      string `json:"cardName" validate:"required_if=PaymentMethod card"`
	CardExpiry    string `json:"cardExpiry" validate:"required_if=PaymentMethod card"`
	CardCVV       string `json:"cardCvv" validate:"required_if=PaymentMethod card"`
}

type placeOrderResponse struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber"`
	RedirectURL string `json:"redirectUrl"`
	// DroppedItems counts cart lines whose product vanished from the
	// catalog between add and checkout; they are not in the order.
	DroppedItems int `json:"droppedItems,omitempty"`
}

func (a *API) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	var req placeOrderRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := a.checkoutSvc.PlaceOrder(r.Context(), getSessionID(r.Context()), user.UserID, checkoutuc.Input{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		District:      req.District,
		City:          req.City,
		PostalCode:    req.PostalCode,
		PaymentMethod: req.PaymentMethod,
		CardNumber:    req.CardNumber,
		CardName:      req.CardName,
		CardExpiry:    req.CardExpiry,
		CardCVV:       req.CardCVV,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, placeOrderResponse{
		Success:      true,
		OrderNumber:  result.Order.OrderNumber,
		RedirectURL:  "/orders/" + result.Order.OrderNumber,
		DroppedItems: result.DroppedLines,
	})
}
