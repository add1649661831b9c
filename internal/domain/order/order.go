package order

import "time"

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCard, PaymentCash:
		return true
	default:
		return false
	}
}

// OrderItem is a snapshot of a product at checkout time. Catalog edits
// after the order is placed never change it.
type OrderItem struct {
	ID           int64
	OrderID      int64
	ProductID    int64
	ProductName  string
	ProductImage string
	UnitPrice    float64
	Quantity     int64
	Size         string
	Color        string
	LineTotal    float64
}

type ShippingAddress struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	District   string
	City       string
	PostalCode string
}

type Order struct {
	ID                 int64
	OrderNumber        string
	UserID             int64
	Items              []OrderItem
	Subtotal           float64
	Discount           float64
	Shipping           float64
	Total              float64
	PaymentMethod      PaymentMethod
	ShippingAddress    ShippingAddress
	Status             Status
	CancellationReason string
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Stats struct {
	TotalOrders       int64
	TotalRevenue      float64
	AverageOrderValue float64
}
