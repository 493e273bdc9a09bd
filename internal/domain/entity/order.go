package entity

// FulfillmentStatus tracks order shipment progress.
type FulfillmentStatus string

const (
	FulfillmentPending   FulfillmentStatus = "pending"
	FulfillmentPartial   FulfillmentStatus = "partial"
	FulfillmentFulfilled FulfillmentStatus = "fulfilled"
	FulfillmentCancelled FulfillmentStatus = "cancelled"
)

// PaymentStatus tracks order payment progress.
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentFailed            PaymentStatus = "failed"
	PaymentAuthorized        PaymentStatus = "authorized"
	PaymentPartiallyPaid     PaymentStatus = "partially_paid"
	PaymentPaid              PaymentStatus = "paid"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentVoided            PaymentStatus = "voided"
)

// Order is one charged order for one child.
type Order struct {
	ID                string            `json:"id"`
	CustomerChild     string            `json:"customerChild"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillmentStatus"`
	PaymentStatus     PaymentStatus     `json:"paymentStatus"`
	PaymentMethod     string            `json:"paymentMethod"`
	ShippingRate      string            `json:"shippingRate,omitempty"`
	Discount          string            `json:"discount,omitempty"`
	OrderLineItems    []LineItem        `json:"orderLineItems"`
	ExternalOrderID   string            `json:"externalOrderId,omitempty"`
	TrackingNumber    string            `json:"trackingNumber,omitempty"`
	ChargedAt         string            `json:"chargedAt,omitempty"`
	OrderNumber       string            `json:"orderNumber,omitempty"`
	ChargedAmount     string            `json:"chargedAmount,omitempty"`
}

// OrderCreation creates one order per cart in a single batched call.
type OrderCreation struct {
	Customer     string   `json:"customer" validate:"required"`
	Carts        []string `json:"carts" validate:"required,min=1"`
	ShippingRate string   `json:"shippingRate,omitempty"`
}

// OrderSummary is the server-priced totals for a pending order.
type OrderSummary struct {
	Subtotal  float64 `json:"subtotal"`
	Discounts float64 `json:"discounts"`
	Shipping  float64 `json:"shipping"`
	Taxes     float64 `json:"taxes"`
	Total     float64 `json:"total"`
}

// ShippingRate is an available shipping option.
type ShippingRate struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	IsActive bool   `json:"isActive"`
}

// SummaryLine is one row of the locally computed checkout summary: either a
// child's meal plan priced over recipe items only, or a single add-on item.
type SummaryLine struct {
	CustomerID  string
	ProductID   string
	CartID      string
	ChildID     string
	Title       string
	Description string
	Price       float64
	IsMealPlan  bool
}
