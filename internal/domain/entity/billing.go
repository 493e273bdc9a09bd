package entity

// PaymentIntent is the backend's handle into the payment provider's setup
// flow.
type PaymentIntent struct {
	Intent          string `json:"intent"`
	PaymentCustomer string `json:"paymentCustomer"`
}

// PaymentIntentCreation opens a setup/payment intent for a customer's items.
type PaymentIntentCreation struct {
	Customer string   `json:"customer" validate:"required"`
	Items    []string `json:"items"`
}

// PaymentMethod is our record of a provider-side payment method.
type PaymentMethod struct {
	ID              string `json:"id,omitempty"`
	PaymentCustomer string `json:"paymentCustomer"`
	Customer        string `json:"customer"`
	PaymentMethod   string `json:"paymentMethod"`
	LastFour        string `json:"lastFour,omitempty"`
	ExpirationDate  string `json:"expirationDate,omitempty"`
}

// PaymentMethodCreation registers a provider payment method reference
// against the customer record.
type PaymentMethodCreation struct {
	PaymentCustomer string `json:"paymentCustomer" validate:"required"`
	Customer        string `json:"customer" validate:"required"`
	PaymentMethod   string `json:"paymentMethod" validate:"required"`
}

// Charge is our record of a provider-side charge.
type Charge struct {
	ID       string  `json:"id,omitempty"`
	Customer string  `json:"customer"`
	Amount   float64 `json:"amount"`
}

// ChargeCreation records a charge that already happened at the provider.
type ChargeCreation struct {
	PaymentCustomer string  `json:"paymentCustomer" validate:"required"`
	Customer        string  `json:"customer" validate:"required"`
	PaymentMethod   string  `json:"paymentMethod" validate:"required"`
	Amount          float64 `json:"amount" validate:"gt=0"`
}
