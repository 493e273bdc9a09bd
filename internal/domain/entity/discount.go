package entity

// Discount is a promotional code. FromYotpo marks codes minted by the
// referral program, whose codename doubles as a shareable link suffix.
type Discount struct {
	ID         string `json:"id"`
	Codename   string `json:"codename"`
	IsActive   bool   `json:"isActive"`
	IsPrimary  bool   `json:"isPrimary"`
	BannerText string `json:"bannerText"`
	FromYotpo  bool   `json:"fromYotpo"`
}

// CustomerDiscount applies a discount code to a customer, optionally scoped
// to a cancellation session and subscription.
type CustomerDiscount struct {
	Customer     string `json:"customer" validate:"required"`
	Discount     string `json:"discount" validate:"required"`
	Session      string `json:"session,omitempty"`
	Subscription string `json:"subscription,omitempty"`
}
