package entity

// SubscriptionStatus is the recurring-order status. Cancelling flips it to
// inactive, it is never deleted.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "inactive"
)

// Subscription is the per-child recurring order configuration. At most one
// subscription exists per child at a time; the store keys them by child id.
type Subscription struct {
	ID                          string             `json:"id"`
	Customer                    string             `json:"customer"`
	CustomerChild               string             `json:"customerChild"`
	NumberOfServings            int                `json:"numberOfServings"`
	Frequency                   int                `json:"frequency"`
	IsActive                    bool               `json:"isActive"`
	Status                      SubscriptionStatus `json:"status"`
	ActivatedAt                 string             `json:"activatedAt,omitempty"`
	DeactivatedAt               string             `json:"deactivatedAt,omitempty"`
	NextOrderChargeDate         string             `json:"nextOrderChargeDate,omitempty"`
	NextOrderChangesEnabledDate string             `json:"nextOrderChangesEnabledDate,omitempty"`
	// IsNew is derived from the create response status (201 vs 200): the
	// backend upserts on the customer/child composite key.
	IsNew bool `json:"isNew,omitempty"`
}

// SubscriptionCreation selects a bundle for one child.
type SubscriptionCreation struct {
	Customer         string `json:"customer" validate:"required"`
	CustomerChild    string `json:"customerChild" validate:"required"`
	NumberOfServings int    `json:"numberOfServings" validate:"oneof=12 24"`
	Frequency        int    `json:"frequency" validate:"oneof=1 2 4"`
}

// PrecancelURL is the retention-flow redirect returned before cancellation.
type PrecancelURL struct {
	URL string `json:"url"`
}
