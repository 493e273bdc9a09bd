package service

import "sprout/internal/domain/entity"

// PurchaseBundle is the tracking payload persisted at purchase completion
// for the post-purchase referral pixel.
type PurchaseBundle struct {
	Orders     []entity.Order      `json:"orders"`
	Summary    entity.OrderSummary `json:"summary"`
	CouponCode string              `json:"couponCode,omitempty"`
}

// TrackingStore persists the purchase bundle durably between the checkout
// and post-purchase pages. Take has read-once/delete semantics: the bundle
// is cleared even when it cannot be parsed.
type TrackingStore interface {
	Put(bundle PurchaseBundle) error
	Take() (*PurchaseBundle, bool)
}
