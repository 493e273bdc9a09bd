package impl

import (
	"testing"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/service"
	"sprout/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func newReferralTracking(tracking *fakeTracking) usecase.ReferralTrackingUsecase {
	return NewReferralTrackingUsecase(TrackingParams{
		Tracking: tracking,
		Logger:   newDiscardLogger(),
	})
}

func TestReferralTracking_PixelParams(t *testing.T) {
	bundle := service.PurchaseBundle{
		Orders: []entity.Order{
			{
				ID: "order-1",
				OrderLineItems: []entity.LineItem{
					{ProductVariant: &entity.ProductVariant{SkuID: "MEAL-1", Price: 5.99}, Quantity: 12},
					{ProductVariant: &entity.ProductVariant{SkuID: "POUCH-L", Price: 15.99}, Quantity: 1},
				},
			},
			{
				ID: "order-2",
				OrderLineItems: []entity.LineItem{
					{ProductVariant: &entity.ProductVariant{SkuID: "MEAL-2", Price: 6.5}, Quantity: 6},
				},
			},
		},
		Summary:    entity.OrderSummary{Subtotal: 120, Discounts: 20},
		CouponCode: "WELCOME10",
	}
	tracking := &fakeTracking{bundle: &bundle}
	r := newReferralTracking(tracking)

	params := r.PixelParams()
	assert.Equal(t,
		"?tracking=order-1_order-2&amount=100&couponCode=WELCOME10"+
			"&pricelist=5.99,15.99,6.5&quantitylist=12,1,6&skulist=MEAL-1,POUCH-L,MEAL-2",
		params,
	)

	assert.Empty(t, r.PixelParams(), "the bundle only fires once")
}

func TestReferralTracking_PixelParams_NoBundle(t *testing.T) {
	r := newReferralTracking(&fakeTracking{})

	assert.Empty(t, r.PixelParams())
}

func TestReferralTracking_PixelParams_NoCoupon(t *testing.T) {
	bundle := service.PurchaseBundle{
		Orders:  []entity.Order{{ID: "order-1"}},
		Summary: entity.OrderSummary{Subtotal: 50.5},
	}
	r := newReferralTracking(&fakeTracking{bundle: &bundle})

	params := r.PixelParams()
	assert.Equal(t, "?tracking=order-1&amount=50.5&pricelist=&quantitylist=&skulist=", params)
}
