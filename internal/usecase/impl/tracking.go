package impl

import (
	"log/slog"
	"strconv"
	"strings"

	"sprout/internal/domain/service"
	"sprout/internal/usecase"
	"sprout/internal/util"

	"go.uber.org/fx"
)

type referralTracking struct {
	tracking service.TrackingStore
	logger   *slog.Logger
}

// TrackingParams holds dependencies for the referral tracking usecase,
// injected by Fx.
type TrackingParams struct {
	fx.In

	Tracking service.TrackingStore
	Logger   *slog.Logger
}

// NewReferralTrackingUsecase creates the post-purchase pixel workflow.
func NewReferralTrackingUsecase(params TrackingParams) usecase.ReferralTrackingUsecase {
	return &referralTracking{
		tracking: params.Tracking,
		logger:   params.Logger,
	}
}

// PixelParams consumes the purchase bundle and serializes the affiliate
// pixel query string. The bundle only fires once: a missing or unreadable
// bundle yields an empty string.
func (r *referralTracking) PixelParams() string {
	bundle, ok := r.tracking.Take()
	if !ok {
		return ""
	}

	return buildPixelParams(bundle)
}

// buildPixelParams flattens the orders into the pixel's parallel lists:
// order ids joined by underscores, then per-line-item price, quantity and
// sku lists joined by commas.
func buildPixelParams(bundle *service.PurchaseBundle) string {
	orderIDs := make([]string, 0, len(bundle.Orders))
	var skus, prices, quantities []string
	for _, order := range bundle.Orders {
		orderIDs = append(orderIDs, order.ID)
		for _, item := range order.OrderLineItems {
			sku, price := "", ""
			if item.ProductVariant != nil {
				sku = item.ProductVariant.SkuID
				price = util.FormatAmount(item.ProductVariant.Price)
			}
			skus = append(skus, sku)
			prices = append(prices, price)
			quantities = append(quantities, strconv.Itoa(item.Quantity))
		}
	}

	var sb strings.Builder
	sb.WriteString("?tracking=")
	sb.WriteString(strings.Join(orderIDs, "_"))
	sb.WriteString("&amount=")
	sb.WriteString(util.FormatAmount(bundle.Summary.Subtotal - bundle.Summary.Discounts))
	if bundle.CouponCode != "" {
		sb.WriteString("&couponCode=")
		sb.WriteString(bundle.CouponCode)
	}
	sb.WriteString("&pricelist=")
	sb.WriteString(strings.Join(prices, ","))
	sb.WriteString("&quantitylist=")
	sb.WriteString(strings.Join(quantities, ","))
	sb.WriteString("&skulist=")
	sb.WriteString(strings.Join(skus, ","))

	return sb.String()
}
