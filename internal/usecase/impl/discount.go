package impl

import (
	"context"
	"log/slog"
	"net/url"

	"sprout/config"
	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"
	"sprout/internal/usecase"

	"go.uber.org/fx"
)

const (
	errPrimaryDiscount  = "Error loading banner discount"
	errReferralDiscount = "Error loading referral discount"
)

type discounts struct {
	discounts repository.DiscountRepository
	referral  *config.ReferralConfig
	logger    *slog.Logger
}

// DiscountParams holds dependencies for the discount usecase, injected by
// Fx.
type DiscountParams struct {
	fx.In

	Discounts repository.DiscountRepository
	Config    *config.Config
	Logger    *slog.Logger
}

// NewDiscountUsecase creates the promotional discount workflow.
func NewDiscountUsecase(params DiscountParams) usecase.DiscountUsecase {
	return &discounts{
		discounts: params.Discounts,
		referral:  params.Config.Referral,
		logger:    params.Logger,
	}
}

func (d *discounts) Banner(ctx context.Context, visitURL string) (*entity.Discount, error) {
	if discount := d.DiscountFromReferralURL(ctx, visitURL); discount != nil {
		return discount, nil
	}

	return d.PrimaryDiscount(ctx)
}

func (d *discounts) PrimaryDiscount(ctx context.Context) (*entity.Discount, error) {
	discount, err := d.discounts.Primary(ctx)
	if err != nil {
		return nil, &usecase.UserError{Message: errPrimaryDiscount, Cause: err}
	}

	return discount, nil
}

func (d *discounts) ReferralDiscount(ctx context.Context) (*entity.Discount, error) {
	discount, err := d.discounts.Referral(ctx)
	if err != nil {
		return nil, &usecase.UserError{Message: errReferralDiscount, Cause: err}
	}

	return discount, nil
}

// ReferralLink builds the shareable link for a referral-program discount.
// Other discounts have no link.
func (d *discounts) ReferralLink(discount *entity.Discount) string {
	if discount == nil || !discount.FromYotpo {
		return ""
	}

	return d.referral.LinkBaseURL + "/" + discount.Codename
}

// DiscountFromReferralURL resolves a referral visit to its discount. The
// URL must carry the referral code parameter plus the program's UTM pair;
// anything else, including a failed lookup, yields nil.
func (d *discounts) DiscountFromReferralURL(ctx context.Context, visitURL string) *entity.Discount {
	parsed, err := url.Parse(visitURL)
	if err != nil {
		return nil
	}

	query := parsed.Query()
	code := query.Get(d.referral.CodeParam)
	if code == "" ||
		query.Get("utm_campaign") != d.referral.UTMCampaign ||
		query.Get("utm_source") != d.referral.UTMSource {
		return nil
	}

	discount, err := d.discounts.ByCodename(ctx, code)
	if err != nil {
		d.logger.Warn("referral discount lookup failed",
			slog.String("codename", code),
			slog.Any("error", err),
		)

		return nil
	}

	return discount
}
