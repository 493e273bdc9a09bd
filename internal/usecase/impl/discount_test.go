package impl

import (
	"context"
	"testing"

	"sprout/config"
	"sprout/internal/domain/entity"
	"sprout/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscountUsecase(repo *fakeDiscountRepo) usecase.DiscountUsecase {
	cfg := &config.Config{
		Referral: &config.ReferralConfig{
			LinkBaseURL: "https://example.com/refer",
			CodeParam:   "sref_id",
			UTMCampaign: "referral_program",
			UTMSource:   "loyalty",
		},
	}

	return NewDiscountUsecase(DiscountParams{
		Discounts: repo,
		Config:    cfg,
		Logger:    newDiscardLogger(),
	})
}

func TestDiscounts_DiscountFromReferralURL(t *testing.T) {
	repo := &fakeDiscountRepo{
		byCodename: func(ctx context.Context, codename string) (*entity.Discount, error) {
			return &entity.Discount{ID: "d1", Codename: codename, FromYotpo: true}, nil
		},
	}
	d := newDiscountUsecase(repo)

	tests := []struct {
		name     string
		visitURL string
		found    bool
	}{
		{
			name:     "referral link resolves",
			visitURL: "https://shop.example.com/?sref_id=JUNE10&utm_campaign=referral_program&utm_source=loyalty",
			found:    true,
		},
		{
			name:     "missing code param",
			visitURL: "https://shop.example.com/?utm_campaign=referral_program&utm_source=loyalty",
			found:    false,
		},
		{
			name:     "wrong campaign",
			visitURL: "https://shop.example.com/?sref_id=JUNE10&utm_campaign=newsletter&utm_source=loyalty",
			found:    false,
		},
		{
			name:     "wrong source",
			visitURL: "https://shop.example.com/?sref_id=JUNE10&utm_campaign=referral_program&utm_source=ads",
			found:    false,
		},
		{
			name:     "plain visit",
			visitURL: "https://shop.example.com/",
			found:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount := d.DiscountFromReferralURL(context.Background(), tt.visitURL)
			if tt.found {
				require.NotNil(t, discount)
				assert.Equal(t, "JUNE10", discount.Codename)
			} else {
				assert.Nil(t, discount)
			}
		})
	}
}

func TestDiscounts_DiscountFromReferralURL_LookupFailureSwallowed(t *testing.T) {
	repo := &fakeDiscountRepo{
		byCodename: func(ctx context.Context, codename string) (*entity.Discount, error) {
			return nil, errors.New("boom")
		},
	}
	d := newDiscountUsecase(repo)

	discount := d.DiscountFromReferralURL(context.Background(),
		"https://shop.example.com/?sref_id=JUNE10&utm_campaign=referral_program&utm_source=loyalty")
	assert.Nil(t, discount)
}

func TestDiscounts_Banner(t *testing.T) {
	repo := &fakeDiscountRepo{
		primary: func(ctx context.Context) (*entity.Discount, error) {
			return &entity.Discount{ID: "d-primary", IsPrimary: true}, nil
		},
		byCodename: func(ctx context.Context, codename string) (*entity.Discount, error) {
			return &entity.Discount{ID: "d-referral", Codename: codename, FromYotpo: true}, nil
		},
	}
	d := newDiscountUsecase(repo)

	discount, err := d.Banner(context.Background(),
		"https://shop.example.com/?sref_id=JUNE10&utm_campaign=referral_program&utm_source=loyalty")
	require.NoError(t, err)
	assert.Equal(t, "d-referral", discount.ID)

	discount, err = d.Banner(context.Background(), "https://shop.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "d-primary", discount.ID)
}

func TestDiscounts_PrimaryDiscount_Failure(t *testing.T) {
	repo := &fakeDiscountRepo{
		primary: func(ctx context.Context) (*entity.Discount, error) {
			return nil, errors.New("boom")
		},
	}
	d := newDiscountUsecase(repo)

	_, err := d.PrimaryDiscount(context.Background())
	var userErr *usecase.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "Error loading banner discount", userErr.Message)
}

func TestDiscounts_ReferralLink(t *testing.T) {
	d := newDiscountUsecase(&fakeDiscountRepo{})

	link := d.ReferralLink(&entity.Discount{Codename: "JUNE10", FromYotpo: true})
	assert.Equal(t, "https://example.com/refer/JUNE10", link)

	assert.Empty(t, d.ReferralLink(&entity.Discount{Codename: "SPRING", FromYotpo: false}))
	assert.Empty(t, d.ReferralLink(nil))
}
