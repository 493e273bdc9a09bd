package main

import (
	"context"
	"log/slog"
	"os"

	"sprout/config"
	"sprout/internal/flow"
	"sprout/internal/infra/api"
	logs "sprout/internal/infra/log"
	"sprout/internal/infra/payment"
	"sprout/internal/infra/tracking"
	"sprout/internal/store"
	"sprout/internal/usecase/impl"

	"go.uber.org/fx"
)

type startParams struct {
	fx.In
	fx.Shutdowner

	Logger *slog.Logger
	Engine *flow.Engine
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectStore(),
		injectUsecase(),
		fx.Invoke(
			start,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		api.NewClient,
		payment.NewGateway,
		tracking.NewFileStore,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			api.NewCustomerRepository,
			api.NewChildRepository,
			api.NewAddressRepository,
			api.NewCartRepository,
			api.NewSubscriptionRepository,
			api.NewOrderRepository,
			api.NewBillingRepository,
			api.NewProductRepository,
			api.NewIngredientRepository,
			api.NewDiscountRepository,
		),
	)
}

func injectStore() fx.Option {
	return fx.Options(
		fx.Provide(
			store.NewSubscriptionStore,
			store.NewCartStore,
			store.NewIngredientStore,
			flow.NewEngine,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewMealSelectionUsecase,
			impl.NewAddOnUsecase,
			impl.NewCheckoutUsecase,
			impl.NewOrderUsecase,
			impl.NewDiscountUsecase,
			impl.NewReferralTrackingUsecase,
		),
	)
}

// start boots the engine, resolves the onboarding resume point and exits.
// The process is a session driver: embedding applications call into the
// stores and usecases directly.
func start(ctx context.Context, params startParams) {
	resolution := params.Engine.Start(ctx, flow.DefaultQuestion.ID)
	params.Logger.Info("onboarding flow ready",
		slog.String("question", string(resolution.Question.ID)),
		slog.Bool("redirected", resolution.Redirected),
	)

	if err := params.Shutdown(); err != nil {
		params.Logger.Error("failed to shutdown", slog.Any("error", err))
		os.Exit(1)
	}
}
