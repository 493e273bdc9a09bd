// Package payment implements the external payment provider capability over
// its HTTP confirmation endpoint.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"sprout/config"
	"sprout/internal/domain/service"
	"sprout/internal/errors"

	"go.uber.org/fx"
)

const confirmPath = "/v1/setup-intents/confirm"

// Failure classes the provider reports. Card and validation failures map to
// the usecase sentinels so their messages can be shown to the user.
const (
	errTypeCard       = "card_error"
	errTypeValidation = "validation_error"
)

type gateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Params holds dependencies for the payment gateway, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewGateway creates the HTTP payment gateway from configuration.
func NewGateway(params Params) (service.PaymentGateway, error) {
	if params.Config.Payment == nil || params.Config.Payment.BaseURL == "" {
		return nil, errors.New("payment provider base url is not configured")
	}

	return &gateway{
		baseURL: params.Config.Payment.BaseURL,
		httpClient: &http.Client{
			Timeout: params.Config.Payment.Timeout,
		},
		logger: params.Logger,
	}, nil
}

type confirmRequest struct {
	Intent string `json:"intent"`
}

type confirmResponse struct {
	PaymentMethod string `json:"paymentMethod"`
	Error         *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *gateway) ConfirmSetup(ctx context.Context, intent string) (*service.SetupResult, error) {
	if intent == "" {
		return nil, errors.WithStack(service.ErrInvalidPaymentDetails)
	}

	payload, err := json.Marshal(confirmRequest{Intent: intent})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+confirmPath, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var confirmation confirmResponse
	if err := json.Unmarshal(raw, &confirmation); err != nil {
		return nil, errors.Wrap(err, "decode provider confirmation")
	}

	if confirmation.Error != nil {
		g.logger.Warn("card setup confirmation failed",
			slog.String("type", confirmation.Error.Type),
			slog.Int("status", resp.StatusCode),
		)

		switch confirmation.Error.Type {
		case errTypeCard:
			return nil, &service.SetupError{Kind: service.ErrCardDeclined, Message: confirmation.Error.Message}
		case errTypeValidation:
			return nil, &service.SetupError{Kind: service.ErrInvalidPaymentDetails, Message: confirmation.Error.Message}
		default:
			return nil, errors.Errorf("provider confirmation failed with status %d", resp.StatusCode)
		}
	}

	if resp.StatusCode != http.StatusOK || confirmation.PaymentMethod == "" {
		return nil, errors.Errorf("provider confirmation failed with status %d", resp.StatusCode)
	}

	return &service.SetupResult{PaymentMethod: confirmation.PaymentMethod}, nil
}
