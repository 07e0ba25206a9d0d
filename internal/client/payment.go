package client

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"storysite/internal/apiclient"
	"storysite/internal/models"
)

// PaymentClient создает платежную сессию для пожертвования.
type PaymentClient interface {
	Checkout(ctx context.Context, req models.PaymentCheckoutRequest) (*models.PaymentCheckoutResponse, error)
}

type paymentClient struct {
	base
}

// NewPaymentClient создает платежного клиента.
func NewPaymentClient(deps Deps) PaymentClient {
	return &paymentClient{base: newBase(deps, "PaymentClient")}
}

func (c *paymentClient) Checkout(ctx context.Context, req models.PaymentCheckoutRequest) (*models.PaymentCheckoutResponse, error) {
	resp, err := c.api.Send(ctx, apiclient.Call{
		Method: http.MethodPost,
		Path:   "/api/payments/checkout",
		Body:   req,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.NewAPIError(0, msgCheckoutFailed), err)
	}
	if err := apiclient.ExpectOKServerMessage(resp, msgCheckoutFailed); err != nil {
		return nil, err
	}
	out, err := apiclient.DecodeJSON[models.PaymentCheckoutResponse](resp)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Checkout created", zap.String("donation_id", out.DonationID), zap.String("provider", out.Provider))
	return &out, nil
}
