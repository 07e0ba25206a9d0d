package client

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"storysite/internal/apiclient"
	"storysite/internal/models"
)

// DonationClient - операции с пожертвованиями. Ничего не кэширует.
type DonationClient interface {
	Create(ctx context.Context, req models.DonationRequest) (*models.Donation, error)
	AdminList(ctx context.Context) ([]models.Donation, error)
	UpdateStatus(ctx context.Context, id string, status models.DonationStatus) (*models.Donation, error)
}

type donationClient struct {
	base
}

// NewDonationClient создает клиента пожертвований.
func NewDonationClient(deps Deps) DonationClient {
	return &donationClient{base: newBase(deps, "DonationClient")}
}

func (c *donationClient) Create(ctx context.Context, req models.DonationRequest) (*models.Donation, error) {
	donation, err := sendJSON[models.Donation](ctx, c.base, apiclient.Call{
		Method: http.MethodPost,
		Path:   "/api/donations",
		Body:   req,
	}, msgDonationCreate)
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (c *donationClient) AdminList(ctx context.Context) ([]models.Donation, error) {
	return sendJSON[[]models.Donation](ctx, c.base, apiclient.Call{
		Method: http.MethodGet,
		Path:   "/api/admin/donations",
		Auth:   true,
	}, msgDonationsLoad)
}

func (c *donationClient) UpdateStatus(ctx context.Context, id string, status models.DonationStatus) (*models.Donation, error) {
	donation, err := sendJSON[models.Donation](ctx, c.base, apiclient.Call{
		Method: http.MethodPut,
		Path:   "/api/admin/donations/" + escape(id),
		Query:  url.Values{"status": {string(status)}},
		Auth:   true,
	}, msgDonationUpdate)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Donation status updated", zap.String("id", id), zap.String("status", string(status)))
	return &donation, nil
}
