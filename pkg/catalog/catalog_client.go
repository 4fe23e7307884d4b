package catalog

import (
	"brewstock/domain"
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

type (
	// CatalogClient lists catalog objects from the commerce provider.
	CatalogClient interface {
		ListObjects(ctx context.Context, cursor string) (domain.CatalogListResponse, error)
	}

	catalogClient struct {
		client *resty.Client
	}
)

func NewCatalogClient(baseURL, token string) CatalogClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetHeader("Accept", "application/json")
	return &catalogClient{client: client}
}

func (c *catalogClient) ListObjects(ctx context.Context, cursor string) (domain.CatalogListResponse, error) {
	var payload domain.CatalogListResponse

	req := c.client.R().
		SetContext(ctx).
		SetResult(&payload)
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}

	resp, err := req.Get("/v2/catalog/list")
	if err != nil {
		return domain.CatalogListResponse{}, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	if resp.IsError() {
		return domain.CatalogListResponse{}, fmt.Errorf("%w: status %s", domain.ErrCatalogUnavailable, resp.Status())
	}

	return payload, nil
}
