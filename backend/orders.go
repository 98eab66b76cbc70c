package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"storefront/models"
)

// FetchOrder retrieves an order by id. The caller always refetches instead of
// merging locally, so derived state re-syncs from the server.
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*models.Order, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/api/orders/" + orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %v", err)
	}
	if resp.IsError() {
		return nil, errors.New(responseMessage(resp))
	}

	var envelope struct {
		Success *bool         `json:"success"`
		Data    *models.Order `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, errors.New(responseMessage(resp))
	}
	if envelope.Success != nil && !*envelope.Success {
		return nil, errors.New(responseMessage(resp))
	}
	if envelope.Data == nil {
		return nil, errors.New("order not found")
	}
	return envelope.Data, nil
}

// UploadSlip submits a payment slip image for the order as multipart form
// data. The backend owns verification; a successful upload only moves the
// payment into pending-verification on the server side.
func (c *Client) UploadSlip(ctx context.Context, orderID, filename string, file io.Reader) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"orderId": orderID}).
		SetFileReader("file", filename, file).
		Post("/api/payments/upload-slip")
	if err != nil {
		return fmt.Errorf("failed to upload slip: %v", err)
	}
	if resp.IsError() || !successFlag(resp.Body()) {
		return errors.New(responseMessage(resp))
	}
	return nil
}
