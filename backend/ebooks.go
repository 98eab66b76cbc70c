package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"storefront/models"
)

// FetchEbook retrieves the ebook record, mainly for its preview URL
func (c *Client) FetchEbook(ctx context.Context, ebookID string) (*models.Ebook, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/api/ebooks/" + ebookID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ebook: %v", err)
	}
	if resp.IsError() {
		return nil, errors.New(responseMessage(resp))
	}

	var envelope struct {
		Data *models.Ebook `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, errors.New(responseMessage(resp))
	}
	if envelope.Data == nil {
		return nil, errors.New("ebook not found")
	}
	return envelope.Data, nil
}

// ProxyViewURL builds the streaming proxy URL for in-browser viewing. These
// proxies are opened by direct navigation, never fetched as JSON.
func (c *Client) ProxyViewURL(fileURL string) string {
	return c.BaseURL() + "/api/proxy-view?url=" + url.QueryEscape(fileURL)
}

// ProxyDownloadURL builds the PDF download proxy URL
func (c *Client) ProxyDownloadURL(fileURL string) string {
	return c.BaseURL() + "/api/proxy-download-pdf?url=" + url.QueryEscape(fileURL)
}
