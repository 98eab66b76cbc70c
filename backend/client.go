package backend

import (
	"encoding/json"
	"strings"
	"time"

	"storefront/config"

	"github.com/go-resty/resty/v2"
)

// Client talks to the commerce/LMS backend API. Every entity the storefront
// renders is owned by that backend; this client never caches or persists.
type Client struct {
	http *resty.Client
}

// API is the global backend client instance
var API *Client

// Connect initializes the global client from application config
func Connect() {
	API = NewClient(config.AppConfig.BackendBaseURL)
}

// NewClient builds a client against the given backend base URL
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15 * time.Second),
	}
}

// BaseURL returns the configured backend base URL
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

const maxRawMessageLen = 200

// responseMessage normalizes any failed backend response to one
// human-readable string: a server-supplied error/message field when the body
// parses, else the truncated raw body, else the HTTP status line.
func responseMessage(resp *resty.Response) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}

	body := strings.TrimSpace(resp.String())
	if body != "" {
		if len(body) > maxRawMessageLen {
			body = body[:maxRawMessageLen] + "..."
		}
		return body
	}
	return resp.Status()
}

// successFlag reports the envelope-level success flag of a response body.
// A missing flag counts as success; only an explicit false fails.
func successFlag(body []byte) bool {
	var envelope struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return true
	}
	return envelope.Success == nil || *envelope.Success
}
