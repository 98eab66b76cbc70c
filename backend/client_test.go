package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func TestFetchOrderNormalizesServerMessage(t *testing.T) {
	api := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "order not found", "message": "ignored"})
	}))

	_, err := api.FetchOrder(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "order not found", err.Error())
}

func TestFetchOrderFallsBackToMessageField(t *testing.T) {
	api := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "bad order id"})
	}))

	_, err := api.FetchOrder(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, "bad order id", err.Error())
}

func TestFetchOrderTruncatesRawBody(t *testing.T) {
	long := strings.Repeat("a", 500)
	api := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(long))
	}))

	_, err := api.FetchOrder(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, long[:200]+"...", err.Error())
}

func TestFetchOrderUsesStatusWhenBodyEmpty(t *testing.T) {
	api := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := api.FetchOrder(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestFetchOrderRejectsSuccessFalse(t *testing.T) {
	api := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "expired session"})
	}))

	_, err := api.FetchOrder(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, "expired session", err.Error())
}

func TestFetchOrderNormalizesShippingShapes(t *testing.T) {
	api := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"id":     "order-1",
				"status": "PENDING",
				"total":  42.0,
				"shippingAddress": map[string]string{
					"customerName": "A. Learner",
					"address":      "1 Legacy Road",
					"district":     "Old Town",
					"zip":          "10110",
				},
			},
		})
	}))

	order, err := api.FetchOrder(context.Background(), "order-1")
	require.NoError(t, err)
	require.NotNil(t, order.Shipping)
	assert.Equal(t, "A. Learner", order.Shipping.Name)
	assert.Equal(t, "1 Legacy Road", order.Shipping.Line1)
	assert.Equal(t, "Old Town", order.Shipping.City)
	assert.Equal(t, "10110", order.Shipping.PostalCode)
}

func TestUploadSlipSendsMultipart(t *testing.T) {
	var gotOrderID, gotFilename string
	api := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotOrderID = r.FormValue("orderId")
		if _, header, err := r.FormFile("file"); err == nil {
			gotFilename = header.Filename
		}
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))

	err := api.UploadSlip(context.Background(), "order-9", "slip.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "order-9", gotOrderID)
	assert.Equal(t, "slip.png", gotFilename)
}

func TestEnrollmentExistsTruthiness(t *testing.T) {
	tests := []struct {
		body   string
		exists bool
	}{
		{`{"enrollment": {"id": "e-1"}}`, true},
		{`{"data": {"id": "e-1"}}`, true},
		{`{"id": "e-1"}`, true},
		{`{"enrollment": null}`, false},
		{`{"enrollment": false}`, false},
		{`{"id": ""}`, false},
		{`{}`, false},
	}

	for _, tt := range tests {
		api := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(tt.body))
		}))

		exists, err := api.EnrollmentExists(context.Background(), "u", "c")
		require.NoError(t, err, tt.body)
		assert.Equal(t, tt.exists, exists, tt.body)
	}
}

func TestProxyURLsEscapeTarget(t *testing.T) {
	api := NewClient("http://backend.local")

	view := api.ProxyViewURL("https://files.example.com/book.pdf?x=1&y=2")
	assert.Equal(t, "http://backend.local/api/proxy-view?url=https%3A%2F%2Ffiles.example.com%2Fbook.pdf%3Fx%3D1%26y%3D2", view)

	download := api.ProxyDownloadURL("https://files.example.com/book.pdf")
	assert.True(t, strings.HasPrefix(download, "http://backend.local/api/proxy-download-pdf?url="))
}
