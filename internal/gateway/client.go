// Package gateway implements the client for the external messaging
// gateway (WuzAPI-style). The connection parameters live in the tenant
// settings record and are passed per call; nothing here reads globals.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/criartebr/stream-panel/internal/models"
)

// SendTimeout bounds a text dispatch; ProbeTimeout bounds the QR fetch.
const (
	SendTimeout  = 30 * time.Second
	ProbeTimeout = 10 * time.Second
)

// Result is the outcome of a dispatch. Success tracks the HTTP status
// only; transport failures land here as Success=false with the failure
// text in Detail, never as a returned error.
type Result struct {
	Success bool   `json:"success"`
	Status  int    `json:"status,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

type textMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Client talks to the messaging gateway over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a gateway client with the dispatch timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: SendTimeout},
	}
}

// SendText posts a message to `{base}/{instance}/messages/text` with the
// tenant token header. The only success signal is HTTP 200.
func (c *Client) SendText(ctx context.Context, st *models.Settings, phone, message string) Result {
	url := fmt.Sprintf("%s/%s/messages/text", st.GatewayURL, st.GatewayInstance)

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(textMessage{Phone: phone, Message: message}); err != nil {
		return Result{Success: false, Detail: err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return Result{Success: false, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", st.GatewayToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Success: false, Detail: err.Error()}
	}
	defer resp.Body.Close()

	return Result{
		Success: resp.StatusCode == http.StatusOK,
		Status:  resp.StatusCode,
	}
}

// QRCode fetches the instance pairing payload from
// `{base}/{instance}/qrcode` and returns the raw gateway JSON.
func (c *Client) QRCode(ctx context.Context, st *models.Settings) (json.RawMessage, error) {
	const op = "gateway.QRCode"
	url := fmt.Sprintf("%s/%s/qrcode", st.GatewayURL, st.GatewayInstance)

	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Token", st.GatewayToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return json.RawMessage(body), nil
}
