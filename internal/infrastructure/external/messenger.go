package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/niorc/backend/internal/domain/notify"
)

// HTTPMessenger implements notify.Messenger against an SMS/WhatsApp
// gateway with a bearer-token JSON API.
type HTTPMessenger struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPMessenger creates a new HTTPMessenger
func NewHTTPMessenger(baseURL, apiKey string) *HTTPMessenger {
	return &HTTPMessenger{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendMessageRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Send delivers one message to the recipient's phone number
func (m *HTTPMessenger) Send(ctx context.Context, to, message string) error {
	body, err := json.Marshal(sendMessageRequest{To: to, Message: message})
	if err != nil {
		return fmt.Errorf("messenger: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("messenger: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("messenger: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("messenger: gateway returned status %d", resp.StatusCode)
	}
	return nil
}

var _ notify.Messenger = (*HTTPMessenger)(nil)
