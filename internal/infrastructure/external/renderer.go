// Package external holds HTTP adapters for outbound collaborator services
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/niorc/backend/internal/domain/billing"
)

// HTTPRenderer implements billing.Renderer against a rendering service
// that accepts the bill as JSON and responds with a PDF document.
type HTTPRenderer struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPRenderer creates a new HTTPRenderer
func NewHTTPRenderer(baseURL string) *HTTPRenderer {
	return &HTTPRenderer{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Render sends the bill to the rendering service and returns the PDF bytes
func (r *HTTPRenderer) Render(ctx context.Context, bill *billing.Bill) ([]byte, error) {
	body, err := json.Marshal(bill)
	if err != nil {
		return nil, fmt.Errorf("renderer: failed to marshal bill: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/render/bill", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("renderer: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("renderer: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("renderer: service returned status %d", resp.StatusCode)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("renderer: failed to read response: %w", err)
	}
	return pdf, nil
}

var _ billing.Renderer = (*HTTPRenderer)(nil)
