package external

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/niorc/backend/internal/domain/catalog"
)

// HTTPExtractor implements catalog.MenuExtractor against a vision service
// that recognizes menu entries from a photographed menu card.
type HTTPExtractor struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPExtractor creates a new HTTPExtractor
func NewHTTPExtractor(baseURL, apiKey string) *HTTPExtractor {
	return &HTTPExtractor{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			// Vision extraction is slow
			Timeout: 60 * time.Second,
		},
	}
}

type extractRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

type extractResponse struct {
	Items []catalog.ExtractedItem `json:"items"`
}

// Extract sends the image and returns the recognized menu entries
func (e *HTTPExtractor) Extract(ctx context.Context, image []byte, mimeType string) ([]catalog.ExtractedItem, error) {
	body, err := json.Marshal(extractRequest{
		Image:    base64.StdEncoding.EncodeToString(image),
		MimeType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("extractor: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/extract/menu", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extractor: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extractor: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("extractor: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("extractor: service returned status %d", resp.StatusCode)
	}

	var parsed extractResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("extractor: failed to parse response: %w", err)
	}
	return parsed.Items, nil
}

var _ catalog.MenuExtractor = (*HTTPExtractor)(nil)
