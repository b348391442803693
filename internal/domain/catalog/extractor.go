package catalog

import "context"

// ExtractedItem is one menu entry recognized from an uploaded image
type ExtractedItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

// MenuExtractor recognizes menu entries from an image. Implementations
// call an external AI service; the domain only depends on this shape.
type MenuExtractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) ([]ExtractedItem, error)
}
