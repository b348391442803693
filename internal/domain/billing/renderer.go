package billing

import "context"

// Renderer produces a printable PDF for a bill. Implementations call an
// external rendering service; only the request/response shape matters here.
type Renderer interface {
	Render(ctx context.Context, bill *Bill) ([]byte, error)
}
