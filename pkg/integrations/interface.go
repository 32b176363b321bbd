package integrations

import "context"

// ImageFetcher downloads a dish photo by absolute URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Processor prepares downloaded image bytes for embedding.
type Processor interface {
	Process(image []byte) ([]byte, error)
}
