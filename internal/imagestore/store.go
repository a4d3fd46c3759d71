package imagestore

import "context"

// Image is the hosted-image metadata returned by the media host.
type Image struct {
	PublicID    string `json:"public_id"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Store is the contract with the external media host. Ids are opaque to
// callers; courses persist them as-is.
type Store interface {
	Upload(ctx context.Context, data []byte) (string, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, ids []string) ([]Image, error)
}
