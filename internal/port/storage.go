package port

import (
	"context"
	"io"
)

// UploadInput describes one object written to the invoice archive.
// Metadata keys are stored as x-amz-meta-* headers and must be ASCII.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
	Metadata    map[string]string
}

// UploadOutput is where the archived object ended up.
type UploadOutput struct {
	Location string
}

// ObjectStorage keeps the source XML of imported invoices.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	// Delete removes an object that no payable refers to.
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
