// internal/services/image_backend.go
package services

import (
	"encoding/base64"
	"fmt"
)

// EncodedImage is the persisted form of one staged image. Ref is the string
// stored in the product's images column. BlobKey is set only by the upload
// backend and lets a failed commit delete the blobs it already wrote.
type EncodedImage struct {
	Ref     string
	BlobKey string
}

// ImageBackend turns one staged image into a persisted ImageRef. The two
// implementations are mutually exclusive per deployment: the catalog started
// on inline encoding and later moved to blob uploads, so both live behind
// this interface.
type ImageBackend interface {
	Encode(slug string, img *StagedImage) (EncodedImage, error)
}

// InlineBackend encodes image bytes into a self-contained data URI stored
// directly in the database row.
type InlineBackend struct{}

func NewInlineBackend() *InlineBackend {
	return &InlineBackend{}
}

func (b *InlineBackend) Encode(_ string, img *StagedImage) (EncodedImage, error) {
	encoded := base64.StdEncoding.EncodeToString(img.Data)
	return EncodedImage{
		Ref: fmt.Sprintf("data:%s;base64,%s", img.ContentType, encoded),
	}, nil
}

// UploadBackend stores image bytes in the blob-store collaborator under
// products/<slug>/<generated filename> and persists the public URL.
type UploadBackend struct {
	blobs BlobStore
}

func NewUploadBackend(blobs BlobStore) *UploadBackend {
	return &UploadBackend{blobs: blobs}
}

func (b *UploadBackend) Encode(slug string, img *StagedImage) (EncodedImage, error) {
	key := GenerateImageKey(slug, img.ContentType)

	url, err := b.blobs.Put(key, img.Data, img.ContentType)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("failed to upload image %s: %w", img.Name, err)
	}

	return EncodedImage{Ref: url, BlobKey: key}, nil
}

// blobStore exposes the underlying store so the pipeline can delete blobs
// written by a commit attempt that failed as a whole.
func (b *UploadBackend) blobStore() BlobStore {
	return b.blobs
}
