// internal/services/asset_pipeline.go
package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/garrybad/icon-kreatif-cms/internal/catalogerr"
)

// StagedImage is an operator-session-local image awaiting commit or discard.
// It is never persisted: on save it is promoted into an ImageRef, on any
// discard path its preview handle is revoked and it is dropped.
type StagedImage struct {
	ID           uuid.UUID
	Name         string
	Data         []byte
	ContentType  string
	PreviewToken string
}

// AssetPipeline manages the images attached to one product edit session:
// newly staged local files, previously-persisted refs the operator retains,
// and persisted refs marked for removal. It is not safe for use across
// operator sessions; each edit gets its own pipeline.
type AssetPipeline struct {
	backend  ImageBackend
	previews *PreviewRegistry
	maxSize  int64

	mu      sync.Mutex
	pending []*StagedImage
	removed map[string]struct{}
}

func NewAssetPipeline(backend ImageBackend, previews *PreviewRegistry, maxSize int64) *AssetPipeline {
	return &AssetPipeline{
		backend:  backend,
		previews: previews,
		maxSize:  maxSize,
		removed:  make(map[string]struct{}),
	}
}

// Stage validates the bytes as an image, issues a revocable preview handle,
// and adds the file to the pending set. Persisted state is untouched.
func (p *AssetPipeline) Stage(name string, data []byte, contentType string) (*StagedImage, error) {
	if len(data) == 0 {
		return nil, catalogerr.Validation("image", fmt.Sprintf("image %s is empty", name))
	}

	if p.maxSize > 0 && int64(len(data)) > p.maxSize {
		return nil, catalogerr.Validation("image",
			fmt.Sprintf("image %s exceeds the maximum size of %d bytes", name, p.maxSize))
	}

	sniffed, ok := detectImageType(data)
	if !ok {
		return nil, catalogerr.Validation("image", fmt.Sprintf("file %s is not a supported image", name))
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = sniffed
	}

	img := &StagedImage{
		ID:           uuid.New(),
		Name:         name,
		Data:         data,
		ContentType:  contentType,
		PreviewToken: p.previews.Issue(data, contentType),
	}

	p.mu.Lock()
	p.pending = append(p.pending, img)
	p.mu.Unlock()

	return img, nil
}

// Unstage revokes the preview handle and drops the image from the pending
// set. Every discard path must come through here.
func (p *AssetPipeline) Unstage(img *StagedImage) {
	p.previews.Revoke(img.PreviewToken)

	p.mu.Lock()
	defer p.mu.Unlock()
	for i, pending := range p.pending {
		if pending.ID == img.ID {
			p.pending = append(p.pending[:i], p.pending[i+1:]...)
			return
		}
	}
}

// RemoveExisting marks a persisted ImageRef for removal on the next save.
// Reversible via RestoreExisting until the commit lands.
func (p *AssetPipeline) RemoveExisting(ref string) {
	p.mu.Lock()
	p.removed[ref] = struct{}{}
	p.mu.Unlock()
}

func (p *AssetPipeline) RestoreExisting(ref string) {
	p.mu.Lock()
	delete(p.removed, ref)
	p.mu.Unlock()
}

// Discard releases every staged image and clears the removal marks. Called
// on cancel and teardown paths; the pipeline is reusable afterwards.
func (p *AssetPipeline) Discard() {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.removed = make(map[string]struct{})
	p.mu.Unlock()

	for _, img := range pending {
		p.previews.Revoke(img.PreviewToken)
	}
}

// Pending reports the number of staged images awaiting commit.
func (p *AssetPipeline) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Commit produces the final image sequence for a product write: the existing
// refs the operator retained, in their original order, followed by every
// staged image encoded through the backend. Encodes run concurrently and the
// commit waits for all of them; if any single one fails the whole commit
// fails, blobs already written for this attempt are deleted best-effort, and
// no staged image is promoted. On success all preview handles are revoked
// and the pending set is cleared.
func (p *AssetPipeline) Commit(slug string, existingRefs []string) ([]string, error) {
	p.mu.Lock()
	pending := make([]*StagedImage, len(p.pending))
	copy(pending, p.pending)
	removed := make(map[string]struct{}, len(p.removed))
	for ref := range p.removed {
		removed[ref] = struct{}{}
	}
	p.mu.Unlock()

	retained := make([]string, 0, len(existingRefs))
	for _, ref := range existingRefs {
		if _, gone := removed[ref]; !gone {
			retained = append(retained, ref)
		}
	}

	results := make([]EncodedImage, len(pending))
	encodeErrs := make([]error, len(pending))

	var g errgroup.Group
	for i, img := range pending {
		i, img := i, img
		g.Go(func() error {
			encoded, err := p.backend.Encode(slug, img)
			if err != nil {
				encodeErrs[i] = err
				return err
			}
			results[i] = encoded
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		p.rollbackBlobs(results)

		var failed []string
		for i, encErr := range encodeErrs {
			if encErr != nil {
				failed = append(failed, pending[i].Name)
			}
		}
		return nil, &catalogerr.PartialUploadError{Failed: failed, Err: err}
	}

	refs := retained
	for _, encoded := range results {
		refs = append(refs, encoded.Ref)
	}

	p.mu.Lock()
	p.pending = nil
	p.removed = make(map[string]struct{})
	p.mu.Unlock()

	for _, img := range pending {
		p.previews.Revoke(img.PreviewToken)
	}

	return refs, nil
}

// rollbackBlobs deletes blobs written by a commit attempt that failed as a
// whole. Best-effort: a blob that cannot be deleted is logged and orphaned
// rather than failing the already-failed write a second time.
func (p *AssetPipeline) rollbackBlobs(results []EncodedImage) {
	deleter, ok := p.backend.(interface{ blobStore() BlobStore })
	if !ok {
		return
	}

	blobs := deleter.blobStore()
	for _, encoded := range results {
		if encoded.BlobKey == "" {
			continue
		}
		if err := blobs.Delete(encoded.BlobKey); err != nil {
			logrus.WithError(err).WithField("key", encoded.BlobKey).
				Warn("Failed to delete orphaned blob after aborted commit")
		}
	}
}

// detectImageType sniffs the magic bytes of common web image formats.
func detectImageType(buf []byte) (string, bool) {
	switch {
	case len(buf) >= 3 && buf[0] == 0xFF && buf[1] == 0xD8 && buf[2] == 0xFF:
		return "image/jpeg", true
	case len(buf) >= 8 && buf[0] == 0x89 && buf[1] == 0x50 && buf[2] == 0x4E && buf[3] == 0x47:
		return "image/png", true
	case len(buf) >= 6 && (string(buf[0:6]) == "GIF87a" || string(buf[0:6]) == "GIF89a"):
		return "image/gif", true
	case len(buf) >= 12 && string(buf[0:4]) == "RIFF" && string(buf[8:12]) == "WEBP":
		return "image/webp", true
	}
	return "", false
}
