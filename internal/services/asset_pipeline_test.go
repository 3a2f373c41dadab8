// internal/services/asset_pipeline_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrybad/icon-kreatif-cms/internal/catalogerr"
)

func jpegBytes(payload string) []byte {
	return append([]byte{0xFF, 0xD8, 0xFF}, []byte(payload)...)
}

func pngBytes(payload string) []byte {
	return append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, []byte(payload)...)
}

func newInlinePipeline(maxSize int64) (*AssetPipeline, *PreviewRegistry) {
	previews := NewPreviewRegistry()
	return NewAssetPipeline(NewInlineBackend(), previews, maxSize), previews
}

func TestStageRejectsEmptyFile(t *testing.T) {
	pipeline, _ := newInlinePipeline(0)

	_, err := pipeline.Stage("empty.jpg", nil, "image/jpeg")
	assert.True(t, catalogerr.IsValidation(err))
}

func TestStageRejectsOversizedFile(t *testing.T) {
	pipeline, _ := newInlinePipeline(8)

	_, err := pipeline.Stage("big.jpg", jpegBytes("way too many bytes"), "image/jpeg")
	assert.True(t, catalogerr.IsValidation(err))
	assert.Zero(t, pipeline.Pending())
}

func TestStageRejectsNonImage(t *testing.T) {
	pipeline, _ := newInlinePipeline(0)

	_, err := pipeline.Stage("notes.txt", []byte("plain text"), "text/plain")
	assert.True(t, catalogerr.IsValidation(err))
}

func TestStageSniffsContentType(t *testing.T) {
	pipeline, previews := newInlinePipeline(0)

	img, err := pipeline.Stage("photo", pngBytes("pixels"), "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)

	_, contentType, ok := previews.Resolve(img.PreviewToken)
	require.True(t, ok)
	assert.Equal(t, "image/png", contentType)
}

func TestUnstageDropsImageAndRevokesPreview(t *testing.T) {
	pipeline, previews := newInlinePipeline(0)

	img, err := pipeline.Stage("a.jpg", jpegBytes("a"), "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, 1, pipeline.Pending())
	require.Equal(t, 1, previews.Outstanding())

	pipeline.Unstage(img)
	assert.Zero(t, pipeline.Pending())
	assert.Zero(t, previews.Outstanding())
}

func TestDiscardReleasesEverything(t *testing.T) {
	pipeline, previews := newInlinePipeline(0)

	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		_, err := pipeline.Stage(name, jpegBytes(name), "image/jpeg")
		require.NoError(t, err)
	}
	pipeline.RemoveExisting("old-ref")

	pipeline.Discard()
	assert.Zero(t, pipeline.Pending())
	assert.Zero(t, previews.Outstanding())

	// Removal marks were cleared too: a later commit retains everything.
	refs, err := pipeline.Commit("kaos-promo", []string{"old-ref"})
	require.NoError(t, err)
	assert.Equal(t, []string{"old-ref"}, refs)
}

func TestCommitOrdersRetainedBeforeStaged(t *testing.T) {
	pipeline, previews := newInlinePipeline(0)

	for _, name := range []string{"new1.jpg", "new2.jpg", "new3.jpg"} {
		_, err := pipeline.Stage(name, jpegBytes(name), "image/jpeg")
		require.NoError(t, err)
	}
	pipeline.RemoveExisting("existing2")

	refs, err := pipeline.Commit("kaos-promo", []string{"existing1", "existing2", "existing3"})
	require.NoError(t, err)
	require.Len(t, refs, 5)

	// Retained refs first, original order, with the removed one gone.
	assert.Equal(t, "existing1", refs[0])
	assert.Equal(t, "existing3", refs[1])

	// Staged images follow in staging order as data URIs.
	for i, ref := range refs[2:] {
		assert.True(t, strings.HasPrefix(ref, "data:image/jpeg;base64,"), "ref %d: %s", i, ref)
	}

	// Success clears the pending set and every preview handle.
	assert.Zero(t, pipeline.Pending())
	assert.Zero(t, previews.Outstanding())
}

func TestCommitRestoreExistingUndoesRemoval(t *testing.T) {
	pipeline, _ := newInlinePipeline(0)

	pipeline.RemoveExisting("existing1")
	pipeline.RestoreExisting("existing1")

	refs, err := pipeline.Commit("kaos-promo", []string{"existing1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"existing1"}, refs)
}

func TestCommitFailsAtomically(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.failOn = jpegBytes("poison")
	previews := NewPreviewRegistry()
	pipeline := NewAssetPipeline(NewUploadBackend(blobs), previews, 0)

	_, err := pipeline.Stage("good1.jpg", jpegBytes("good1"), "image/jpeg")
	require.NoError(t, err)
	_, err = pipeline.Stage("bad.jpg", jpegBytes("poison"), "image/jpeg")
	require.NoError(t, err)
	_, err = pipeline.Stage("good2.jpg", jpegBytes("good2"), "image/jpeg")
	require.NoError(t, err)

	_, err = pipeline.Commit("kaos-promo", []string{"existing1"})
	require.Error(t, err)
	assert.True(t, catalogerr.IsPartialUpload(err))

	var partial *catalogerr.PartialUploadError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"bad.jpg"}, partial.Failed)

	// Both blobs written for the aborted attempt were cleaned up.
	assert.Empty(t, blobs.stored)
	assert.Len(t, blobs.deleted, 2)

	// The staged set survives so the operator can retry the save.
	assert.Equal(t, 3, pipeline.Pending())
	assert.Equal(t, 3, previews.Outstanding())
}

func TestCommitUploadBackendKeysUnderSlug(t *testing.T) {
	blobs := newFakeBlobStore()
	pipeline := NewAssetPipeline(NewUploadBackend(blobs), NewPreviewRegistry(), 0)

	_, err := pipeline.Stage("a.jpg", jpegBytes("a"), "image/jpeg")
	require.NoError(t, err)

	refs, err := pipeline.Commit("kaos-promo", nil)
	require.NoError(t, err)
	require.Len(t, refs, 1)

	for key := range blobs.stored {
		assert.True(t, strings.HasPrefix(key, "products/kaos-promo/"))
		assert.True(t, strings.HasSuffix(key, ".jpg"))
	}
	assert.True(t, strings.HasPrefix(refs[0], "https://cdn.example.com/products/kaos-promo/"))
}
