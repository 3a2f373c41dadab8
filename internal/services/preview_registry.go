// internal/services/preview_registry.go
package services

import (
	"sync"

	"github.com/google/uuid"
)

// PreviewRegistry hands out revocable handles for staged image bytes so the
// edit surface can render previews before anything is persisted. A handle
// must be revoked on every discard path; Outstanding exposes the live count
// so leaks are observable.
type PreviewRegistry struct {
	mu      sync.RWMutex
	entries map[string]previewEntry
}

type previewEntry struct {
	data        []byte
	contentType string
}

func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{entries: make(map[string]previewEntry)}
}

// Issue registers the bytes and returns an opaque token under which they can
// be resolved until revoked.
func (r *PreviewRegistry) Issue(data []byte, contentType string) string {
	token := uuid.New().String()

	r.mu.Lock()
	r.entries[token] = previewEntry{data: data, contentType: contentType}
	r.mu.Unlock()

	return token
}

// Resolve returns the bytes and content type for a live handle.
func (r *PreviewRegistry) Resolve(token string) ([]byte, string, bool) {
	r.mu.RLock()
	entry, ok := r.entries[token]
	r.mu.RUnlock()

	if !ok {
		return nil, "", false
	}
	return entry.data, entry.contentType, true
}

// Revoke releases a handle. Revoking an already-revoked or unknown token is
// a no-op.
func (r *PreviewRegistry) Revoke(token string) {
	r.mu.Lock()
	delete(r.entries, token)
	r.mu.Unlock()
}

// Outstanding reports the number of live handles.
func (r *PreviewRegistry) Outstanding() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
