// internal/services/session.go
package services

import (
	"github.com/google/uuid"
)

// Session identifies the operator behind a write. It is passed explicitly
// into the synchronizer so the guards and pipeline never read ambient state.
type Session struct {
	OperatorID uuid.UUID
	Username   string
}
