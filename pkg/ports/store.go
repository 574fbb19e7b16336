package ports

import (
	"context"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// SessionStore keeps live sessions for the lifetime of the process.
type SessionStore interface {
	// Save stores a copy of the session under its ID.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves a copy of the session.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of the stored sessions.
	List(ctx context.Context) ([]string, error)
}
