package domain

import "time"

// Session is one live traversal owned by a session manager: a graph, the
// algorithm chosen for it and the current state.
type Session struct {
	ID        string          `json:"id"`
	Graph     string          `json:"graph"`
	Algorithm Algorithm       `json:"algorithm"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	State     *TraversalState `json:"state"`
}

// Clone returns a copy whose state can be mutated independently.
func (s *Session) Clone() *Session {
	cp := *s
	if s.State != nil {
		cp.State = s.State.Snapshot()
	}
	return &cp
}
