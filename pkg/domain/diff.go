package domain

// StateDiff represents the changes between two traversal snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	Step int `json:"step"`

	Status      *Status `json:"status,omitempty"`
	Description *string `json:"description,omitempty"`

	// Highlight pointers are sent whenever they change; an empty string
	// means the highlight was cleared.
	SelectedNode     *string `json:"selectedNode,omitempty"`
	ShowNodeChildren *string `json:"showNodeChildren,omitempty"`
	ShowNodeParent   *string `json:"showNodeParent,omitempty"`

	NodeStates map[string]NodeState `json:"nodeStates,omitempty"`
	NodeScores map[string]*float64  `json:"nodeScores,omitempty"`

	Stack []string `json:"stack,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing observable changed.
func Diff(oldState, newState *TraversalState) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{Step: newState.Steps}

	if oldState == nil || oldState.Status != newState.Status {
		diff.Status = &newState.Status
	}
	if oldState == nil || oldState.Description != newState.Description {
		diff.Description = &newState.Description
	}
	if oldState == nil || oldState.SelectedNode != newState.SelectedNode {
		diff.SelectedNode = &newState.SelectedNode
	}
	if oldState == nil || oldState.ShowNodeChildren != newState.ShowNodeChildren {
		diff.ShowNodeChildren = &newState.ShowNodeChildren
	}
	if oldState == nil || oldState.ShowNodeParent != newState.ShowNodeParent {
		diff.ShowNodeParent = &newState.ShowNodeParent
	}

	diff.NodeStates = diffStates(oldState, newState)
	diff.NodeScores = diffScores(oldState, newState)

	if oldState == nil || !equalStrings(oldState.Stack, newState.Stack) {
		diff.Stack = append([]string{}, newState.Stack...)
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffStates(old, new *TraversalState) map[string]NodeState {
	delta := make(map[string]NodeState)
	for id, st := range new.NodeStates {
		if old == nil {
			delta[id] = st
			continue
		}
		if prev, ok := old.NodeStates[id]; !ok || prev != st {
			delta[id] = st
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

func diffScores(old, new *TraversalState) map[string]*float64 {
	delta := make(map[string]*float64)
	for id, v := range new.NodeScores {
		if old == nil {
			if v != nil {
				delta[id] = v
			}
			continue
		}
		if !equalScore(old.NodeScores[id], v) {
			delta[id] = v
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

// Resolved returns the IDs whose state became Visited in this diff.
func (d *StateDiff) Resolved() []string {
	var ids []string
	for id, st := range d.NodeStates {
		if st == Visited {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Status == nil &&
		d.Description == nil &&
		d.SelectedNode == nil &&
		d.ShowNodeChildren == nil &&
		d.ShowNodeParent == nil &&
		len(d.NodeStates) == 0 &&
		len(d.NodeScores) == 0 &&
		d.Stack == nil
}

func equalScore(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
