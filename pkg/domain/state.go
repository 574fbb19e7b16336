package domain

import (
	"fmt"
	"maps"
	"slices"
)

// NodeState is the per-node lifecycle tag of a traversal.
// Not every algorithm uses every tag: the cycle-tolerant engine only moves
// between Queued, CalculateScore and Visited.
type NodeState int

const (
	Unvisited NodeState = iota
	Queued
	StartProcessing
	ProcessChildren
	CalculateScore
	EndProcessing
	Visited
)

var nodeStateNames = [...]string{
	Unvisited:       "unvisited",
	Queued:          "queued",
	StartProcessing: "start_processing",
	ProcessChildren: "process_children",
	CalculateScore:  "calculate_score",
	EndProcessing:   "end_processing",
	Visited:         "visited",
}

func (s NodeState) String() string {
	if s < 0 || int(s) >= len(nodeStateNames) {
		return fmt.Sprintf("NodeState(%d)", int(s))
	}
	return nodeStateNames[s]
}

// MarshalText encodes the state by name.
func (s NodeState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *NodeState) UnmarshalText(text []byte) error {
	for i, name := range nodeStateNames {
		if name == string(text) {
			*s = NodeState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown node state %q", text)
}

// Status is the traversal-wide progress. It only moves forward.
type Status int

const (
	StatusInit Status = iota
	StatusInProgress
	StatusFinished
)

var statusNames = [...]string{
	StatusInit:       "init",
	StatusInProgress: "in_progress",
	StatusFinished:   "finished",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Phase identifies where a stepping engine resumes. The values are owned by
// each engine; zero always means "not started".
type Phase int

// Cursor is the resumption point of a traversal. Engines keep every register
// they need between two micro-steps here, so a TraversalState alone is enough
// to continue stepping.
type Cursor struct {
	Phase Phase  `json:"phase"`
	Node  string `json:"node,omitempty"` // node being processed

	Items []string `json:"items,omitempty"` // children (or sinks) being walked
	Index int      `json:"index,omitempty"`
	Ready int      `json:"ready,omitempty"` // resolved children seen so far

	Parents     []string `json:"parents,omitempty"` // parents being queued
	ParentIndex int      `json:"parent_index,omitempty"`
	Resume      Phase    `json:"resume,omitempty"` // where to go once parents are queued

	// Fault holds the invariant violation that halted the traversal.
	Fault string `json:"fault,omitempty"`
}

// Halted reports whether an invariant violation stopped the traversal.
func (c Cursor) Halted() bool {
	return c.Fault != ""
}

// TraversalState is the single mutable aggregate driving one traversal
// session. It is created fresh per (graph, algorithm) pair, mutated in place
// by exactly one engine and discarded on restart.
type TraversalState struct {
	Status      Status `json:"status"`
	Description string `json:"description"`

	// Highlight pointers for renderers. Empty means none.
	SelectedNode     string `json:"selectedNode,omitempty"`
	ShowNodeChildren string `json:"showNodeChildren,omitempty"`
	ShowNodeParent   string `json:"showNodeParent,omitempty"`

	// Stack holds pending node IDs: popped from the end by the acyclic engine,
	// from the front by the cycle-tolerant one.
	Stack []string `json:"stack"`

	NodeStates map[string]NodeState `json:"nodeStates"`
	NodeScores map[string]*float64  `json:"nodeScores"`

	// Algorithm is bound by the first step. Cursor phases only make sense to
	// the engine that wrote them.
	Algorithm Algorithm `json:"algorithm,omitempty"`

	// Steps counts the micro-steps taken so far.
	Steps  int    `json:"steps"`
	Cursor Cursor `json:"cursor"`

	// Immutable inputs, shared between snapshots.
	Order   []string             `json:"-"`
	Adj     *AdjacencyList       `json:"-"`
	Inverse *AdjacencyList       `json:"-"`
	Nodes   map[string]GraphNode `json:"-"`
}

// NewTraversalState creates the initial state for nodes and their adjacency
// list. Every ID in adj starts Unvisited with no score.
func NewTraversalState(nodes []GraphNode, adj *AdjacencyList) *TraversalState {
	byID := make(map[string]GraphNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	return newState(adj.Keys(), adj, byID)
}

func newState(ids []string, adj *AdjacencyList, nodes map[string]GraphNode) *TraversalState {
	state := &TraversalState{
		Status:     StatusInit,
		Stack:      []string{},
		NodeStates: make(map[string]NodeState, len(ids)),
		NodeScores: make(map[string]*float64, len(ids)),
		Order:      ids,
		Adj:        adj,
		Nodes:      nodes,
	}
	for _, id := range ids {
		state.NodeStates[id] = Unvisited
		state.NodeScores[id] = nil
	}
	return state
}

// Restart returns a fresh state over the same graph. s is left untouched.
func (s *TraversalState) Restart() *TraversalState {
	return newState(s.Order, s.Adj, s.Nodes)
}

// Node returns the declared node for id.
func (s *TraversalState) Node(id string) (GraphNode, bool) {
	n, ok := s.Nodes[id]
	return n, ok
}

// GraphNodes returns the nodes of the traversal in key order.
func (s *TraversalState) GraphNodes() []GraphNode {
	nodes := make([]GraphNode, 0, len(s.Order))
	for _, id := range s.Order {
		if n, ok := s.Nodes[id]; ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// IsMax reports the orientation of id. Undeclared IDs are minimizers.
func (s *TraversalState) IsMax(id string) bool {
	return s.Nodes[id].IsMax
}

// SetScore records a copy of v as the score of id.
func (s *TraversalState) SetScore(id string, v float64) {
	s.NodeScores[id] = &v
}

// ClearHighlights resets the transient highlight pointers.
func (s *TraversalState) ClearHighlights() {
	s.SelectedNode = ""
	s.ShowNodeChildren = ""
	s.ShowNodeParent = ""
}

// Finished reports whether the traversal is complete.
func (s *TraversalState) Finished() bool {
	return s.Status == StatusFinished
}

// Snapshot returns a deep copy of the mutable parts of the state. Immutable
// inputs (nodes, adjacency lists) are shared.
func (s *TraversalState) Snapshot() *TraversalState {
	cp := *s
	cp.Stack = slices.Clone(s.Stack)
	if cp.Stack == nil {
		cp.Stack = []string{}
	}
	cp.NodeStates = maps.Clone(s.NodeStates)
	cp.NodeScores = make(map[string]*float64, len(s.NodeScores))
	for id, v := range s.NodeScores {
		if v != nil {
			score := *v
			cp.NodeScores[id] = &score
		} else {
			cp.NodeScores[id] = nil
		}
	}
	cp.Cursor.Items = slices.Clone(s.Cursor.Items)
	cp.Cursor.Parents = slices.Clone(s.Cursor.Parents)
	return &cp
}
