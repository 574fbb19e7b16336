package runtime

import (
	"fmt"

	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/graph"
)

// Phases of the cycle-tolerant engine.
const (
	cyclicStart domain.Phase = iota
	cyclicSinks
	cyclicSinkNext
	cyclicSinkParents
	cyclicDequeue
	cyclicChild
	cyclicForce
	cyclicAfterAll
	cyclicQueueParents
	cyclicParent
	cyclicParentsDone
	cyclicSweep
	cyclicFinished
)

var cyclicPhases = map[domain.Phase]string{
	cyclicStart:        "start",
	cyclicSinks:        "sinks",
	cyclicSinkNext:     "sink_next",
	cyclicSinkParents:  "sink_parents",
	cyclicDequeue:      "dequeue",
	cyclicChild:        "child",
	cyclicForce:        "force",
	cyclicAfterAll:     "after_all",
	cyclicQueueParents: "queue_parents",
	cyclicParent:       "parent",
	cyclicParentsDone:  "parents_done",
	cyclicSweep:        "sweep",
	cyclicFinished:     "finished",
}

// cyclic is retrograde minimax: scores flow backwards from the terminal nodes
// over a FIFO queue, and a node is only committed once its value is forced
// or all of its children are solved. Whatever is left at the end is a draw.
type cyclic struct{}

func (cyclic) phaseName(p domain.Phase) string {
	return cyclicPhases[p]
}

func (cy cyclic) advance(s *domain.TraversalState) error {
	c := &s.Cursor
	if c.Phase > cyclicSinks && s.Inverse == nil {
		s.Inverse = graph.InvertGraph(s.Adj)
	}
	for {
		switch c.Phase {
		case cyclicStart:
			s.Description = "Find all terminal nodes and set their scores"
			c.Phase = cyclicSinks
			return nil

		case cyclicSinks:
			if err := cy.seed(s); err != nil {
				return err
			}

		case cyclicSinkNext:
			if c.Index < len(c.Items) {
				sink := c.Items[c.Index]
				c.Index++
				score := s.Nodes[sink].Score
				s.SetScore(sink, *score)
				s.NodeStates[sink] = domain.Visited
				s.Description = fmt.Sprintf("Terminal node %s with value: %s", sink, domain.FormatScore(score))
				s.SelectedNode = sink
				c.Node = sink
				c.Parents = graph.SortedChildren(s.Inverse.Successors(sink))
				c.ParentIndex = 0
				c.Phase = cyclicSinkParents
				return nil
			}
			c.Items, c.Index, c.Node = nil, 0, ""
			s.Description = "Ready to start navigating the graph backwards"
			s.SelectedNode = ""
			c.Phase = cyclicDequeue
			return nil

		case cyclicSinkParents:
			if c.ParentIndex < len(c.Parents) {
				p := c.Parents[c.ParentIndex]
				c.ParentIndex++
				s.ShowNodeParent = c.Node
				s.SelectedNode = p
				switch s.NodeStates[p] {
				case domain.Queued:
					s.Description = fmt.Sprintf("Node %s already in the queue", p)
				case domain.Visited:
					s.Description = fmt.Sprintf("Node %s already solved, do nothing", p)
				default:
					s.Description = fmt.Sprintf("Queuing node %s", p)
					s.NodeStates[p] = domain.Queued
					s.Stack = append(s.Stack, p)
				}
				return nil
			}
			s.ShowNodeParent = ""
			c.Parents, c.ParentIndex = nil, 0
			c.Phase = cyclicSinkNext

		case cyclicDequeue:
			if len(s.Stack) == 0 {
				s.ShowNodeChildren = ""
				s.SelectedNode = ""
				s.Description = "The rest of the nodes can't force a win/lose state, so we can mark them as a draw"
				c.Node = ""
				c.Phase = cyclicSweep
				return nil
			}
			id := s.Stack[0]
			s.Stack = s.Stack[1:]
			if s.NodeStates[id] == domain.Visited {
				continue
			}
			children := graph.SortedChildren(s.Adj.Successors(id))
			if len(children) == 0 {
				return invariant("node %s should have children", id)
			}
			s.NodeStates[id] = domain.CalculateScore
			s.SelectedNode = id
			s.ShowNodeChildren = id
			s.Description = fmt.Sprintf("Check children to see if %s can win", s.Nodes[id].Role())
			c.Node = id
			c.Items, c.Index, c.Ready = children, 0, 0
			c.Phase = cyclicChild
			return nil

		case cyclicChild:
			if c.Index < len(c.Items) {
				child := c.Items[c.Index]
				c.Index++
				s.SelectedNode = child
				score := s.NodeScores[child]
				switch {
				case score == nil:
					s.Description = fmt.Sprintf("Node %s is not ready, skip for now", child)
				case favourable(s.IsMax(c.Node), *score):
					s.Description = "Can force a win, so we propagate the score"
					c.Phase = cyclicForce
				default:
					c.Ready++
					s.Description = "Can't force a win, continue looking..."
				}
				return nil
			}
			if c.Ready < len(c.Items) {
				// Left unresolved until a child resolution queues it again.
				c.Items, c.Index, c.Ready = nil, 0, 0
				c.Phase = cyclicDequeue
				continue
			}
			score, err := best(s, c.Node, c.Items)
			if err != nil {
				return err
			}
			s.SelectedNode = c.Node
			s.Description = "All child nodes can force a result, so this means that this node does not really have a choice"
			s.SetScore(c.Node, score)
			s.NodeStates[c.Node] = domain.Visited
			c.Phase = cyclicAfterAll
			return nil

		case cyclicForce:
			winner := c.Items[c.Index-1]
			s.SelectedNode = c.Node
			s.SetScore(c.Node, *s.NodeScores[winner])
			s.NodeStates[c.Node] = domain.Visited
			c.Resume = cyclicForce
			c.Phase = cyclicQueueParents
			return nil

		case cyclicAfterAll:
			s.ShowNodeChildren = ""
			c.Resume = cyclicAfterAll
			c.Phase = cyclicQueueParents

		case cyclicQueueParents:
			id := c.Node
			c.Parents = graph.SortedChildren(s.Inverse.Successors(id))
			c.ParentIndex = 0
			s.SelectedNode = id
			if len(c.Parents) > 0 {
				s.ShowNodeParent = id
				s.Description = "Push parent nodes into the queue"
				c.Phase = cyclicParent
			} else {
				s.ShowNodeParent = ""
				s.Description = "No parent nodes to push into the queue"
				c.Phase = cyclicParentsDone
			}
			return nil

		case cyclicParent:
			if c.ParentIndex < len(c.Parents) {
				p := c.Parents[c.ParentIndex]
				c.ParentIndex++
				s.SelectedNode = p
				switch s.NodeStates[p] {
				case domain.Queued:
					s.Description = fmt.Sprintf("Node %s already in the queue", p)
				case domain.Visited:
					s.Description = fmt.Sprintf("Node %s already solved, do nothing", p)
				default:
					s.Description = fmt.Sprintf("Node %s into the queue", p)
					s.NodeStates[p] = domain.Queued
					s.Stack = append(s.Stack, p)
				}
				return nil
			}
			s.ShowNodeParent = ""
			c.Phase = cyclicParentsDone

		case cyclicParentsDone:
			resume := c.Resume
			c.Parents, c.ParentIndex, c.Resume = nil, 0, 0
			c.Items, c.Index, c.Ready = nil, 0, 0
			c.Phase = cyclicDequeue
			if resume == cyclicForce {
				s.ShowNodeParent = ""
				s.SelectedNode = c.Node
				s.Description = fmt.Sprintf("Node %s settled with score %s", c.Node, domain.FormatScore(s.NodeScores[c.Node]))
				return nil
			}

		case cyclicSweep:
			for _, id := range s.Order {
				if s.NodeStates[id] != domain.Visited {
					s.NodeStates[id] = domain.Visited
					s.SetScore(id, 0)
				}
			}
			s.Status = domain.StatusFinished
			s.Description = "Finished"
			s.ClearHighlights()
			c.Phase = cyclicFinished
			return nil

		default:
			return invariant("unknown phase %d", c.Phase)
		}
	}
}

// seed inverts the graph and lists the terminal nodes, which must all carry
// a score.
func (cyclic) seed(s *domain.TraversalState) error {
	s.Status = domain.StatusInProgress
	s.Inverse = graph.InvertGraph(s.Adj)
	s.Stack = []string{}

	sinks := graph.FindStartingNodes(s.Inverse)
	for _, id := range sinks {
		if n, ok := s.Node(id); !ok || n.Score == nil {
			return fmt.Errorf("%w: expected score for terminal node %s", domain.ErrMalformedGraph, id)
		}
	}
	s.Cursor.Items = sinks
	s.Cursor.Index = 0
	s.Cursor.Phase = cyclicSinkNext
	return nil
}

// favourable reports whether a child score lets the mover force a win.
func favourable(isMax bool, score float64) bool {
	if isMax {
		return score > 0
	}
	return score < 0
}
