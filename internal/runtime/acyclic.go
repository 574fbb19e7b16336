package runtime

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/graph"
)

// Phases of the acyclic engine.
const (
	acyclicStart domain.Phase = iota
	acyclicSeed
	acyclicSeedNext
	acyclicPop
	acyclicExpand
	acyclicChild
	acyclicAggregate
	acyclicPick
	acyclicDone
	acyclicFinished
)

var acyclicPhases = map[domain.Phase]string{
	acyclicStart:     "start",
	acyclicSeed:      "seed",
	acyclicSeedNext:  "seed_next",
	acyclicPop:       "pop",
	acyclicExpand:    "expand",
	acyclicChild:     "child",
	acyclicAggregate: "aggregate",
	acyclicPick:      "pick",
	acyclicDone:      "done",
	acyclicFinished:  "finished",
}

// acyclic is the post-order DFS minimax. Nodes are evaluated over an explicit
// LIFO stack; a node is pushed back under its children so it is revisited
// once they are solved. Cycles terminate but their members score as draws.
type acyclic struct{}

func (acyclic) phaseName(p domain.Phase) string {
	return acyclicPhases[p]
}

func (a acyclic) advance(s *domain.TraversalState) error {
	c := &s.Cursor
	for {
		switch c.Phase {
		case acyclicStart:
			if lost := graph.Unreachable(s.Adj); len(lost) > 0 {
				return fmt.Errorf("%w: nodes %s cannot be reached from a starting node", domain.ErrMalformedGraph, strings.Join(lost, ","))
			}
			s.Description = "Push the initial node into the stack"
			c.Phase = acyclicSeed
			return nil

		case acyclicSeed:
			s.Status = domain.StatusInProgress
			s.Stack = graph.FindStartingNodes(s.Adj)
			c.Items = slices.Clone(s.Stack)
			c.Index = 0
			c.Phase = acyclicSeedNext

		case acyclicSeedNext:
			if c.Index < len(c.Items) {
				id := c.Items[c.Index]
				c.Index++
				s.NodeStates[id] = domain.Queued
				s.Description = fmt.Sprintf("Queued node: %s", id)
				s.SelectedNode = id
				return nil
			}
			c.Items, c.Index = nil, 0
			s.Description = "Ready to start navigating the graph"
			s.SelectedNode = ""
			c.Phase = acyclicPop
			return nil

		case acyclicPop:
			return a.pop(s)

		case acyclicExpand:
			return a.expand(s)

		case acyclicChild:
			if c.Index < len(c.Items) {
				child := c.Items[c.Index]
				c.Index++
				return a.processChild(s, child)
			}
			s.Description = "All children processed"
			s.NodeStates[c.Node] = domain.CalculateScore
			s.SelectedNode = c.Node
			c.Items, c.Index = nil, 0
			c.Phase = acyclicPop
			return nil

		case acyclicAggregate:
			for child := range s.Adj.Successors(c.Node) {
				if s.NodeStates[child] != domain.Visited {
					s.SetScore(c.Node, 0)
					s.Description = "Cycle detected: setting score to a draw"
					c.Phase = acyclicDone
					return nil
				}
			}
			s.Description = fmt.Sprintf("Picking %s score from children", s.Nodes[c.Node].Role())
			c.Phase = acyclicPick
			return nil

		case acyclicPick:
			score, err := best(s, c.Node, graph.SortedChildren(s.Adj.Successors(c.Node)))
			if err != nil {
				return err
			}
			s.SetScore(c.Node, score)
			c.Phase = acyclicDone
			return nil

		case acyclicDone:
			s.Description = fmt.Sprintf("node %s is done", c.Node)
			s.NodeStates[c.Node] = domain.Visited
			c.Phase = acyclicPop
			return nil

		default:
			return invariant("unknown phase %d", c.Phase)
		}
	}
}

func (acyclic) pop(s *domain.TraversalState) error {
	c := &s.Cursor
	if len(s.Stack) == 0 {
		s.Status = domain.StatusFinished
		s.Description = "Finished"
		s.ClearHighlights()
		c.Node = ""
		c.Phase = acyclicFinished
		return nil
	}

	id := s.Stack[len(s.Stack)-1]
	st := s.NodeStates[id]
	switch st {
	case domain.StartProcessing, domain.ProcessChildren, domain.EndProcessing:
		return invariant("popped node %s while in state %s", id, st)
	}

	s.Stack = s.Stack[:len(s.Stack)-1]
	c.Node = id
	s.SelectedNode = id
	s.ShowNodeChildren = ""

	switch st {
	case domain.Visited:
		s.Description = fmt.Sprintf("Node %s already solved, skipping...", id)
	case domain.CalculateScore:
		s.Description = "Children ready, time to calculate the score"
		s.NodeStates[id] = domain.EndProcessing
		c.Phase = acyclicAggregate
	default:
		s.NodeStates[id] = domain.StartProcessing
		s.Description = fmt.Sprintf("Popped node %s from the stack", id)
		c.Phase = acyclicExpand
	}
	return nil
}

func (acyclic) expand(s *domain.TraversalState) error {
	c := &s.Cursor
	id := c.Node
	s.ShowNodeChildren = id
	s.NodeStates[id] = domain.ProcessChildren

	children := graph.SortedChildren(s.Adj.Successors(id))
	if len(children) > 0 {
		// Revisited once every child above it is solved.
		s.Stack = append(s.Stack, id)
		s.Description = fmt.Sprintf("Process node children %s", strings.Join(children, ","))
		c.Items, c.Index = children, 0
		c.Phase = acyclicChild
		return nil
	}

	node, ok := s.Node(id)
	if !ok || node.Score == nil {
		return fmt.Errorf("%w: expected terminal node with score for node %s", domain.ErrMalformedGraph, id)
	}
	s.Description = fmt.Sprintf("Terminal state where the score is %s", domain.FormatScore(node.Score))
	s.SetScore(id, *node.Score)
	s.NodeStates[id] = domain.Visited
	c.Phase = acyclicPop
	return nil
}

func (acyclic) processChild(s *domain.TraversalState, child string) error {
	st := s.NodeStates[child]
	if child == s.Cursor.Node {
		st = domain.CalculateScore
	}
	switch st {
	case domain.StartProcessing, domain.ProcessChildren, domain.EndProcessing:
		return invariant("child %s of %s is in state %s", child, s.Cursor.Node, st)
	}

	s.SelectedNode = child
	switch st {
	case domain.Unvisited:
		s.Description = fmt.Sprintf("Node %s not visited yet so it's pushed into the stack", child)
		s.NodeStates[child] = domain.Queued
		s.Stack = append(s.Stack, child)
	case domain.Queued:
		s.Description = fmt.Sprintf("Node %s already in stack but we push it again to solve it before coming back to the parent", child)
		s.Stack = append(s.Stack, child)
	case domain.Visited:
		s.Description = fmt.Sprintf("Node %s already solved, skipping...", child)
	case domain.CalculateScore:
		s.Description = fmt.Sprintf("Node %s waiting for children, we found a cycle...", child)
	default:
		return invariant("child %s of %s is in state %s", child, s.Cursor.Node, st)
	}
	return nil
}

// best returns the max (maximizer) or min (minimizer) of the children scores.
// Every child must already carry a score.
func best(s *domain.TraversalState, id string, children []string) (float64, error) {
	isMax := s.IsMax(id)
	var out float64
	for i, child := range children {
		v := s.NodeScores[child]
		if v == nil {
			return 0, invariant("child %s of %s has no score", child, id)
		}
		if i == 0 || (isMax && *v > out) || (!isMax && *v < out) {
			out = *v
		}
	}
	return out, nil
}
