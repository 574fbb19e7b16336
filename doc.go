/*
Package minimaxviz is a step-by-step minimax engine for teaching the algorithm on game graphs.

It runs minimax over a directed graph of board states one micro-step at a time, so every state change (a node being queued, expanded, scored) can be rendered and narrated before the next one happens.

# Concept

A graph is a list of nodes with outgoing edges; terminal nodes carry a fixed payoff. Two interchangeable algorithms walk it:

  - regular: post-order DFS over an explicit stack. Assumes no cycles; nodes on a cycle are scored as draws.
  - cycleDetection: retrograde analysis. Scores flow backwards from the terminals over a FIFO queue and only forced or fully resolved values are committed; whatever is left is a draw.

All progress lives in a domain.TraversalState, including the point where the engine resumes, so a state can be snapshotted, rendered and stepped again at any time.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/minimaxviz"
		"github.com/aretw0/minimaxviz/pkg/domain"
		"github.com/aretw0/minimaxviz/pkg/samples"
	)

	func main() {
		nodes, err := samples.Load("withCycle")
		if err != nil {
			log.Fatal(err)
		}

		eng, err := minimaxviz.New(nodes, minimaxviz.WithAlgorithm(domain.AlgorithmCycleDetection))
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		state := eng.Start()
		for !state.Finished() {
			if err := eng.Step(ctx, state); err != nil {
				log.Fatal(err)
			}
			fmt.Println(state.Description)
		}
	}
*/
package minimaxviz
