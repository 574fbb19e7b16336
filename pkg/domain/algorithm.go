package domain

import (
	"fmt"
	"strings"
)

// Algorithm selects the traversal strategy of a session. It is chosen once
// when the session starts and never changes afterwards.
type Algorithm string

const (
	// AlgorithmRegular is the acyclic minimax (post-order DFS over a stack).
	AlgorithmRegular Algorithm = "regular"
	// AlgorithmCycleDetection is the cycle-tolerant minimax (reverse BFS from the terminals).
	AlgorithmCycleDetection Algorithm = "cycleDetection"
)

// Algorithms lists the supported algorithms in display order.
var Algorithms = []Algorithm{AlgorithmRegular, AlgorithmCycleDetection}

// ParseAlgorithm validates an algorithm name. An empty name selects the
// regular algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		return AlgorithmRegular, nil
	}
	for _, a := range Algorithms {
		if string(a) == name {
			return a, nil
		}
	}
	valid := make([]string, len(Algorithms))
	for i, a := range Algorithms {
		valid[i] = string(a)
	}
	return "", fmt.Errorf("%w %q, expected any of %s", ErrUnknownAlgorithm, name, strings.Join(valid, ", "))
}
