// Package graph holds the graph utilities shared by both minimax engines:
// adjacency construction, source detection, inversion, deterministic child
// ordering, level assignment and validation.
package graph
