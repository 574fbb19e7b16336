// Package graph exports game graphs as Mermaid flowcharts and Graphviz DOT,
// optionally overlaid with the state of a traversal.
package graph
