// Package cli implements the commands of the minimaxviz binary on top of the
// library, keeping cobra wiring in cmd/minimaxviz thin.
package cli
