/*
Package dsl provides a fluent builder for constructing game graphs in Go.

It is the code-first alternative to the YAML graph documents: handy for unit
tests, generated trees and anything that benefits from type checking.

Example usage:

	b := dsl.New()
	b.Add("root").To("left", "right")
	b.Add("left").To("a", "b")
	b.Add("right").Score(0)
	b.Add("a").Score(1)
	b.Add("b").Score(-1)

	eng, err := minimaxviz.New(b.Nodes())

	// or, as a ports.GraphLoader:
	loader, err := b.Build("tiny")
*/
package dsl
