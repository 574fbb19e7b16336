// Package http serves traversal sessions over REST, with state diffs pushed
// to subscribers as server-sent events. The contract lives in openapi.yaml
// and incoming requests are validated against it.
package http
