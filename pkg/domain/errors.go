package domain

import "errors"

// ErrMalformedGraph is returned when the graph cannot be traversed, e.g. a
// terminal node without a score. It is raised while building a session.
var ErrMalformedGraph = errors.New("malformed graph")

// ErrInvariantViolation signals an internal bug: the engine reached a node
// state combination that correct sequencing can never produce. The traversal
// is halted and every further step returns the same error.
var ErrInvariantViolation = errors.New("invariant violation")

// ErrUnknownAlgorithm is returned for algorithm names other than
// "regular" and "cycleDetection".
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrGraphNotFound is returned when a loader has no graph with the requested name.
var ErrGraphNotFound = errors.New("graph not found")
