/*
Package session manages live traversal sessions.

A Manager binds each session to an engine for its graph and algorithm, keeps
the state in a ports.SessionStore and serialises every operation on a session
with a reference-counted lock, so HTTP and MCP clients can step the same
session concurrently without losing steps. Sessions live as long as the
process does.
*/
package session
