// Package mcp exposes traversal sessions as Model Context Protocol tools
// over stdio or SSE.
package mcp
