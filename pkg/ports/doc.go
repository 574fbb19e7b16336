/*
Package ports defines the driven ports (interfaces) of the visualiser.

These interfaces decouple sessions and drivers from where graphs come from
and where live sessions are kept.

# Key Interfaces

  - GraphLoader: resolves a graph name to a node list (embedded samples, files, memory).
  - SessionStore: keeps live sessions (in memory only; sessions are never persisted).
*/
package ports
