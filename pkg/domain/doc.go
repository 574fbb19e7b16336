/*
Package domain contains the core data model of the minimax visualiser.

It defines the game graph (GraphNode, AdjacencyList), the per-session
TraversalState that both stepping engines mutate, and the small vocabulary
around it (NodeState, Status, Algorithm, errors, lifecycle events, diffs).
This package is kept pure and free of I/O.

# Key Entities

  - GraphNode: one board state with its outgoing moves and, for terminal
    nodes, a fixed payoff.
  - AdjacencyList: id -> successor set, keys in declaration order.
  - TraversalState: status, pending stack/queue, per-node states and scores,
    highlight pointers, narration and the engine's resumption Cursor.
  - StateDiff: what changed between two snapshots, for streaming clients.
*/
package domain
