/*
Package domain contains the core models of the bpmnpath engine.

It defines the process-flow graph as bpmnpath sees it: flow nodes, the sequence
flows connecting them, the definition envelope they are fetched in, and the
query/path pair exchanged with the search. This package is kept pure and free of
I/O, following Hexagonal Architecture principles.

# Key Entities

  - Node: A flow node (event, activity, gateway) of a BPMN process.
  - Edge: A directed sequence flow from a source node to a target node.
  - Graph: The nodes and edge set extracted from one process definition.
  - Query: The (start, end) pair a caller wants connected.
  - Path: The ordered node ids from start to end, or an empty result.
*/
package domain
