/*
Package ports defines the driven ports (interfaces) for the bpmnpath engine.

These interfaces decouple the search from where process definitions come from
and where they are cached, so the engine works the same against a Camunda
server, a directory of .bpmn files or an in-memory fixture.

# Key Interfaces

  - DefinitionSource: Fetches a process definition by key (Camunda, File, Memory).
  - DefinitionCache: Keeps fetched definitions between searches (Memory, Redis).
  - Watchable: Sources that can report changed keys.
  - PathEngine: The engine surface consumed by the HTTP and MCP adapters.
*/
package ports
