/*
Package ports defines the driven ports (interfaces) of the dropzone engine.

These interfaces decouple session handling from concrete backends so that the
same interaction core runs embedded in a desktop host, behind the HTTP API, or
behind the MCP server.

# Key Interfaces

  - SnapshotStore: persists and loads builder session snapshots.
  - DistributedLocker: serializes access to a session across replicas.
*/
package ports
