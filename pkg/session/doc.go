/*
Package session serializes access to persisted builder sessions.

Each builder session owns one drag session and one drop indicator. In server
mode those live in a ports.SnapshotStore between requests; the Manager restores
a runtime Controller under a per-session lock, applies a mutation and saves the
result, so concurrent requests for the same session never interleave. An
optional ports.DistributedLocker extends the guarantee across replicas.
*/
package session
