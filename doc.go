// Package hoover is a distributed runtime for iterative simulations expressed
// as evolving labeled graphs whose vertices are partitioned across processes
// ("PEs"). Each PE owns a shard of vertices; edges may cross PE boundaries
// and are reconstructed every iteration from vertex attributes.
//
// On every iteration the runtime:
//
//  1. gathers a consistent halo of remote vertices a PE might interact with
//     (bitvec announces partition membership, transport pulls the vertices),
//  2. recomputes edges against that halo (irrmatrix, vertexcache),
//  3. invokes a user-supplied vertex-update callback on each local vertex,
//  4. drives inter-PE coupling (msgbuf) and a global termination check.
//
// The module is organized as:
//
//	vertex/      — Vertex, ID, Partition, EdgeKind data model
//	slab/        — generic fixed-capacity slab/pool allocator
//	arena/       — bump/free-list byte-region allocator
//	segmap/      — segmented hash map with per-key inline+spill value lists
//	sparsearr/   — partition → PE-set sparse array (AVL-backed segments)
//	bitvec/      — distributed bitmap with per-row sequence numbers
//	irrmatrix/   — irregular per-vertex adjacency matrix
//	vertexcache/ — remote-vertex cache (hash + partition + local-neighbor indexes)
//	msgbuf/      — per-vertex buffered coupling mailboxes
//	transport/   — one-sided transport contract + in-memory reference transport
//	callback/    — user callback-set value
//	config/      — environment-variable driven runtime configuration
//	driver/      — halo protocol / iteration driver
//	core/, bfs/  — generic in-memory graph used by driver's debug snapshot
//	cmd/hoover/  — CLI entry point running a runnable scenario
//
// This package itself holds no code; it exists so `go get
// github.com/hoover-rt/hoover` resolves to documentation for the whole
// module.
package hoover

// Version is the module's semantic version, bumped on release.
const Version = "0.1.0"
