// Package sink provides report sink implementations.
//
// Implementations:
//   - file: timestamped JSON document in an output directory (default)
//   - redis: JSON under a run-ID key with TTL
//   - memory: in-memory for testing
package sink
