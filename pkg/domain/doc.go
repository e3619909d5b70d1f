// Package domain defines the core data model shared across the harness:
// requests and responses exchanged with the gateway, per-call records,
// experiment results, the run report, and the call error taxonomy.
package domain
