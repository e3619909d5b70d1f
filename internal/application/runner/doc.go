// Package runner implements the experiment runner and result aggregation.
//
// The runner drives five fixed experiment kinds against the gateway:
//   - multi-provider comparison
//   - parameter exploration
//   - reasoning comparison
//   - edge cases and error handling
//   - performance testing (sequential vs concurrent)
//
// Each experiment is a straight-line procedure over a declarative request
// table. Individual call failures are recorded and never abort an
// experiment; only a failed connectivity probe is fatal to a run.
package runner
