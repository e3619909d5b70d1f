// Package events provides event bus implementations for run progress events.
//
// Implementations:
//   - memory: in-process pub/sub (the only transport the harness needs)
package events
