// Package ports declares the interfaces between the experiment runner and
// its collaborators: the gateway client, report sinks, the event bus and
// the metrics collector. Adapters under pkg/adapters implement them.
package ports
