// Package websocket streams run progress events to connected clients.
package websocket
