// Package driving defines the interfaces that the outside world uses
// to drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// CLI commands and the TUI depend on these interfaces; core services
// implement them.
package driving
