// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for a build to run:
//
//   - CorpusReader: Reads the input directory of proposal files
//   - SiteWriter: Stages and atomically publishes the rendered site
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - BuildCache: Incremental-build fingerprints and build history.
//     Without it every build renders every page and history is empty.
//   - ConfigStore: Site configuration. Without it defaults apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
