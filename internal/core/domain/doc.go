// Package domain contains the core business entities for Scribe:
// proposal documents, their metadata enumerations, cross-reference
// edges, the derived index, and build reports.
//
// Domain types are pure data. Parsing, resolution, indexing and
// rendering live in their own packages and operate on these types;
// adapters translate them to and from the outside world.
package domain
