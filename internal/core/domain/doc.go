// Package domain defines the core build-pipeline entities for Sitesmith.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Asset: A single source content item tracked for incremental compilation
//   - Representation: One named, independently compiled output variant
//   - Attributes: Layered configuration values attached to an asset or site
//   - RepOverride: An asset's per-representation override declaration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
