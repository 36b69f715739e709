// Package driven defines the interfaces that core calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services and the representation collaborator depend on these
// interfaces, and infrastructure adapters implement them.
//
// # Required Interfaces
//
//   - SourceScanner: Lists source content files with raw attributes
//   - SourceReader: Reads raw content for a scanned file
//   - OutputWriter: Writes compiled representation output
//   - RecordStore: Compile-record and build-run persistence
//   - FilterRegistry: Looks up named content filters
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or filter package
package driven
