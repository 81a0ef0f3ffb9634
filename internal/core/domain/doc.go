// Package domain defines the core entities for storycsv.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: Opaque manuscript bytes read from disk
//   - Document: A manuscript normalised to plain text
//   - Paragraph, Segment: Units produced by segmentation
//   - StoryRow: One record of the story CSV schema
//   - Table: Rows of a tab- or comma-delimited file
//   - Story, StoryNode: A parsed interactive story graph
//   - Settings: Typed application configuration
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
