// Package domain defines the core entities for otuscan.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - AlignedProteinSequence: A read's protein translation aligned to a marker profile
//   - WindowSpec: The alignment columns that make up a comparable OTU window
//   - OtuEntry: One row of an OTU table (marker, sample, window, abundance, lineage)
//   - SequenceDatabase: An immutable collection of OTU entries for querying
//   - QueryRecord / QueryResult: The input and output of a divergence query
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
