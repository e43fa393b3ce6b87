// Package memfs contains core domain types and interfaces for the memfs
// in-memory filesystem.
//
// The tree itself lives in [github.com/brettbedarf/memfs/filesystem]; this
// package only holds the contracts shared between the store, its
// collaborators (codecs, observers) and the outer surfaces (async adapter,
// FUSE bridge, seed manifests).
package memfs

// Separator is the only recognized path separator.
const Separator = "/"

// DefaultEncoding is the text encoding used when none is supplied.
const DefaultEncoding = "utf8"
