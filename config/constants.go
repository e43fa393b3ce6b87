package config

import "github.com/brettbedarf/memfs/internal/util"

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultFsName   = "memfs"
	DefaultName     = "memfs"
	DefaultLogLvl   = util.InfoLevel
	DefaultEncoding = "utf8"
	// DefaultAttrTimeout is the attribute cache timeout in seconds
	DefaultAttrTimeout = 1.0
	// DefaultEntryTimeout is the directory entry cache timeout in seconds
	DefaultEntryTimeout = 1.0
	// DefaultDirectIO determines whether to bypass page cache for mounted files
	DefaultDirectIO = true
)

// Log verbosity values accepted in overrides and on the command line.
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)
