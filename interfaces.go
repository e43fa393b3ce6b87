package memfs

// Op names an operation of the filesystem API. It is what observers receive.
type Op string

const (
	OpStat      Op = "stat"
	OpExists    Op = "exists"
	OpMkdir     Op = "mkdir"
	OpMkdirp    Op = "mkdirp"
	OpReaddir   Op = "readdir"
	OpRmdir     Op = "rmdir"
	OpRmrf      Op = "rmrf"
	OpUnlink    Op = "unlink"
	OpWriteFile Op = "writeFile"
	OpReadFile  Op = "readFile"
	OpRename    Op = "rename"
	OpAccess    Op = "access"
)

// Event describes a committed operation.
type Event struct {
	Op   Op
	Path string // primary path argument as passed by the caller
	// NewPath is the destination of a rename; empty for other operations
	NewPath string
}

// Observer is notified after an operation commits. It is never called for
// failed operations and cannot influence the outcome of the one it observes.
type Observer interface {
	Notify(ev Event)
}

// ObserverFunc adapts a plain function to [Observer].
type ObserverFunc func(ev Event)

func (f ObserverFunc) Notify(ev Event) { f(ev) }

// Codec converts between text and its encoded byte form.
// Unrecognized encoding names fall back to the codec's default encoding.
type Codec interface {
	Encode(text string, encoding string) ([]byte, error)
	Decode(data []byte, encoding string) (string, error)
}
