// Package watch reports changes to Kestrel source files
package watch

import (
	"path/filepath"
	"strings"
	"time"
)

// SourceExt is the file extension of Kestrel sources
const SourceExt = ".kes"

// Op indicates a change operation in the filesystem
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

var opNames = []struct {
	op   Op
	name string
}{
	{OpCreate, "CREATE"},
	{OpWrite, "WRITE"},
	{OpRemove, "REMOVE"},
	{OpRename, "RENAME"},
	{OpChmod, "CHMOD"},
}

func (op Op) String() string {
	var parts []string
	for _, n := range opNames {
		if op&n.op != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Event describes a filesystem change
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Watcher is implemented by the fsnotify and polling watchers.
// Events is closed once the watcher stops.
type Watcher interface {
	Events() <-chan Event
	Errors() <-chan error
	Add(name string) error
	Close() error
}

// IsSourceChange reports whether ev may have changed the contents of a
// Kestrel source file
func IsSourceChange(ev Event) bool {
	return filepath.Ext(ev.Path) == SourceExt && ev.Op&(OpCreate|OpWrite|OpRename) != 0
}
