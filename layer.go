package unionfs

import (
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

// layerKind distinguishes the two backing source variants.
type layerKind int

const (
	layerDirectory layerKind = iota
	layerArchive
)

func (k layerKind) String() string {
	switch k {
	case layerDirectory:
		return "directory"
	case layerArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// layer is a single backing source: either a pass-through directory on the
// host filesystem, or an archive mounted as its own filesystem. The set of
// layers is fixed at construction and never mutated, so layers are safe to
// probe concurrently without locking.
type layer struct {
	location string // original backing location, used as the lookup key
	kind     layerKind

	host    afero.Fs // directory layers resolve against this
	archive afero.Fs // mounted handle, archive layers only; owned for the instance lifetime
}

// resolve translates a unified path into the filesystem and layer-local
// path to probe. Unified paths are absolute; exactly one leading separator
// is dropped (the single-character root passes through unchanged) because
// both directory and archive layers expect relative-style strings.
// Pure function; callable speculatively for layers that lack the path.
func (l *layer) resolve(name string) (afero.Fs, string) {
	name = stripRoot(name)
	if l.kind == layerArchive {
		return l.archive, name
	}
	return l.host, filepath.Join(l.location, filepath.FromSlash(name))
}

// exists reports whether the translated path exists in this layer.
func (l *layer) exists(name string) bool {
	fsys, local := l.resolve(name)
	_, err := fsys.Stat(local)
	return err == nil
}

// stripRoot drops exactly one leading separator from an absolute unified
// path of length > 1.
func stripRoot(name string) string {
	if len(name) > 1 && name[0] == '/' {
		return name[1:]
	}
	return name
}

// cleanPath normalizes a unified path to its absolute, cleaned form.
func cleanPath(name string) string {
	if name == "" {
		return "/"
	}
	if name[0] != '/' {
		name = "/" + name
	}
	return path.Clean(name)
}
