package unionfs

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
)

// AttrViewBasic is the only attribute view the filesystem supports.
const AttrViewBasic = "basic"

// AccessMode is a bitmask of access checks for CheckAccess.
type AccessMode int

const (
	// AccessRead checks for read permission.
	AccessRead AccessMode = 1 << iota
	// AccessWrite checks for write permission on the backing entry. The
	// check is delegated to the effective layer, so it may succeed on a
	// writable backing directory even though the union rejects mutations.
	AccessWrite
	// AccessExecute checks for execute permission.
	AccessExecute
)

// FileAttributes holds the basic attributes of a path, read from the
// highest-priority layer that contains it. Attributes never merge across
// layers.
type FileAttributes struct {
	Name    string
	Size    int64
	Mode    os.FileMode
	ModTime time.Time
	Dir     bool
}

// findFirst resolves a unified path by shadowing: layers are probed in
// priority order and the first whose translated path exists wins. Returns
// the winning layer together with the filesystem and layer-local path to
// operate on, or a not-found error when no layer matches.
func (ufs *UnionFS) findFirst(op, name string) (*layer, afero.Fs, string, error) {
	name = cleanPath(name)
	for _, l := range ufs.layers {
		if l.exists(name) {
			fsys, local := l.resolve(name)
			return l, fsys, local, nil
		}
	}
	return nil, nil, "", &os.PathError{Op: op, Path: name, Err: os.ErrNotExist}
}

// Stat returns file info from the highest-priority layer containing name.
func (ufs *UnionFS) Stat(name string) (os.FileInfo, error) {
	_, fsys, local, err := ufs.findFirst("stat", name)
	if err != nil {
		return nil, err
	}
	return fsys.Stat(local)
}

// ReadAttributes reads the attributes of name for the given view. Only the
// "basic" view is supported; any other view fails with ErrUnsupported
// regardless of whether the path exists.
func (ufs *UnionFS) ReadAttributes(name, view string) (*FileAttributes, error) {
	if view != AttrViewBasic {
		return nil, fmt.Errorf("attribute view %q: %w", view, ErrUnsupported)
	}
	fi, err := ufs.Stat(name)
	if err != nil {
		return nil, err
	}
	return &FileAttributes{
		Name:    fi.Name(),
		Size:    fi.Size(),
		Mode:    fi.Mode(),
		ModTime: fi.ModTime(),
		Dir:     fi.IsDir(),
	}, nil
}

// CheckAccess verifies that the highest-priority layer containing name
// grants every mode in modes. The check is delegated verbatim to that
// layer; absence from every layer is a not-found error.
func (ufs *UnionFS) CheckAccess(name string, modes AccessMode) error {
	l, fsys, local, err := ufs.findFirst("access", name)
	if err != nil {
		return err
	}
	fi, err := fsys.Stat(local)
	if err != nil {
		return err
	}
	perm := fi.Mode().Perm()
	if modes&AccessRead != 0 && perm&0444 == 0 {
		return &os.PathError{Op: "access", Path: cleanPath(name), Err: os.ErrPermission}
	}
	if modes&AccessWrite != 0 {
		if l.kind == layerArchive || perm&0222 == 0 {
			return &os.PathError{Op: "access", Path: cleanPath(name), Err: os.ErrPermission}
		}
	}
	if modes&AccessExecute != 0 && perm&0111 == 0 {
		return &os.PathError{Op: "access", Path: cleanPath(name), Err: os.ErrPermission}
	}
	return nil
}

// Open opens the named file for reading from the highest-priority layer
// that contains it. Opening a directory returns a merged directory handle
// whose listing aggregates entries across all layers.
func (ufs *UnionFS) Open(name string) (afero.File, error) {
	return ufs.OpenFile(name, os.O_RDONLY, 0)
}

// OpenFile opens the named file with the given flags. Any flag implying
// mutation (write, append, create, truncate) fails with ErrReadOnly.
func (ufs *UnionFS) OpenFile(name string, flag int, _ os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, &os.PathError{Op: "open", Path: cleanPath(name), Err: ErrReadOnly}
	}
	_, fsys, local, err := ufs.findFirst("open", name)
	if err != nil {
		return nil, err
	}
	fi, err := fsys.Stat(local)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return newUnionDir(ufs, cleanPath(name)), nil
	}
	return fsys.Open(local)
}

// ReadFile reads the named file from the highest-priority layer that
// contains it and returns its contents.
func (ufs *UnionFS) ReadFile(name string) ([]byte, error) {
	f, err := ufs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Lstat returns file info for name from its effective layer, without
// following a final symlink where that layer's backing filesystem natively
// supports it. The effective layer is decided by the same shadowing policy
// as Stat; a layer is never skipped for lacking link support.
func (ufs *UnionFS) Lstat(name string) (os.FileInfo, error) {
	_, fsys, local, err := ufs.findFirst("lstat", name)
	if err != nil {
		return nil, err
	}
	if lstater, ok := fsys.(afero.Lstater); ok {
		fi, _, err := lstater.LstatIfPossible(local)
		return fi, err
	}
	return fsys.Stat(local)
}

// Readlink returns the destination of the symlink at name in its effective
// layer. If that layer's backing filesystem cannot read links, or the
// entry is not a symlink, the call fails; lower-priority layers never
// answer for a shadowed name.
func (ufs *UnionFS) Readlink(name string) (string, error) {
	_, fsys, local, err := ufs.findFirst("readlink", name)
	if err != nil {
		return "", err
	}
	reader, ok := fsys.(afero.LinkReader)
	if !ok {
		return "", &os.PathError{Op: "readlink", Path: cleanPath(name), Err: os.ErrInvalid}
	}
	return reader.ReadlinkIfPossible(local)
}
