package unionfs

import (
	"os"
	"time"

	"github.com/absfs/absfs"
)

// absFSAdapter wraps UnionFS to implement absfs.Filer with correct types.
type absFSAdapter struct {
	ufs *UnionFS
}

// Ensure absFSAdapter implements absfs.Filer at compile time.
var _ absfs.Filer = (*absFSAdapter)(nil)

// FileSystem returns an absfs.FileSystem view of this UnionFS, enabling
// integration with the absfs ecosystem (working-directory state and the
// convenience methods absfs layers on top). Read operations delegate to
// the union's shadowing and aggregation resolvers; every mutating
// operation fails with ErrReadOnly.
func (ufs *UnionFS) FileSystem() absfs.FileSystem {
	return absfs.ExtendFiler(&absFSAdapter{ufs: ufs})
}

// OpenFile implements absfs.Filer.
func (a *absFSAdapter) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	return a.ufs.OpenFile(name, flag, perm)
}

// Mkdir implements absfs.Filer.
func (a *absFSAdapter) Mkdir(name string, perm os.FileMode) error {
	return a.ufs.Mkdir(name, perm)
}

// Remove implements absfs.Filer.
func (a *absFSAdapter) Remove(name string) error {
	return a.ufs.Remove(name)
}

// Rename implements absfs.Filer.
func (a *absFSAdapter) Rename(oldpath, newpath string) error {
	return a.ufs.Rename(oldpath, newpath)
}

// Stat implements absfs.Filer.
func (a *absFSAdapter) Stat(name string) (os.FileInfo, error) {
	return a.ufs.Stat(name)
}

// Chmod implements absfs.Filer.
func (a *absFSAdapter) Chmod(name string, mode os.FileMode) error {
	return a.ufs.Chmod(name, mode)
}

// Chtimes implements absfs.Filer.
func (a *absFSAdapter) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return a.ufs.Chtimes(name, atime, mtime)
}

// Chown implements absfs.Filer.
func (a *absFSAdapter) Chown(name string, uid, gid int) error {
	return a.ufs.Chown(name, uid, gid)
}

// Separator returns the path separator (always forward slash for virtual paths).
func (a *absFSAdapter) Separator() uint8 {
	return '/'
}

// ListSeparator returns the path list separator (always colon for virtual paths).
func (a *absFSAdapter) ListSeparator() uint8 {
	return ':'
}

// Truncate fails: the filesystem is read-only.
func (a *absFSAdapter) Truncate(name string, size int64) error {
	return a.ufs.Truncate(name, size)
}
