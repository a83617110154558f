package unionfs

import (
	"os"
	"time"

	"github.com/spf13/afero"
)

// The union filesystem is permanently read-only. Every afero.Fs mutator is
// implemented so the type composes with the afero ecosystem, and every one
// of them fails with ErrReadOnly whether or not the target path exists.

var _ afero.Fs = (*UnionFS)(nil)

func readOnlyError(op, name string) error {
	return &os.PathError{Op: op, Path: cleanPath(name), Err: ErrReadOnly}
}

// Create fails: the filesystem is read-only.
func (ufs *UnionFS) Create(name string) (afero.File, error) {
	return nil, readOnlyError("create", name)
}

// Mkdir fails: the filesystem is read-only.
func (ufs *UnionFS) Mkdir(name string, perm os.FileMode) error {
	return readOnlyError("mkdir", name)
}

// MkdirAll fails: the filesystem is read-only.
func (ufs *UnionFS) MkdirAll(name string, perm os.FileMode) error {
	return readOnlyError("mkdir", name)
}

// Remove fails: the filesystem is read-only.
func (ufs *UnionFS) Remove(name string) error {
	return readOnlyError("remove", name)
}

// RemoveAll fails: the filesystem is read-only.
func (ufs *UnionFS) RemoveAll(name string) error {
	return readOnlyError("remove", name)
}

// Rename fails: the filesystem is read-only.
func (ufs *UnionFS) Rename(oldname, newname string) error {
	return readOnlyError("rename", oldname)
}

// Chmod fails: the filesystem is read-only.
func (ufs *UnionFS) Chmod(name string, mode os.FileMode) error {
	return readOnlyError("chmod", name)
}

// Chown fails: the filesystem is read-only.
func (ufs *UnionFS) Chown(name string, uid, gid int) error {
	return readOnlyError("chown", name)
}

// Chtimes fails: the filesystem is read-only.
func (ufs *UnionFS) Chtimes(name string, atime, mtime time.Time) error {
	return readOnlyError("chtimes", name)
}

// Truncate fails: the filesystem is read-only.
func (ufs *UnionFS) Truncate(name string, size int64) error {
	return readOnlyError("truncate", name)
}
