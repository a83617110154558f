package unionfs

import (
	"io"
	"os"
	"path"
)

// EntryFilter filters layer-local directory entries during aggregation.
// Returning false drops the entry from the merged listing.
type EntryFilter func(os.FileInfo) bool

// Listing is a one-shot snapshot of a merged directory listing. It is not
// live: mutations to backing layers after the snapshot are not reflected.
// Close is a no-op since the snapshot owns no external resource, but a
// closed listing yields no further entries.
type Listing struct {
	paths  []string
	pos    int
	closed bool
}

// Next returns the next unified path in the listing.
func (l *Listing) Next() (string, bool) {
	if l.closed || l.pos >= len(l.paths) {
		return "", false
	}
	p := l.paths[l.pos]
	l.pos++
	return p, true
}

// Paths returns the full snapshot in listing order.
func (l *Listing) Paths() []string {
	out := make([]string, len(l.paths))
	copy(out, l.paths)
	return out
}

// Len returns the number of entries in the snapshot.
func (l *Listing) Len() int {
	return len(l.paths)
}

// Close marks the listing exhausted. It never fails.
func (l *Listing) Close() error {
	l.closed = true
	return nil
}

// ListDirectory aggregates the named directory across all layers. Every
// layer whose translated directory path exists contributes its entries,
// translated back into unified paths; the first occurrence of a name keeps
// its position and later occurrences are dropped, so entries from the
// highest-priority layer come first, followed by names only lower layers
// have. A directory absent from every layer yields an empty listing, not
// an error; callers needing not-found semantics should Stat first.
func (ufs *UnionFS) ListDirectory(name string, filter EntryFilter) (*Listing, error) {
	_, paths, err := ufs.mergeEntries(name, filter)
	if err != nil {
		return nil, err
	}
	return &Listing{paths: paths}, nil
}

// mergeEntries walks the priority order and unions directory entries,
// deduplicating by unified path. Entry info comes from the first layer
// that contributed the name.
func (ufs *UnionFS) mergeEntries(name string, filter EntryFilter) ([]os.FileInfo, []string, error) {
	name = cleanPath(name)
	seen := make(map[string]struct{})
	var (
		infos []os.FileInfo
		paths []string
	)
	for _, l := range ufs.layers {
		if !l.exists(name) {
			continue
		}
		fsys, local := l.resolve(name)
		dir, err := fsys.Open(local)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, nil, err
		}
		entries, err := dir.Readdir(-1)
		dir.Close()
		if err != nil {
			return nil, nil, err
		}
		for _, fi := range entries {
			if filter != nil && !filter(fi) {
				continue
			}
			unified := path.Join(name, fi.Name())
			if _, dup := seen[unified]; dup {
				continue
			}
			seen[unified] = struct{}{}
			infos = append(infos, fi)
			paths = append(paths, unified)
		}
	}
	return infos, paths, nil
}

// ReadDir returns the merged entries of the named directory, shadowing
// rules deciding which layer's info represents a duplicated name. Unlike
// ListDirectory it reports not-found when no layer has the directory.
func (ufs *UnionFS) ReadDir(name string) ([]os.FileInfo, error) {
	fi, err := ufs.Stat(name)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, &os.PathError{Op: "readdir", Path: cleanPath(name), Err: os.ErrInvalid}
	}
	infos, _, err := ufs.mergeEntries(name, nil)
	return infos, err
}

// unionDir is the afero.File returned when opening a directory. Its
// listing is loaded lazily and merges entries across all layers.
type unionDir struct {
	ufs     *UnionFS
	path    string
	entries []os.FileInfo
	loaded  bool
	offset  int
	closed  bool
}

func newUnionDir(ufs *UnionFS, path string) *unionDir {
	return &unionDir{ufs: ufs, path: path}
}

func (d *unionDir) load() error {
	if d.loaded {
		return nil
	}
	infos, _, err := d.ufs.mergeEntries(d.path, nil)
	if err != nil {
		return err
	}
	d.entries = infos
	d.loaded = true
	return nil
}

// Close closes the directory handle.
func (d *unionDir) Close() error {
	d.closed = true
	return nil
}

// Name returns the base name of the directory.
func (d *unionDir) Name() string {
	return path.Base(d.path)
}

// Readdir reads up to count merged directory entries.
func (d *unionDir) Readdir(count int) ([]os.FileInfo, error) {
	if d.closed {
		return nil, os.ErrClosed
	}
	if err := d.load(); err != nil {
		return nil, err
	}
	if d.offset >= len(d.entries) {
		if count > 0 {
			return nil, io.EOF
		}
		return nil, nil
	}
	end := len(d.entries)
	if count > 0 && d.offset+count < end {
		end = d.offset + count
	}
	result := d.entries[d.offset:end]
	d.offset = end
	return result, nil
}

// Readdirnames reads up to count merged directory entry names.
func (d *unionDir) Readdirnames(count int) ([]string, error) {
	infos, err := d.Readdir(count)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(infos))
	for i, fi := range infos {
		names[i] = fi.Name()
	}
	return names, nil
}

// Stat returns the FileInfo for the directory itself.
func (d *unionDir) Stat() (os.FileInfo, error) {
	if d.closed {
		return nil, os.ErrClosed
	}
	return d.ufs.Stat(d.path)
}

// Seek rewinds or advances the listing position.
func (d *unionDir) Seek(offset int64, whence int) (int64, error) {
	if d.closed {
		return 0, os.ErrClosed
	}
	switch whence {
	case io.SeekStart:
		d.offset = int(offset)
	case io.SeekCurrent:
		d.offset += int(offset)
	case io.SeekEnd:
		if err := d.load(); err != nil {
			return 0, err
		}
		d.offset = len(d.entries) + int(offset)
	}
	if d.offset < 0 {
		d.offset = 0
	}
	return int64(d.offset), nil
}

// Read is not supported for directories.
func (d *unionDir) Read(p []byte) (int, error) {
	return 0, os.ErrInvalid
}

// ReadAt is not supported for directories.
func (d *unionDir) ReadAt(p []byte, off int64) (int, error) {
	return 0, os.ErrInvalid
}

// Sync is a no-op for directories.
func (d *unionDir) Sync() error {
	return nil
}

// Write fails: the filesystem is read-only.
func (d *unionDir) Write(p []byte) (int, error) {
	return 0, ErrReadOnly
}

// WriteAt fails: the filesystem is read-only.
func (d *unionDir) WriteAt(p []byte, off int64) (int, error) {
	return 0, ErrReadOnly
}

// WriteString fails: the filesystem is read-only.
func (d *unionDir) WriteString(s string) (int, error) {
	return 0, ErrReadOnly
}

// Truncate fails: the filesystem is read-only.
func (d *unionDir) Truncate(size int64) error {
	return ErrReadOnly
}
