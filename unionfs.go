package unionfs

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// UnionFS merges an ordered stack of backing locations into one read-only
// namespace. Lookups resolve by shadowing (the highest-priority layer
// containing a path wins); directory listings resolve by aggregation (all
// layers contribute, duplicates collapsed).
//
// The layer stack is fixed at construction and never mutated, so a UnionFS
// is safe for concurrent use without locking, provided the mounted archive
// filesystems are themselves safe for concurrent reads.
type UnionFS struct {
	layers  []*layer // priority order: index 0 is searched first
	host    afero.Fs
	logger  *logrus.Logger
	openers map[string]ArchiveOpener
}

// Option is a functional option for configuring UnionFS construction.
type Option func(*UnionFS)

// WithHostFS sets the filesystem that directory layers and archive files
// are resolved against. Defaults to the operating system filesystem.
func WithHostFS(fsys afero.Fs) Option {
	return func(ufs *UnionFS) {
		ufs.host = fsys
	}
}

// WithLogger sets the logger used for construction and mount diagnostics.
// By default nothing is logged.
func WithLogger(logger *logrus.Logger) Option {
	return func(ufs *UnionFS) {
		ufs.logger = logger
	}
}

// WithArchiveOpener registers an opener for the given filename extension
// (e.g. ".sqsh"), overriding any built-in registration for that extension.
func WithArchiveOpener(ext string, open ArchiveOpener) Option {
	return func(ufs *UnionFS) {
		ufs.openers[ext] = open
	}
}

// New builds a union filesystem from locations, each an existing directory
// or an archive file mountable by a registered opener. The last location
// listed has the highest priority: later layers override earlier ones, as
// with mount-order shadowing in conventional overlay filesystems.
//
// Archives are mounted eagerly. If any location cannot be mounted, New
// fails with a *MountError and no partially-usable instance is created.
func New(locations []string, opts ...Option) (*UnionFS, error) {
	ufs := &UnionFS{
		host:    afero.NewOsFs(),
		logger:  discardLogger(),
		openers: defaultOpeners(),
	}
	for _, opt := range opts {
		opt(ufs)
	}
	for _, loc := range reverse(locations) {
		l, err := ufs.mount(loc)
		if err != nil {
			return nil, &MountError{Location: loc, Err: err}
		}
		ufs.layers = append(ufs.layers, l)
	}
	return ufs, nil
}

// reverse returns the locations in priority order: the last location
// supplied becomes the first searched.
func reverse(locations []string) []string {
	out := make([]string, len(locations))
	for i, loc := range locations {
		out[len(locations)-1-i] = loc
	}
	return out
}

// mount turns one backing location into a layer. Directories pass through;
// anything else must be mountable as an archive.
func (ufs *UnionFS) mount(location string) (*layer, error) {
	var l *layer
	fi, err := ufs.host.Stat(location)
	if err == nil && fi.IsDir() {
		l = &layer{location: location, kind: layerDirectory, host: ufs.host}
	} else {
		open := ufs.openerFor(location)
		if open == nil {
			if err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%s: not a directory and no archive opener matches", location)
		}
		archive, err := open(ufs.host, location)
		if err != nil {
			return nil, err
		}
		l = &layer{location: location, kind: layerArchive, archive: archive}
	}
	ufs.logger.WithFields(logrus.Fields{
		"location": location,
		"kind":     l.kind.String(),
	}).Debug("mounted layer")
	return l, nil
}

// Name returns the name of the filesystem.
func (ufs *UnionFS) Name() string {
	return "UnionFS"
}

// Separator returns the unified namespace's path separator.
func (ufs *UnionFS) Separator() string {
	return "/"
}

// Locations returns the backing locations in priority order (highest
// priority first). The slice is a copy; the stack itself never changes.
func (ufs *UnionFS) Locations() []string {
	out := make([]string, len(ufs.layers))
	for i, l := range ufs.layers {
		out[i] = l.location
	}
	return out
}

// Close always fails. Mounted archive handles are owned by the UnionFS for
// its entire lifetime and cannot be released independently; a close attempt
// is rejected loudly rather than swallowed.
func (ufs *UnionFS) Close() error {
	return fmt.Errorf("close %s: %w", ufs.Name(), ErrUnsupported)
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
