/*
Package unionfs provides a read-only union filesystem: a virtual namespace
that is the logical merge of an ordered stack of backing locations, each
either a plain directory tree or an archive mounted as its own filesystem.

# Overview

A UnionFS is built once from an ordered list of locations. The last
location listed has the highest priority, modeling the "later layers
override earlier ones" rule of conventional overlay filesystems. Archives
(zip, jar, tar, tar.gz) are mounted eagerly at construction; a location
that is neither a directory nor a mountable archive aborts construction.

Single-valued lookups (Stat, ReadAttributes, CheckAccess, Open, ReadFile)
resolve by shadowing: layers are probed in priority order and the first
layer containing the path is authoritative. Directory listings resolve by
aggregation: every layer holding the directory contributes entries, merged
in priority order with duplicates collapsed.

# Basic Usage

	// /base is a directory, patch.zip an archive. The zip is listed last,
	// so its files shadow the directory's.
	ufs, err := unionfs.New([]string{"/base", "/patches/patch.zip"})
	if err != nil {
	    log.Fatal(err)
	}

	data, err := ufs.ReadFile("/etc/config.yml")

	listing, err := ufs.ListDirectory("/etc", nil)
	if err != nil {
	    log.Fatal(err)
	}
	defer listing.Close()
	for name, ok := listing.Next(); ok; name, ok = listing.Next() {
	    fmt.Println(name)
	}

# Read-Only Contract

The filesystem is permanently read-only. UnionFS implements afero.Fs so it
composes with the afero ecosystem, but every mutating operation (Create,
Mkdir, Remove, Rename, Chmod, write-mode OpenFile, ...) fails with
ErrReadOnly. Closing the filesystem is equally unsupported: mounted archive
handles are owned for the instance's entire lifetime, and Close reports
ErrUnsupported instead of silently leaking or silently succeeding.

# Concurrency

The layer stack is immutable after construction, so concurrent reads need
no locking. There is no caching: repeated queries re-traverse the priority
order each time, and callers needing amortized cost should cache above this
package.
*/
package unionfs
