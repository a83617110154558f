package unionfs

import (
	"archive/tar"
	"archive/zip"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
	"github.com/spf13/afero/tarfs"
	"github.com/spf13/afero/zipfs"
)

// ArchiveOpener mounts the archive at location on the host filesystem and
// returns a read-only filesystem rooted at the archive's own root. Openers
// run eagerly during construction; the returned filesystem is owned by the
// union for its entire lifetime and is never closed.
type ArchiveOpener func(host afero.Fs, location string) (afero.Fs, error)

// defaultOpeners maps archive filename extensions to openers. Longer
// suffixes are matched first, so ".tar.gz" wins over ".gz".
func defaultOpeners() map[string]ArchiveOpener {
	return map[string]ArchiveOpener{
		".zip":    openZip,
		".jar":    openZip,
		".tar":    openTar,
		".tgz":    openTarGzip,
		".tar.gz": openTarGzip,
	}
}

// openerFor returns the opener registered for the location's extension, or
// nil when no format matches.
func (ufs *UnionFS) openerFor(location string) ArchiveOpener {
	lower := strings.ToLower(location)
	var (
		best    ArchiveOpener
		bestLen int
	)
	for ext, open := range ufs.openers {
		if strings.HasSuffix(lower, ext) && len(ext) > bestLen {
			best, bestLen = open, len(ext)
		}
	}
	return best
}

// openZip mounts a zip (or jar) archive. The handle backing the zip reader
// stays open for the filesystem's lifetime.
func openZip(host afero.Fs, location string) (afero.Fs, error) {
	f, err := host.Open(location)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	r, err := zip.NewReader(f, fi.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	return zipfs.New(r), nil
}

// openTar mounts a tar archive. tarfs indexes the whole archive up front,
// so the handle is closed once construction finishes.
func openTar(host afero.Fs, location string) (afero.Fs, error) {
	f, err := host.Open(location)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tarfs.New(tar.NewReader(f)), nil
}

// openTarGzip mounts a gzip-compressed tar archive.
func openTarGzip(host afero.Fs, location string) (afero.Fs, error) {
	f, err := host.Open(location)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	return tarfs.New(tar.NewReader(gz)), nil
}
