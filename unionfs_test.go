package unionfs

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHost returns a hermetic in-memory host filesystem with the given
// layer directories created.
func newHost(t *testing.T, dirs ...string) afero.Fs {
	t.Helper()
	host := afero.NewMemMapFs()
	for _, dir := range dirs {
		require.NoError(t, host.MkdirAll(dir, 0o755))
	}
	return host
}

func write(t *testing.T, host afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(host, name, []byte(content), 0o644))
}

func TestPriorityInversion(t *testing.T) {
	host := newHost(t, "/a", "/b", "/c")
	write(t, host, "/a/conf.txt", "from-a")
	write(t, host, "/c/conf.txt", "from-c")

	ufs, err := New([]string{"/a", "/b", "/c"}, WithHostFS(host))
	require.NoError(t, err)

	// Last-specified location has the highest priority.
	assert.Equal(t, []string{"/c", "/b", "/a"}, ufs.Locations())

	data, err := ufs.ReadFile("/conf.txt")
	require.NoError(t, err)
	assert.Equal(t, "from-c", string(data))
}

func TestShadowing(t *testing.T) {
	host := newHost(t, "/lower", "/upper")
	write(t, host, "/lower/x", "lower contents here")
	write(t, host, "/upper/x", "upper")

	ufs, err := New([]string{"/lower", "/upper"}, WithHostFS(host))
	require.NoError(t, err)

	fi, err := ufs.Stat("/x")
	require.NoError(t, err)
	assert.Equal(t, int64(len("upper")), fi.Size())

	attrs, err := ufs.ReadAttributes("/x", AttrViewBasic)
	require.NoError(t, err)
	assert.Equal(t, int64(len("upper")), attrs.Size)
	assert.False(t, attrs.Dir)

	data, err := ufs.ReadFile("/x")
	require.NoError(t, err)
	assert.Equal(t, "upper", string(data))
}

func TestNotFound(t *testing.T) {
	host := newHost(t, "/a", "/b")
	ufs, err := New([]string{"/a", "/b"}, WithHostFS(host))
	require.NoError(t, err)

	_, err = ufs.Stat("/missing")
	assert.True(t, os.IsNotExist(err))

	_, err = ufs.Open("/missing")
	assert.True(t, os.IsNotExist(err))

	_, err = ufs.ReadAttributes("/missing", AttrViewBasic)
	assert.True(t, os.IsNotExist(err))

	err = ufs.CheckAccess("/missing", AccessRead)
	assert.True(t, os.IsNotExist(err))

	// Listing a directory absent from every layer yields empty, not an error.
	listing, err := ufs.ListDirectory("/missing", nil)
	require.NoError(t, err)
	defer listing.Close()
	assert.Zero(t, listing.Len())
}

func TestAbsolutePathStripRoundTrip(t *testing.T) {
	host := newHost(t, "/layer")
	write(t, host, "/layer/file.txt", "data")

	ufs, err := New([]string{"/layer"}, WithHostFS(host))
	require.NoError(t, err)

	// Absolute and relative spellings resolve to the same layer-local path.
	abs, err := ufs.Stat("/file.txt")
	require.NoError(t, err)
	rel, err := ufs.Stat("file.txt")
	require.NoError(t, err)
	assert.Equal(t, abs.Size(), rel.Size())
	assert.Equal(t, abs.Name(), rel.Name())
}

func TestIdempotence(t *testing.T) {
	host := newHost(t, "/a", "/b")
	write(t, host, "/a/f", "one")
	write(t, host, "/b/dir/g", "two")

	ufs, err := New([]string{"/a", "/b"}, WithHostFS(host))
	require.NoError(t, err)

	first, err := ufs.ReadFile("/f")
	require.NoError(t, err)
	second, err := ufs.ReadFile("/f")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	l1, err := ufs.ListDirectory("/dir", nil)
	require.NoError(t, err)
	l2, err := ufs.ListDirectory("/dir", nil)
	require.NoError(t, err)
	assert.Equal(t, l1.Paths(), l2.Paths())
}

func TestCloseRejected(t *testing.T) {
	host := newHost(t, "/a")
	ufs, err := New([]string{"/a"}, WithHostFS(host))
	require.NoError(t, err)

	err = ufs.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestConstructionFailure(t *testing.T) {
	host := newHost(t, "/a")
	// An existing plain file with no archive opener for its extension.
	write(t, host, "/notes.txt", "not an archive")

	ufs, err := New([]string{"/a", "/notes.txt"}, WithHostFS(host))
	require.Error(t, err)
	assert.Nil(t, ufs)

	var mountErr *MountError
	require.True(t, errors.As(err, &mountErr))
	assert.Equal(t, "/notes.txt", mountErr.Location)
}

func TestConstructionFailureMissingLocation(t *testing.T) {
	host := newHost(t)
	ufs, err := New([]string{"/nowhere"}, WithHostFS(host))
	require.Error(t, err)
	assert.Nil(t, ufs)

	var mountErr *MountError
	require.True(t, errors.As(err, &mountErr))
}

func TestEmptyStack(t *testing.T) {
	ufs, err := New(nil, WithHostFS(newHost(t)))
	require.NoError(t, err)
	assert.Empty(t, ufs.Locations())

	_, err = ufs.Stat("/anything")
	assert.True(t, os.IsNotExist(err))
}

func TestCheckAccess(t *testing.T) {
	host := newHost(t, "/layer")
	write(t, host, "/layer/readable", "ok")

	ufs, err := New([]string{"/layer"}, WithHostFS(host))
	require.NoError(t, err)

	require.NoError(t, ufs.CheckAccess("/readable", AccessRead))

	// Delegated verbatim: the backing entry is writable even though the
	// union itself rejects mutations.
	require.NoError(t, ufs.CheckAccess("/readable", AccessRead|AccessWrite))

	err = ufs.CheckAccess("/readable", AccessExecute)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestLocationsCopy(t *testing.T) {
	host := newHost(t, "/a", "/b")
	ufs, err := New([]string{"/a", "/b"}, WithHostFS(host))
	require.NoError(t, err)

	locs := ufs.Locations()
	locs[0] = "tampered"
	assert.Equal(t, []string{"/b", "/a"}, ufs.Locations())
}
