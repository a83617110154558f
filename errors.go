package unionfs

import (
	"errors"
	"fmt"
)

var (
	// ErrReadOnly is returned for any operation that would mutate the
	// filesystem. The union is permanently read-only.
	ErrReadOnly = errors.New("filesystem is read-only")
	// ErrUnsupported is returned for capabilities the filesystem
	// deliberately never implements, such as closing it or reading
	// attribute views other than "basic".
	ErrUnsupported = errors.New("operation not supported")
)

// MountError reports that a backing location could not be mounted during
// construction. Construction aborts on the first mount failure; no partial
// stack is ever returned.
type MountError struct {
	Location string
	Err      error
}

func (e *MountError) Error() string {
	return fmt.Sprintf("mount %s: %v", e.Location, e.Err)
}

func (e *MountError) Unwrap() error {
	return e.Err
}
