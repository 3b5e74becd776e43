package mesh4d

import (
	"errors"
	"fmt"
)

// Sentinel errors. Errors returned by this module wrap one of these
// so callers may classify failures with errors.Is.
var (
	// ErrInvalidMesh is returned when a tetrahedron references a node
	// out of range or does not have four distinct nodes.
	ErrInvalidMesh = errors.New("mesh4d: invalid mesh")

	// ErrInvalidParameter is returned for non-positive extrusion distances
	// and height functions that produce non-finite values.
	ErrInvalidParameter = errors.New("mesh4d: invalid parameter")

	// ErrIO is returned when reading a surface or writing an export fails.
	ErrIO = errors.New("mesh4d: i/o failure")
)

// TetraError reports a malformed tetrahedron of a Mesh3D.
type TetraError struct {
	Index int // position of the tetrahedron in Mesh3D.Tetras.
	Tetra Tetra
	Err   error
}

func (e *TetraError) Error() string {
	return fmt.Sprintf("%v: tetrahedron %d %v: %v", ErrInvalidMesh, e.Index, e.Tetra, e.Err)
}

// Unwrap makes errors.Is(err, ErrInvalidMesh) hold for TetraError.
func (e *TetraError) Unwrap() []error { return []error{ErrInvalidMesh, e.Err} }

func paramErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
