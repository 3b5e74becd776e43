package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	mesh4d "github.com/devdye/4DMeshTool"
)

// LoadSurface reads a triangulated surface from an OBJ or STL file,
// chosen by the file extension. Errors wrap mesh4d.ErrIO.
func LoadSurface(path string) ([]Triangle3, error) {
	var read func(io.Reader) ([]Triangle3, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		read = ReadOBJ
	case ".stl":
		read = ReadSTL
	default:
		return nil, fmt.Errorf("%w: %s: unsupported surface format %q", mesh4d.ErrIO, path, ext)
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mesh4d.ErrIO, err)
	}
	defer fp.Close()
	model, err := read(fp)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", mesh4d.ErrIO, path, err)
	}
	return model, nil
}

// CreateSTL writes model to a new binary STL file at path.
func CreateSTL(path string, model []Triangle3) error {
	return createAtomic(path, func(w io.Writer) error {
		return WriteSTL(w, model)
	})
}

// createAtomic writes to a temporary file next to path and renames it over
// path once write succeeds, so failures leave no partial file behind.
func createAtomic(path string, write func(w io.Writer) error) (err error) {
	fp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", mesh4d.ErrIO, err)
	}
	defer func() {
		if err != nil {
			fp.Close()
			os.Remove(fp.Name())
		}
	}()
	if err = write(fp); err != nil {
		return fmt.Errorf("%w: writing %s: %v", mesh4d.ErrIO, path, err)
	}
	if err = fp.Close(); err != nil {
		return fmt.Errorf("%w: %v", mesh4d.ErrIO, err)
	}
	if err = os.Rename(fp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", mesh4d.ErrIO, err)
	}
	return nil
}
