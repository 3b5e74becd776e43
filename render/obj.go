package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ReadOBJ reads the faces of a Wavefront OBJ file as triangles.
// Only "v" and "f" records are interpreted. Polygonal faces are split
// into a triangle fan around their first vertex. Face vertex references
// may be 1-based or negative (relative to the last vertex read) and may
// carry texture and normal indices ("v/vt/vn") which are ignored.
func ReadOBJ(r io.Reader) ([]Triangle3, error) {
	var (
		verts  []r3.Vec
		output []Triangle3
		line   int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			// An optional fourth weight component is ignored.
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs 3 coordinates", line)
			}
			v, err := parseVec(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", line, err)
			}
			verts = append(verts, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 vertices", line)
			}
			idx := make([]int, len(fields)-1)
			for i, ref := range fields[1:] {
				vi, err := objVertexIndex(ref, len(verts))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", line, err)
				}
				idx[i] = vi
			}
			for i := 1; i+1 < len(idx); i++ {
				output = append(output, Triangle3{verts[idx[0]], verts[idx[i]], verts[idx[i+1]]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(output) == 0 {
		return nil, errors.New("obj file contains no faces")
	}
	return output, nil
}

// objVertexIndex converts a face vertex reference to a 0-based index
// into a vertex list of length n.
func objVertexIndex(ref string, n int) (int, error) {
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		ref = ref[:i]
	}
	v, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("bad face vertex %q", ref)
	}
	switch {
	case v > 0:
		v--
	case v < 0:
		v += n
	default:
		return 0, errors.New("face vertex index 0 is invalid")
	}
	if v < 0 || v >= n {
		return 0, fmt.Errorf("face vertex %q references undefined vertex", ref)
	}
	return v, nil
}
