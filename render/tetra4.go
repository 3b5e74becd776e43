package render

import (
	"bufio"
	"io"
	"strconv"

	mesh4d "github.com/devdye/4DMeshTool"
)

// WriteTetrahedra4 writes every tetrahedron of m in order as a 1-based
// index line followed by the four 4D vertex coordinates, one vertex per
// line with 6 decimals, and a blank line:
//
//	1:
//	0.000000 0.000000 0.000000 0.000000
//	1.000000 0.000000 0.000000 0.000000
//	0.000000 1.000000 0.000000 0.000000
//	0.000000 0.000000 1.000000 0.000000
func WriteTetrahedra4(w io.Writer, m mesh4d.Mesh4D) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 128)
	for i := range m.Tetras {
		buf = strconv.AppendInt(buf[:0], int64(i+1), 10)
		buf = append(buf, ":\n"...)
		for _, v := range m.Vertices(i) {
			buf = appendCoord(buf, v.X, ' ')
			buf = appendCoord(buf, v.Y, ' ')
			buf = appendCoord(buf, v.Z, ' ')
			buf = appendCoord(buf, v.W, '\n')
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func appendCoord(b []byte, f float64, sep byte) []byte {
	b = strconv.AppendFloat(b, f, 'f', 6, 64)
	return append(b, sep)
}

// CreateTetrahedra4 writes m to a file at path in the WriteTetrahedra4 format.
// An existing file is replaced only once the whole mesh has been written.
func CreateTetrahedra4(path string, m mesh4d.Mesh4D) error {
	return createAtomic(path, func(w io.Writer) error {
		return WriteTetrahedra4(w, m)
	})
}
