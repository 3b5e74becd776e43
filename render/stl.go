package render

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
)

// WriteSTL writes model triangles to a writer in binary STL file format.
func WriteSTL(w io.Writer, model []Triangle3) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	header := stlHeader{
		Count: uint32(len(model)),
	}
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &header); err != nil {
		return err
	}
	var b [stlTriangleSize]byte
	for _, triangle := range model {
		d := stlTriangleFrom(triangle)
		d.put(b[:])
		if _, err := bw.Write(b[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadSTL reads the triangles of a binary or ASCII STL file.
// Binary files whose stored normals disagree with their vertex winding
// are accepted.
func ReadSTL(r io.Reader) ([]Triangle3, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if isBinarySTL(data) {
		output, err := readBinarySTL(bytes.NewReader(data))
		if errors.Is(err, errCalculatedNormalMismatch) {
			err = nil
		}
		return output, err
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return readASCIISTL(bytes.NewReader(data))
	}
	return readBinarySTL(bytes.NewReader(data))
}

// isBinarySTL checks the triangle count in the header against the data size.
// ASCII files may start with "solid" as may binary headers, so the prefix
// alone cannot decide.
func isBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize {
		return false
	}
	count := binary.LittleEndian.Uint32(data[80:84])
	return int64(len(data)) == stlHeaderSize+int64(count)*stlTriangleSize
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

func readBinarySTL(r io.Reader) (output []Triangle3, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, errors.New("STL header read failed: " + err.Error())
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf [stlTriangleSize]byte
		d   stlTriangle
		i   int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, errCalculatedNormalMismatch) {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	output = make([]Triangle3, 0, header.Count)
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if !errors.Is(err, errCalculatedNormalMismatch) {
				return nil, err
			}
			readErr = err
		}
		output = append(output, d.toTriangle3())
	}
	// For high resolution models mismatches may be reported for valid data.
	return output, readErr
}

// readASCIISTL parses "solid ... facet normal ... outer loop vertex x y z
// ... endloop endfacet ... endsolid" records. Normals are recomputed from
// the vertices and the stored ones ignored.
func readASCIISTL(r io.Reader) ([]Triangle3, error) {
	var (
		output []Triangle3
		tri    Triangle3
		nv     int
		line   int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			if nv == 3 {
				return nil, fmt.Errorf("line %d: facet with more than 3 vertices", line)
			}
			v, err := parseVec(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			tri[nv] = v
			nv++
		case "facet":
			nv = 0
		case "endfacet":
			if nv != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices", line, nv)
			}
			output = append(output, tri)
			nv = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(output) == 0 {
		return nil, errors.New("ASCII STL contains no facets")
	}
	return output, nil
}

func parseVec(fields []string) (r3.Vec, error) {
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return r3.Vec{}, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return r3.Vec{}, fmt.Errorf("non-finite coordinate %q", fields[i])
		}
		c[i] = f
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func stlTriangleFrom(t Triangle3) stlTriangle {
	n := t.Normal()
	return stlTriangle{
		Normal:  to3F32(n),
		Vertex1: to3F32(t[0]),
		Vertex2: to3F32(t[1]),
		Vertex3: to3F32(t[2]),
	}
}

func to3F32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported yet.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

var errCalculatedNormalMismatch = errors.New("triangle normal not approximately equal to calculated normal from vertices. Ignore this error if model is OK")

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	const normTol = 5e-2
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.toTriangle3().Degenerate(epsilon) {
		return errors.New("triangle is degenerate")
	}
	if t.Normal == ([3]float32{}) {
		// Many exporters leave the normal zeroed.
		return nil
	}
	calcNormal := to3F32(t.toTriangle3().Normal())
	calcNormalNeg := [3]float32{-calcNormal[0], -calcNormal[1], -calcNormal[2]}
	if !equalWithin3F32(calcNormal, t.Normal, normTol) && !equalWithin3F32(calcNormalNeg, t.Normal, normTol) {
		return errCalculatedNormalMismatch // sometimes may fail
	}
	return nil
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func (d stlTriangle) toTriangle3() Triangle3 {
	return Triangle3{
		r3From3F32(d.Vertex1),
		r3From3F32(d.Vertex2),
		r3From3F32(d.Vertex3),
	}
}
