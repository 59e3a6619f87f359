package loaders

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"golang.org/x/xerrors"
)

var logger = log.New("loaders")

// OBJData contains the triangle data read from a Wavefront OBJ file
type OBJData struct {
	Vertices []core.Vec3 // Vertex positions in file order
	Faces    []int       // Triangle indices into Vertices (3 per triangle)
	Objects  []string    // Names from 'o' and 'g' statements, in order of appearance
}

// TriangleCount returns the number of triangles in the data
func (d *OBJData) TriangleCount() int {
	return len(d.Faces) / 3
}

// LoadOBJ loads a Wavefront OBJ file and returns its vertex and face data
func LoadOBJ(filename string) (*OBJData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, xerrors.Errorf("while opening OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ParseOBJ(file)
	if err != nil {
		return nil, xerrors.Errorf("while parsing %s: %w", filename, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filename, len(data.Vertices), data.TriangleCount(), time.Since(startTime))

	return data, nil
}

// ParseOBJ reads OBJ statements from reader. Only geometry is kept: vertex
// positions and faces. Faces with more than three vertices are split into a
// triangle fan around their first vertex. Texture coordinates, normals,
// materials and unknown statements are ignored.
func ParseOBJ(reader io.Reader) (*OBJData, error) {
	data := &OBJData{}

	lineNum := 0
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return nil, xerrors.Errorf("line %d: %w", lineNum, err)
			}
			data.Vertices = append(data.Vertices, v)
		case "f":
			indices, err := parseFace(lineTokens, len(data.Vertices))
			if err != nil {
				return nil, xerrors.Errorf("line %d: %w", lineNum, err)
			}
			for i := 1; i+1 < len(indices); i++ {
				data.Faces = append(data.Faces, indices[0], indices[i], indices[i+1])
			}
		case "o", "g":
			if len(lineTokens) > 1 {
				data.Objects = append(data.Objects, strings.Join(lineTokens[1:], " "))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("while reading OBJ data: %w", err)
	}

	if len(data.Faces) == 0 {
		return nil, ErrOBJEmpty
	}

	return data, nil
}

// parseVec3 parses the three coordinates of a 'v' statement. An optional
// fourth (w) component is ignored.
func parseVec3(lineTokens []string) (core.Vec3, error) {
	if len(lineTokens) < 4 {
		return core.Vec3{}, xerrors.Errorf("'%s' expects 3 coordinates, got %d: %w",
			lineTokens[0], len(lineTokens)-1, ErrOBJSyntax)
	}

	var coords [3]float64
	for i := range coords {
		value, err := strconv.ParseFloat(lineTokens[i+1], 64)
		if err != nil {
			return core.Vec3{}, xerrors.Errorf("coordinate %q: %w", lineTokens[i+1], ErrOBJSyntax)
		}
		coords[i] = value
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseFace resolves the vertex indices of an 'f' statement. Each argument
// has the form v, v/vt, v//vn or v/vt/vn; only v is used.
func parseFace(lineTokens []string, vertexCount int) ([]int, error) {
	if len(lineTokens) < 4 {
		return nil, xerrors.Errorf("face needs at least 3 vertices, got %d: %w", len(lineTokens)-1, ErrOBJSyntax)
	}

	indices := make([]int, 0, len(lineTokens)-1)
	for _, token := range lineTokens[1:] {
		vertexToken, _, _ := strings.Cut(token, "/")
		index, err := selectVertexIndex(vertexToken, vertexCount)
		if err != nil {
			return nil, err
		}
		indices = append(indices, index)
	}
	return indices, nil
}

// selectVertexIndex converts a 1-based OBJ index into a 0-based offset.
// Negative indices count back from the most recently defined vertex.
func selectVertexIndex(indexToken string, vertexCount int) (int, error) {
	index, err := strconv.Atoi(indexToken)
	if err != nil || index == 0 {
		return -1, xerrors.Errorf("vertex index %q: %w", indexToken, ErrOBJSyntax)
	}

	offset := index - 1
	if index < 0 {
		offset = vertexCount + index
	}
	if offset < 0 || offset >= vertexCount {
		return -1, xerrors.Errorf("vertex index %d with %d vertices defined: %w", index, vertexCount, ErrOBJIndex)
	}
	return offset, nil
}
