package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"golang.org/x/xerrors"
)

// TriangleMesh represents a collection of flat-shaded triangles
type TriangleMesh struct {
	triangles []core.Primitive // Individual triangles as primitives
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Materials []core.Material // Optional per-triangle materials
	Rotation  *core.Vec3      // Optional rotation (radians around X, Y, Z) to apply to vertices
	Center    *core.Vec3      // Optional center point for rotation
	Offset    *core.Vec3      // Optional translation applied after rotation
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices
// vertices: array of 3D points
// faces: array of triangle indices (each group of 3 indices forms a triangle)
// material: default material for all triangles
// options: optional parameters (can be nil for basic mesh)
func NewTriangleMesh(vertices []core.Vec3, faces []int, material core.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, xerrors.Errorf("got %d indices: %w", len(faces), ErrFaceCount)
	}

	numTriangles := len(faces) / 3

	if options != nil && options.Materials != nil && len(options.Materials) != numTriangles {
		return nil, xerrors.Errorf("got %d materials for %d triangles: %w", len(options.Materials), numTriangles, ErrMaterialCount)
	}

	workingVertices := transformVertices(vertices, options)

	triangles := make([]core.Primitive, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0 := faces[i*3]
		i1 := faces[i*3+1]
		i2 := faces[i*3+2]

		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(workingVertices) {
				return nil, xerrors.Errorf("triangle %d references vertex %d of %d: %w", i, idx, len(workingVertices), ErrFaceIndex)
			}
		}

		triangleMaterial := material
		if options != nil && options.Materials != nil {
			triangleMaterial = options.Materials[i]
		}

		triangles[i] = NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2], triangleMaterial)
	}

	return &TriangleMesh{triangles: triangles}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return closestHit(tm.triangles, ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh.
// An empty mesh has no box.
func (tm *TriangleMesh) BoundingBox() (core.AABB, bool) {
	return unionBox(tm.triangles)
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Triangles returns the individual triangles so they can be placed
// directly into a scene-level BVH
func (tm *TriangleMesh) Triangles() []core.Primitive {
	return tm.triangles
}

// transformVertices applies the optional rotation and offset
func transformVertices(vertices []core.Vec3, options *TriangleMeshOptions) []core.Vec3 {
	if options == nil || (options.Rotation == nil && options.Offset == nil) {
		return vertices
	}

	transformed := make([]core.Vec3, len(vertices))
	for i, vertex := range vertices {
		if options.Rotation != nil {
			// Translate to center, rotate, then translate back
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = rotateVertex(vertex, *options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
		}
		if options.Offset != nil {
			vertex = vertex.Add(*options.Offset)
		}
		transformed[i] = vertex
	}
	return transformed
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos := math.Cos(rotation.X)
		sin := math.Sin(rotation.X)
		y := vertex.Y*cos - vertex.Z*sin
		z := vertex.Y*sin + vertex.Z*cos
		vertex = core.NewVec3(vertex.X, y, z)
	}

	if rotation.Y != 0 {
		cos := math.Cos(rotation.Y)
		sin := math.Sin(rotation.Y)
		x := vertex.X*cos + vertex.Z*sin
		z := -vertex.X*sin + vertex.Z*cos
		vertex = core.NewVec3(x, vertex.Y, z)
	}

	if rotation.Z != 0 {
		cos := math.Cos(rotation.Z)
		sin := math.Sin(rotation.Z)
		x := vertex.X*cos - vertex.Y*sin
		y := vertex.X*sin + vertex.Y*cos
		vertex = core.NewVec3(x, y, vertex.Z)
	}

	return vertex
}
