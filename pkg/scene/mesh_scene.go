package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/loaders"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"golang.org/x/xerrors"
)

const (
	meshVFov        = 30.0
	groundRadius    = 1000.0
	meshFramingPad  = 1.2
	meshCameraRaise = 0.3
)

// NewMeshScene loads the OBJ file at config.MeshPath, moves it by
// config.MeshOffset and places it on a ground sphere. Every triangle shares one
// diffuse material and goes into the BVH individually. The camera is aimed at
// the center of the mesh and pulled back until the whole mesh is in view.
func NewMeshScene(config Config) (*Scene, error) {
	if config.MeshPath == "" {
		return nil, ErrNoMeshPath
	}

	data, err := loaders.LoadOBJ(config.MeshPath)
	if err != nil {
		return nil, xerrors.Errorf("while loading mesh: %w", err)
	}

	offset := config.MeshOffset
	meshMaterial := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	mesh, err := geometry.NewTriangleMesh(data.Vertices, data.Faces, meshMaterial, &geometry.TriangleMeshOptions{
		Offset: &offset,
	})
	if err != nil {
		return nil, xerrors.Errorf("while building mesh from %s: %w", config.MeshPath, err)
	}

	box, ok := mesh.BoundingBox()
	if !ok {
		return nil, xerrors.Errorf("mesh %s: %w", config.MeshPath, geometry.ErrNoBoundingBox)
	}

	s := &Scene{
		Name:         "mesh",
		CameraConfig: frameBox(box, config.AspectRatio),
	}

	// Ground touches the bottom of the mesh
	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	groundCenter := core.NewVec3(box.Center().X, box.Min.Y-groundRadius, box.Center().Z)
	s.Shapes = append(s.Shapes, geometry.NewSphere(groundCenter, groundRadius, ground))
	s.Shapes = append(s.Shapes, mesh.Triangles()...)

	if err := s.Preprocess(rand.New(rand.NewSource(config.Seed))); err != nil {
		return nil, err
	}
	return s, nil
}

// frameBox returns a camera looking at the center of box from the +Z side,
// far enough back that the box's bounding sphere fits the vertical field of view
func frameBox(box core.AABB, aspectRatio float64) renderer.CameraConfig {
	center := box.Center()
	radius := math.Max(box.Size().Length()/2, 1e-3)

	halfFov := meshVFov * math.Pi / 360.0
	distance := meshFramingPad * radius / math.Sin(halfFov)
	direction := core.NewVec3(0, meshCameraRaise, 1).Normalize()

	return renderer.CameraConfig{
		LookFrom:    center.Add(direction.Multiply(distance)),
		LookAt:      center,
		Up:          core.NewVec3(0, 1, 0),
		VFov:        meshVFov,
		AspectRatio: aspectRatio,
	}
}
