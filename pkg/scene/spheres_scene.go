package scene

import (
	"math/rand"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// NewSpheresScene creates a small fixed scene: a diffuse sphere between a
// hollow glass sphere and a fuzzy metal sphere, on a large ground sphere
func NewSpheresScene(config Config) (*Scene, error) {
	s := &Scene{
		Name: "spheres",
		CameraConfig: renderer.CameraConfig{
			LookFrom:    core.NewVec3(0, 0.5, 2),
			LookAt:      core.NewVec3(0, 0, -1),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        40.0,
			AspectRatio: config.AspectRatio,
		},
	}

	groundMaterial := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	centerMaterial := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glassMaterial := material.NewDielectric(1.5)
	metalMaterial := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)

	s.Shapes = []core.Primitive{
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, groundMaterial),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, centerMaterial),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glassMaterial),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glassMaterial),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metalMaterial),
	}

	if err := s.Preprocess(rand.New(rand.NewSource(config.Seed))); err != nil {
		return nil, err
	}
	return s, nil
}
