package integrator

import (
	"math/rand"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use with distinct generators.
type Integrator interface {
	// RayColor computes the linear (not gamma-corrected) color carried by a ray
	RayColor(ray core.Ray, world core.Primitive, random *rand.Rand) core.Vec3
}
