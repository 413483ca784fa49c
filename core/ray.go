// Package core implements the path-tracing kernels: ray generation, BVH
// traversal, primitive intersection, shading and the two color-pass loops.
// Dispatch across tracers and workers lives in the tracer package; this
// package is the pure per-pixel/per-ray math each dispatched block runs.
package core

import "github.com/hulylabs/3d/types"

// Ray is a world-space ray with a unit-length direction. Direction is
// normalized once at construction; methods never mutate it implicitly.
type Ray struct {
	Origin types.Vec3
	Direction types.Vec3
}

// NewRay builds a ray, normalizing direction.
func NewRay(origin, direction types.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At evaluates the ray at parameter t.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Differentials holds the two auxiliary ray directions produced by
// offsetting the pixel by one unit along screen-space x and y. They
// share the primary ray's origin in the perspective case; in the
// orthographic case each differential also carries its own origin, so both
// are stored as full rays.
type Differentials struct {
	DX, DY Ray
}
