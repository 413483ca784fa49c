package sdf

import "github.com/hulylabs/3d/types"

// Animation maps a local-frame point at a point in time back to the class's
// "rest" frame before distance evaluation (sdf_apply_animation).
type Animation interface {
	Apply(p types.Vec3, time float32) types.Vec3
}

// Orbit rotates p around Axis at AngularSpeed·PlaybackSpeedMultiplier
// radians per second, un-rotating the query point so the class distance
// function can be evaluated as if the instance were stationary.
// PlaybackSpeedMultiplier is a plain per-instance scalar, since only the
// time-scaling behavior matters to this per-point geometric transform.
type Orbit struct {
	Axis types.Vec3
	AngularSpeed float32
	PlaybackSpeedMultiplier float32
}

func (o Orbit) Apply(p types.Vec3, time float32) types.Vec3 {
	speed := o.PlaybackSpeedMultiplier
	if speed == 0 {
		speed = 1
	}
	angle := -o.AngularSpeed * speed * time
	q := types.QuatFromAxisAngle(o.Axis.Normalize(), angle)
	return q.Rotate(p)
}
