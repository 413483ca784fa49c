package core

import (
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/sdf"
	"github.com/hulylabs/3d/types"
)

// sdfDirectionalDistance implements directional signed-distance
// query for one SDF instance: the local SDF value at p is reused as a
// step length along the (local-space) query direction to produce a
// candidate point, which is mapped back to world space to recover a
// direction-aware world-space distance estimate. This is an approximation,
// not an exact world-space distance; it drives shadow/AO sampling only.
func sdfDirectionalDistance(inst scene.SDFInstance, registry *sdf.Registry, p, dir types.Vec3, time float32) (float32, bool) {
	localP := inst.InverseLocation.TransformPoint(p)
	localDir := inst.InverseLocation.TransformDirection(dir).Normalize()

	dLocal := registry.Select(inst.ClassIndex, localP, time)

	candidateLocal := localP.Add(localDir.Mul(dLocal))
	candidateWorld := inst.Location.TransformPoint(candidateLocal)

	delta := candidateWorld.Sub(p)
	dist := delta.Len()
	if dir.Dot(delta) < 0 {
		dist = -dist
	}
	return dist, true
}
