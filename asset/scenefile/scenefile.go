// Package scenefile loads a scene description from a JSON document into the
// runtime scene/sdf representation. Loading follows a
// decode -> build materials/textures -> partition geometry -> build BVH ->
// set up camera sequence, targeting the parallelogram/triangle/SDF
// primitive set and four-class material system this renderer uses.
package scenefile

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/hulylabs/3d/asset"
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/scene/bvhbuild"
	"github.com/hulylabs/3d/sdf"
	"github.com/hulylabs/3d/types"
)

func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }
func cosf(x float32) float32 { return float32(math.Cos(float64(x))) }

// Document is the on-disk JSON scene description.
type Document struct {
	Camera         CameraDoc         `json:"camera"`
	Materials      []MaterialDoc     `json:"materials"`
	Parallelograms []ParallelogramDoc `json:"parallelograms"`
	Triangles      []TriangleDoc     `json:"triangles"`
	SDFInstances   []SDFInstanceDoc  `json:"sdf_instances"`
	AtlasMappings  []AtlasMappingDoc `json:"atlas_mappings,omitempty"`
}

type CameraDoc struct {
	Position     [3]float32 `json:"position"`
	LookAt       [3]float32 `json:"look_at"`
	Up           [3]float32 `json:"up"`
	Orthographic bool       `json:"orthographic,omitempty"`
}

type MaterialDoc struct {
	Class            string     `json:"class"`
	Albedo           [3]float32 `json:"albedo,omitempty"`
	Specular         [3]float32 `json:"specular,omitempty"`
	Emission         [3]float32 `json:"emission,omitempty"`
	SpecularStrength float32    `json:"specular_strength,omitempty"`
	Roughness        float32    `json:"roughness,omitempty"`
	RefractiveIndex  float32    `json:"refractive_index,omitempty"`
	ProceduralTexture int32     `json:"procedural_texture,omitempty"`
	AtlasRegion       int       `json:"atlas_region,omitempty"`
}

type ParallelogramDoc struct {
	Origin     [3]float32 `json:"origin"`
	U          [3]float32 `json:"u"`
	V          [3]float32 `json:"v"`
	MaterialID uint32     `json:"material"`
	ObjectUID  uint32     `json:"object_uid"`
}

type TriangleDoc struct {
	A          [3]float32 `json:"a"`
	B          [3]float32 `json:"b"`
	C          [3]float32 `json:"c"`
	NA         [3]float32 `json:"na"`
	NB         [3]float32 `json:"nb"`
	NC         [3]float32 `json:"nc"`
	MaterialID uint32     `json:"material"`
	ObjectUID  uint32     `json:"object_uid"`
}

// SDFInstanceDoc places a registry class with a translation/rotation(degrees)/
// uniform-scale transform rather than an authored raw matrix, matching how a
// scene author would specify placement.
type SDFInstanceDoc struct {
	Class             string     `json:"class"`
	SphereRadius      float32    `json:"sphere_radius,omitempty"`
	BoxHalfSize       [3]float32 `json:"box_half_size,omitempty"`
	TorusMajorRadius  float32    `json:"torus_major_radius,omitempty"`
	TorusMinorRadius  float32    `json:"torus_minor_radius,omitempty"`
	ConeAngleTan      float32    `json:"cone_angle_tan,omitempty"`
	ConeHeight        float32    `json:"cone_height,omitempty"`
	CapsuleStart      [3]float32 `json:"capsule_start,omitempty"`
	CapsuleEnd        [3]float32 `json:"capsule_end,omitempty"`
	CapsuleRadius     float32    `json:"capsule_radius,omitempty"`

	Translation [3]float32 `json:"translation,omitempty"`
	RotationDeg [3]float32 `json:"rotation_degrees,omitempty"`
	Scale       float32    `json:"scale,omitempty"`

	RayMarchStepScale float32 `json:"ray_march_step_scale,omitempty"`
	MaterialID        uint32  `json:"material"`
	ObjectUID         uint32  `json:"object_uid"`

	Animation AnimationDoc `json:"animation,omitempty"`
}

type AnimationDoc struct {
	Kind                    string     `json:"kind,omitempty"`
	Axis                    [3]float32 `json:"axis,omitempty"`
	AngularSpeed            float32    `json:"angular_speed,omitempty"`
	PlaybackSpeedMultiplier float32    `json:"playback_speed_multiplier,omitempty"`
}

type AtlasMappingDoc struct {
	TopLeft [2]float32 `json:"top_left"`
	Size    [2]float32 `json:"size"`
	WrapU   string     `json:"wrap_u,omitempty"`
	WrapV   string     `json:"wrap_v,omitempty"`
}

// Loaded bundles everything a renderer needs to start a frame loop:
// the assembled Scene (BVH already built), the SDF class registry and the
// initial camera.
type Loaded struct {
	Scene    *scene.Scene
	Registry *sdf.Registry
	Camera   *scene.Camera
}

// Load reads and decodes path into a runtime scene in one pass: materials
// and atlas mappings, then primitives and SDF instances with their class
// registry, then the BVH, then the camera.
func Load(path string) (*Loaded, error) {
	res, err := asset.NewResource(path, nil)
	if err != nil {
		return nil, fmt.Errorf("scenefile: opening %q: %w", path, err)
	}
	defer res.Close()

	var doc Document
	if err := json.NewDecoder(res).Decode(&doc); err != nil {
		return nil, fmt.Errorf("scenefile: decoding %q: %w", path, err)
	}

	materials, err := buildMaterials(doc.Materials)
	if err != nil {
		return nil, err
	}

	atlasMappings := buildAtlasMappings(doc.AtlasMappings)

	parallelograms := make([]scene.Parallelogram, len(doc.Parallelograms))
	for i, p := range doc.Parallelograms {
		parallelograms[i] = scene.NewParallelogram(vec3(p.Origin), vec3(p.U), vec3(p.V), p.MaterialID, p.ObjectUID)
	}

	triangles := make([]scene.Triangle, len(doc.Triangles))
	for i, t := range doc.Triangles {
		triangles[i] = scene.NewTriangle(vec3(t.A), vec3(t.B), vec3(t.C), vec3(t.NA), vec3(t.NB), vec3(t.NC), t.MaterialID, t.ObjectUID)
	}

	classes := make([]sdf.Class, len(doc.SDFInstances))
	animations := make([]sdf.Animation, len(doc.SDFInstances))
	instances := make([]scene.SDFInstance, len(doc.SDFInstances))
	sdfTime := make([]float32, len(doc.SDFInstances))

	for i, d := range doc.SDFInstances {
		class, err := buildSDFClass(d)
		if err != nil {
			return nil, fmt.Errorf("scenefile: sdf instance %d: %w", i, err)
		}
		classes[i] = class
		animations[i] = buildAnimation(d.Animation)

		location := buildInstanceTransform(d)
		scaleFactor := d.Scale
		if scaleFactor == 0 {
			scaleFactor = 1
		}
		stepScale := d.RayMarchStepScale
		if stepScale == 0 {
			stepScale = 1
		}

		instances[i] = scene.SDFInstance{
			Location:              location,
			InverseLocation:       location.Inv(),
			RayMarchStepScale:     stepScale,
			ClassIndex:            uint32(i),
			MaterialID:            d.MaterialID,
			ObjectUID:             d.ObjectUID,
			LocalBoundsHalfExtent: class.LocalBoundsHalfExtent().Mul(scaleFactor),
		}
	}

	registry := sdf.NewRegistry(classes, animations)

	items := make([]bvhbuild.Item, 0, len(triangles)+len(instances))
	for i, t := range triangles {
		min, max := t.BBox()
		items = append(items, bvhbuild.Item{
			Min: min, Max: max, Center: t.Center(),
			PrimitiveType:  scene.TrianglePrimitive,
			PrimitiveIndex: uint32(i),
		})
	}
	for i, inst := range instances {
		min, max := inst.BBox()
		items = append(items, bvhbuild.Item{
			Min: min, Max: max, Center: inst.Center(),
			PrimitiveType:  scene.SDFPrimitive,
			PrimitiveIndex: uint32(i),
		})
	}

	s := scene.NewScene(parallelograms, triangles, instances, sdfTime, materials, atlasMappings)
	s.BVH = bvhbuild.Build(items)

	camera := scene.NewCamera()
	camera.Position = vec3(doc.Camera.Position)
	camera.LookAt = vec3(doc.Camera.LookAt)
	if doc.Camera.Up != ([3]float32{}) {
		camera.Up = vec3(doc.Camera.Up)
	}
	camera.Orthographic = doc.Camera.Orthographic
	camera.Update()

	return &Loaded{Scene: s, Registry: registry, Camera: camera}, nil
}

func vec3(v [3]float32) types.Vec3 { return types.XYZ(v[0], v[1], v[2]) }

func buildMaterials(docs []MaterialDoc) ([]scene.Material, error) {
	materials := make([]scene.Material, len(docs))
	for i, d := range docs {
		class, err := parseMaterialClass(d.Class)
		if err != nil {
			return nil, fmt.Errorf("scenefile: material %d: %w", i, err)
		}

		refIdx := d.RefractiveIndex
		if refIdx == 0 {
			refIdx = 1.5
		}

		albedoUID := int32(0)
		switch {
		case d.ProceduralTexture != 0:
			albedoUID = -d.ProceduralTexture
		case d.AtlasRegion != 0:
			albedoUID = int32(d.AtlasRegion)
		}

		materials[i] = scene.Material{
			Albedo:           vec3(d.Albedo),
			Specular:         vec3(d.Specular),
			Emission:         vec3(d.Emission),
			SpecularStrength: d.SpecularStrength,
			Roughness:        d.Roughness,
			RefractiveIndex:  refIdx,
			AlbedoTextureUID: albedoUID,
			Class:            class,
		}
	}
	return materials, nil
}

func parseMaterialClass(name string) (scene.MaterialClass, error) {
	switch name {
	case "", "lambertian":
		return scene.Lambertian, nil
	case "mirror":
		return scene.Mirror, nil
	case "glass":
		return scene.Glass, nil
	case "isotropic":
		return scene.Isotropic, nil
	default:
		return 0, fmt.Errorf("unknown material class %q", name)
	}
}

func buildAtlasMappings(docs []AtlasMappingDoc) []scene.AtlasMapping {
	mappings := make([]scene.AtlasMapping, len(docs))
	for i, d := range docs {
		mappings[i] = scene.AtlasMapping{
			TopLeft:    types.XY(d.TopLeft[0], d.TopLeft[1]),
			Size:       types.XY(d.Size[0], d.Size[1]),
			Projection: types.Mat2x4{1, 0, 0, 0, 0, 1, 0, 0},
			WrapU:      parseWrapMode(d.WrapU),
			WrapV:      parseWrapMode(d.WrapV),
		}
	}
	return mappings
}

func parseWrapMode(name string) scene.WrapMode {
	switch name {
	case "clamp":
		return scene.WrapClamp
	case "discard":
		return scene.WrapDiscard
	default:
		return scene.WrapRepeat
	}
}

func buildSDFClass(d SDFInstanceDoc) (sdf.Class, error) {
	switch d.Class {
	case "sphere":
		return sdf.Sphere{Radius: d.SphereRadius}, nil
	case "box":
		return sdf.Box{HalfSize: vec3(d.BoxHalfSize)}, nil
	case "torus_xz":
		return sdf.TorusXZ{MajorRadius: d.TorusMajorRadius, MinorRadius: d.TorusMinorRadius}, nil
	case "cone":
		return sdf.Cone{AngleTan: d.ConeAngleTan, Height: d.ConeHeight}, nil
	case "capsule":
		return sdf.Capsule{Start: vec3(d.CapsuleStart), End: vec3(d.CapsuleEnd), Radius: d.CapsuleRadius}, nil
	default:
		return nil, fmt.Errorf("unknown sdf class %q", d.Class)
	}
}

func buildAnimation(d AnimationDoc) sdf.Animation {
	switch d.Kind {
	case "orbit":
		return sdf.Orbit{
			Axis:                    vec3(d.Axis),
			AngularSpeed:            d.AngularSpeed,
			PlaybackSpeedMultiplier: d.PlaybackSpeedMultiplier,
		}
	default:
		return nil
	}
}

// buildInstanceTransform composes translation*rotation*scale into the
// instance's object-to-world transform, matching the order an artist
// authoring position/rotation/scale fields would expect.
func buildInstanceTransform(d SDFInstanceDoc) types.Mat3x4 {
	scaleFactor := d.Scale
	if scaleFactor == 0 {
		scaleFactor = 1
	}

	rx := rotationX(d.RotationDeg[0] * degToRad)
	ry := rotationY(d.RotationDeg[1] * degToRad)
	rz := rotationZ(d.RotationDeg[2] * degToRad)
	rot := mul3(mul3(rz, ry), rx)
	scaled := mul3Scalar(rot, scaleFactor)

	return types.NewAffine3x4(scaled, vec3(d.Translation))
}

const degToRad = 3.14159265358979323846 / 180.0

func rotationX(a float32) types.Mat3 {
	c, s := cosf(a), sinf(a)
	return types.Mat3{1, 0, 0, 0, c, -s, 0, s, c}
}

func rotationY(a float32) types.Mat3 {
	c, s := cosf(a), sinf(a)
	return types.Mat3{c, 0, s, 0, 1, 0, -s, 0, c}
}

func rotationZ(a float32) types.Mat3 {
	c, s := cosf(a), sinf(a)
	return types.Mat3{c, -s, 0, s, c, 0, 0, 0, 1}
}

func mul3(a, b types.Mat3) types.Mat3 {
	var out types.Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += a[row*3+k] * b[k*3+col]
			}
			out[row*3+col] = sum
		}
	}
	return out
}

func mul3Scalar(m types.Mat3, s float32) types.Mat3 {
	var out types.Mat3
	for i := range m {
		out[i] = m[i] * s
	}
	return out
}
