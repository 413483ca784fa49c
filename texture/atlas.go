package texture

import (
	"image"
	"math"
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/types"
)

// Atlas is a single mipped, bilinearly-filtered texture page built on
// stdlib image types, with mip levels generated in pure Go rather than
// through a cgo image backend.
type Atlas struct {
	// Levels holds the mip chain, level 0 at full resolution.
	Levels []*image.NRGBA
}

// BaseSize returns the level-0 texel dimensions (T in the mip-level formula).
func (a *Atlas) BaseSize() (w, h int) {
	if len(a.Levels) == 0 {
		return 0, 0
	}
	b := a.Levels[0].Bounds()
	return b.Dx(), b.Dy()
}

// mipLevel picks a mip level from screen-space derivatives:
// clamp(floor(0.5*log2(max(|ddx*T|,|ddy*T|))), 0, levels-1).
func (a *Atlas) mipLevel(ddx, ddy types.Vec2) int {
	w, h := a.BaseSize()
	scaled := func(d types.Vec2) float32 {
		x := d[0] * float32(w)
		y := d[1] * float32(h)
		return float32(math.Sqrt(float64(x*x + y*y)))
	}
	m := scaled(ddx)
	if v := scaled(ddy); v > m {
		m = v
	}
	if m <= 0 {
		return 0
	}
	level := int(math.Floor(0.5 * math.Log2(float64(m))))
	if level < 0 {
		level = 0
	}
	if level > len(a.Levels)-1 {
		level = len(a.Levels) - 1
	}
	return level
}

// Sample evaluates a material's atlas-backed albedo for the given region
// mapping, mapping local-position/differentials through that AtlasMapping,
// applying per-axis wrap, and bilinearly sampling the mip level implied by
// the differentials. dpdx, dpdy are the position-space ray differentials at
// the hit; ok is false only for a Discard-wrapped sample that falls outside
// its tile, signalling the caller to fall through to flat albedo.
func (a *Atlas) Sample(mapping scene.AtlasMapping, localPosition, dpdx, dpdy types.Vec3) (color types.Vec3, ok bool) {
	coord := mapping.Projection.MapPoint4(localPosition.Vec4(1))
	level := a.mipLevel(mapping.Projection.MapDirection4(dpdx), mapping.Projection.MapDirection4(dpdy))

	levelW, levelH := a.BaseSize()
	for i := 0; i < level; i++ {
		levelW, levelH = levelW/2, levelH/2
	}
	inset := types.XY(0, 0)
	if levelW > 0 {
		inset[0] = 0.5 / float32(levelW) / mapping.Size[0]
	}
	if levelH > 0 {
		inset[1] = 0.5 / float32(levelH) / mapping.Size[1]
	}

	u, okU := wrapCoord(coord[0], mapping.WrapU, inset[0])
	v, okV := wrapCoord(coord[1], mapping.WrapV, inset[1])
	if !okU || !okV {
		return types.Vec3{}, false
	}

	atlasUV := types.XY(mapping.TopLeft[0]+u*mapping.Size[0], mapping.TopLeft[1]+v*mapping.Size[1])
	return a.bilinear(level, atlasUV), true
}

func wrapCoord(x float32, mode scene.WrapMode, inset float32) (float32, bool) {
	switch mode {
	case scene.WrapClamp:
		lo, hi := inset, 1-inset
		if x < lo {
			return lo, true
		}
		if x > hi {
			return hi, true
		}
		return x, true
	case scene.WrapDiscard:
		if x < inset || x > 1-inset {
			return 0, false
		}
		return x, true
	default: // Repeat
		f := x - float32(math.Floor(float64(x)))
		return f, true
	}
}

func (a *Atlas) bilinear(level int, uv types.Vec2) types.Vec3 {
	img := a.Levels[level]
	b := img.Bounds()
	fx := uv[0]*float32(b.Dx()) - 0.5
	fy := uv[1]*float32(b.Dy()) - 0.5

	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := sampleClamped(img, x0, y0)
	c10 := sampleClamped(img, x0+1, y0)
	c01 := sampleClamped(img, x0, y0+1)
	c11 := sampleClamped(img, x0+1, y0+1)

	top := c00.Lerp(c10, tx)
	bottom := c01.Lerp(c11, tx)
	return top.Lerp(bottom, ty)
}

func sampleClamped(img *image.NRGBA, x, y int) types.Vec3 {
	b := img.Bounds()
	if x < b.Min.X {
		x = b.Min.X
	}
	if x >= b.Max.X {
		x = b.Max.X - 1
	}
	if y < b.Min.Y {
		y = b.Min.Y
	}
	if y >= b.Max.Y {
		y = b.Max.Y - 1
	}
	r, g, bb, _ := img.At(x, y).RGBA()
	return types.XYZ(float32(r)/65535, float32(g)/65535, float32(bb)/65535)
}
