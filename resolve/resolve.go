// Package resolve implements the boundary component the core hands its
// linear radiance accumulator to: dividing by the frame count, an
// ACES-approximated tonemap, gamma correction, and a dithered encode to an
// 8-bit display image. The core itself never reads or writes a
// display attachment — only this package does, since there is no real
// swapchain to target on a CPU host.
package resolve

import (
	"image"
	"image/color"
	"math"
	"github.com/hulylabs/3d/types"
)

// Gamma is the display gamma applied after tonemapping.
const Gamma = 2.2

// ditherAmplitude is the peak-to-peak dither noise added before 8-bit
// quantization, expressed in 8-bit steps ("≈0.5/255 pp").
const ditherAmplitude = 0.5 / 255.0

// ACES applies the Narkowicz fit of the ACES filmic tonemapping curve to a
// single linear color channel.
func ACES(x float32) float32 {
	const a, b, c, d, e = 2.51, 0.03, 2.43, 0.59, 0.14
	v := x * (a*x + b) / (x*(c*x+d) + e)
	return clamp01(v)
}

// ACESVec3 applies ACES to every channel of a linear color.
func ACESVec3(c types.Vec3) types.Vec3 {
	return types.XYZ(ACES(c[0]), ACES(c[1]), ACES(c[2]))
}

// gradientNoise is the Jimenez interleaved-gradient-noise hash used to dither
// quantization banding, evaluated directly from pixel coordinates so
// it needs no per-pixel random stream.
func gradientNoise(x, y int) float32 {
	fx, fy := float32(x), float32(y)
	v := fx*0.06711056 + fy*0.00583715
	_, frac := math.Modf(float64(v))
	s := float32(frac) * 52.9829189
	_, frac2 := math.Modf(float64(s))
	return float32(frac2)
}

// Pixel resolves one accumulator sample into a final sRGB-ish display color:
// divide by frameCount, ACES tonemap, gamma-correct, dither.
func Pixel(accumulated types.Vec3, frameCount uint32, x, y int) types.Vec3 {
	n := float32(1)
	if frameCount > 0 {
		n = float32(frameCount)
	}
	linear := accumulated.Mul(1.0 / n)
	tonemapped := ACESVec3(linear)

	gammaCorrected := types.XYZ(powGamma(tonemapped[0]),
		powGamma(tonemapped[1]),
		powGamma(tonemapped[2]),)

	dither := (gradientNoise(x, y) - 0.5) * ditherAmplitude
	return types.XYZ(clamp01(gammaCorrected[0]+dither),
		clamp01(gammaCorrected[1]+dither),
		clamp01(gammaCorrected[2]+dither),)
}

func powGamma(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Pow(float64(x), 1.0/Gamma))
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Image resolves a full accumulator buffer into an 8-bit RGBA image, the
// swap-target substitute this boundary writes to.
func Image(width, height int, accumulated []types.Vec3, frameCount uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := Pixel(accumulated[y*width+x], frameCount, x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(c[0]*255 + 0.5),
				G: uint8(c[1]*255 + 0.5),
				B: uint8(c[2]*255 + 0.5),
				A: 255,
			})
		}
	}
	return img
}
