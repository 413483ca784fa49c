package types

import "math"

// Mat3 is a row-major 3x3 matrix stored as a flat 9 element array:
// m[row*3+col].
type Mat3 [9]float32

// Mat4 is a row-major 4x4 matrix stored as a flat 16 element array:
// m[row*4+col].
type Mat4 [16]float32

// Mat3x4 is a row-major 3x4 affine transform (3 rows of 4 columns): the top
// 3x3 block is rotation/scale, the last column is translation. Used for the
// SDF instance location/inverse_location transforms.
type Mat3x4 [12]float32

// Mat2x4 is a row-major 2x4 matrix mapping a homogeneous local position (w=1)
// to an unclamped 2D texture coordinate (AtlasMapping).
type Mat2x4 [8]float32

// Ident3 returns the 3x3 identity matrix.
func Ident3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Ident4 returns the 4x4 identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ident3x4 returns the identity affine transform.
func Ident3x4() Mat3x4 {
	return Mat3x4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	}
}

// Mul3x1 applies the 3x3 matrix to a vector.
func (m Mat3) Mul3x1(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Transpose returns the transposed 3x3 matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Inv returns the inverse of the 3x3 matrix via the adjugate/cofactor
// method. If the matrix is singular the identity matrix is returned.
func (m Mat3) Inv() Mat3 {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	A := e*i - f*h
	B := -(d*i - f*g)
	C := d*h - e*g
	det := a*A + b*B + c*C
	if det == 0 {
		return Ident3()
	}
	invDet := 1.0 / det

	D := -(b*i - c*h)
	E := a*i - c*g
	F := -(a*h - b*g)
	G := b*f - c*e
	H := -(a*f - c*d)
	I := a*e - b*d

	return Mat3{
		A * invDet, D * invDet, G * invDet,
		B * invDet, E * invDet, H * invDet,
		C * invDet, F * invDet, I * invDet,
	}
}

// NewAffine3x4 builds an affine transform from a 3x3 rotation/scale block and
// a translation, used to assemble SDF instance placements.
func NewAffine3x4(rotScale Mat3, translation Vec3) Mat3x4 {
	return Mat3x4{
		rotScale[0], rotScale[1], rotScale[2], translation[0],
		rotScale[3], rotScale[4], rotScale[5], translation[1],
		rotScale[6], rotScale[7], rotScale[8], translation[2],
	}
}

// Inv returns the inverse of the affine transform (inverts the 3x3 block and
// re-derives translation so that m.Inv.TransformPoint(m.TransformPoint(v))
// == v), used to derive an SDF instance's InverseLocation from its Location.
func (m Mat3x4) Inv() Mat3x4 {
	rs := m.Mat3().Inv()
	t := m.Translation()
	invT := rs.Mul3x1(t).Neg()
	return NewAffine3x4(rs, invT)
}

// Mul4 multiplies two 4x4 matrices: result = m * o.
func (m Mat4) Mul4(o Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// Mul4x1 applies the 4x4 matrix to a vector: result = m * v.
func (m Mat4) Mul4x1(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}

// Mul4Dir applies only the rotation/scale (top-left 3x3) part of the matrix
// to a direction vector, ignoring translation.
func (m Mat4) Mul4Dir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2],
	}
}

// Origin returns the translation column (column 3) of the matrix, i.e. the
// camera origin when m is a view matrix (Uniforms).
func (m Mat4) Origin() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// Transpose returns the transposed 4x4 matrix.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[col*4+row] = m[row*4+col]
		}
	}
	return out
}

// Inv returns the inverse of the 4x4 matrix using cofactor expansion. If the
// matrix is singular the identity matrix is returned.
func (m Mat4) Inv() Mat4 {
	a := m
	s0 := a[0]*a[5] - a[4]*a[1]
	s1 := a[0]*a[6] - a[4]*a[2]
	s2 := a[0]*a[7] - a[4]*a[3]
	s3 := a[1]*a[6] - a[5]*a[2]
	s4 := a[1]*a[7] - a[5]*a[3]
	s5 := a[2]*a[7] - a[6]*a[3]

	c5 := a[10]*a[15] - a[14]*a[11]
	c4 := a[9]*a[15] - a[13]*a[11]
	c3 := a[9]*a[14] - a[13]*a[10]
	c2 := a[8]*a[15] - a[12]*a[11]
	c1 := a[8]*a[14] - a[12]*a[10]
	c0 := a[8]*a[13] - a[12]*a[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Ident4()
	}
	invDet := 1.0 / det

	return Mat4{
		(a[5]*c5 - a[6]*c4 + a[7]*c3) * invDet,
		(-a[1]*c5 + a[2]*c4 - a[3]*c3) * invDet,
		(a[13]*s5 - a[14]*s4 + a[15]*s3) * invDet,
		(-a[9]*s5 + a[10]*s4 - a[11]*s3) * invDet,

		(-a[4]*c5 + a[6]*c2 - a[7]*c1) * invDet,
		(a[0]*c5 - a[2]*c2 + a[3]*c1) * invDet,
		(-a[12]*s5 + a[14]*s2 - a[15]*s1) * invDet,
		(a[8]*s5 - a[10]*s2 + a[11]*s1) * invDet,

		(a[4]*c4 - a[5]*c2 + a[7]*c0) * invDet,
		(-a[0]*c4 + a[1]*c2 - a[3]*c0) * invDet,
		(a[12]*s4 - a[13]*s2 + a[15]*s0) * invDet,
		(-a[8]*s4 + a[9]*s2 - a[11]*s0) * invDet,

		(-a[4]*c3 + a[5]*c1 - a[6]*c0) * invDet,
		(a[0]*c3 - a[1]*c1 + a[2]*c0) * invDet,
		(-a[12]*s3 + a[13]*s1 - a[14]*s0) * invDet,
		(a[8]*s3 - a[9]*s1 + a[10]*s0) * invDet,
	}
}

// Translation4 builds a pure translation matrix.
func Translation4(v Vec3) Mat4 {
	m := Ident4()
	m[3], m[7], m[11] = v[0], v[1], v[2]
	return m
}

// LookAtV builds a right-handed view matrix from an eye position, a look-at
// target and an up vector, matching the conventions used by the camera's
// frustum-corner derivation.
func LookAtV(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s[0], s[1], s[2], -s.Dot(eye),
		u[0], u[1], u[2], -u.Dot(eye),
		-f[0], -f[1], -f[2], f.Dot(eye),
		0, 0, 0, 1,
	}
}

// Perspective4 builds a right-handed perspective projection matrix. fovY is
// in degrees.
func Perspective4(fovYDegrees, aspect, near, far float32) Mat4 {
	fovY := float64(fovYDegrees) * math.Pi / 180.0
	f := float32(1.0 / math.Tan(fovY/2.0))
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, 2 * far * near * nf,
		0, 0, -1, 0,
	}
}

// TransformPoint applies the affine transform to a point (translation included).
func (m Mat3x4) TransformPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
}

// TransformDirection applies only the rotation/scale block, ignoring translation.
func (m Mat3x4) TransformDirection(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2],
	}
}

// Mat3 extracts the rotation/scale block.
func (m Mat3x4) Mat3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Translation extracts the translation column.
func (m Mat3x4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// MapPoint4 maps a homogeneous local position (w implied 1) to a 2D texture
// coordinate, per the AtlasMapping projection matrix.
func (m Mat2x4) MapPoint4(local Vec4) Vec2 {
	return Vec2{
		m[0]*local[0] + m[1]*local[1] + m[2]*local[2] + m[3]*local[3],
		m[4]*local[0] + m[5]*local[1] + m[6]*local[2] + m[7]*local[3],
	}
}

// MapDirection4 applies the same matrix to a direction (dp/dx, dp/dy) by
// dropping the translation column's contribution (w=0 for directions).
func (m Mat2x4) MapDirection4(dir Vec3) Vec2 {
	return m.MapPoint4(dir.Vec4(0))
}
