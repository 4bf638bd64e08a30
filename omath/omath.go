package omath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec3ApproxEq determines whether every component of the two vectors is within 1e-5 of the other.
func Vec3ApproxEq(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-5)
}

// ClampLength returns v scaled down so that its length does not exceed max. A negative max
// disables the clamp.
func ClampLength(v mgl32.Vec3, max float32) mgl32.Vec3 {
	if max < 0 {
		return v
	}
	lenSqr := v.LenSqr()
	if lenSqr <= max*max {
		return v
	}
	if max == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(max / math32.Sqrt(lenSqr))
}

// SafeNormalize normalizes v, returning a zero vector instead of NaN/Inf components when v has no
// length.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= 1e-8 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// QuatAngle returns the smallest angle in radians needed to rotate orientation a onto b.
func QuatAngle(a, b mgl32.Quat) float32 {
	dot := math32.Abs(a.Normalize().Dot(b.Normalize()))
	if dot >= 1 {
		return 0
	}
	return 2 * math32.Acos(dot)
}

// QuatError returns the rotation from orientation `from` to `to` as a scaled axis (axis * angle in
// radians), always taking the shortest path.
func QuatError(from, to mgl32.Quat) mgl32.Vec3 {
	q := to.Normalize().Mul(from.Normalize().Inverse()).Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	w := mgl32.Clamp(q.W, -1, 1)
	angle := 2 * math32.Acos(w)
	s := math32.Sqrt(1 - w*w)
	if s < 1e-6 {
		return mgl32.Vec3{}
	}
	return q.V.Mul(angle / s)
}

// RotateTowards rotates `from` towards `to` by at most maxRadians.
func RotateTowards(from, to mgl32.Quat, maxRadians float32) mgl32.Quat {
	angle := QuatAngle(from, to)
	if angle <= maxRadians || angle <= 1e-6 {
		return to.Normalize()
	}
	if maxRadians <= 0 {
		return from.Normalize()
	}
	return mgl32.QuatSlerp(from, to, maxRadians/angle)
}

// IntegrateRotation advances orientation q by the angular velocity w (radians per second, world
// space) over dt seconds.
func IntegrateRotation(q mgl32.Quat, w mgl32.Vec3, dt float32) mgl32.Quat {
	speed := w.Len()
	if speed <= 1e-8 || dt <= 0 {
		return q
	}
	return mgl32.QuatRotate(speed*dt, w.Mul(1/speed)).Mul(q).Normalize()
}

// MaxComponent returns the largest component of v.
func MaxComponent(v mgl32.Vec3) float32 {
	return math32.Max(v[0], math32.Max(v[1], v[2]))
}
