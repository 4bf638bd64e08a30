package omath

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// BoxAround returns a box of the size passed centred on pos.
func BoxAround(pos, size mgl32.Vec3) cube.BBox {
	h := size.Mul(0.5)
	return cube.Box(pos[0]-h[0], pos[1]-h[1], pos[2]-h[2], pos[0]+h[0], pos[1]+h[1], pos[2]+h[2])
}

// BoxPointDistance calculates the distance between a box and a point. Points inside the box are at
// a distance of zero.
func BoxPointDistance(b cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(b.Min().X()-v.X(), math32.Max(0, v.X()-b.Max().X()))
	y := math32.Max(b.Min().Y()-v.Y(), math32.Max(0, v.Y()-b.Max().Y()))
	z := math32.Max(b.Min().Z()-v.Z(), math32.Max(0, v.Z()-b.Max().Z()))
	return math32.Sqrt(x*x + y*y + z*z)
}
