package siemesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector3 is a plain 3D point or direction. It is a value type because the
// mesh store always copies positions on insert.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func NewVector3FromArray(a []float64) Vector3 {
	return Vector3{X: a[0], Y: a[1], Z: a[2]}
}

func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Cross computes the cross product of two vectors.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Dot computes the dot product of two vectors.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit-length copy. The zero vector comes back
// unchanged so callers don't have to special-case degenerate faces.
func (v Vector3) Normalized() Vector3 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return Vector3{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
}

// DistanceTo
func (v Vector3) DistanceTo(other Vector3) float64 {
	return v.Sub(other).Length()
}

// Lerp interpolates between v and other, t in [0,1].
func (v Vector3) Lerp(other Vector3, t float64) Vector3 {
	return Vector3{
		X: v.X + (other.X-v.X)*t,
		Y: v.Y + (other.Y-v.Y)*t,
		Z: v.Z + (other.Z-v.Z)*t,
	}
}

func (v Vector3) Mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func FromMgl(v mgl64.Vec3) Vector3 {
	return Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// NewellNormal computes the normal of a (possibly non-planar) polygon using
// the Newell method, which is stable for quads and n-gons where a single
// cross product is not.
func NewellNormal(points []Vector3) Vector3 {
	if len(points) < 3 {
		return Vector3{Z: 1}
	}
	var n Vector3
	for i, cur := range points {
		next := points[(i+1)%len(points)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n.Normalized()
}

// MirrorPlane is the reflection plane used by the Mirror command, given as a
// point on the plane and its (not necessarily unit) normal.
type MirrorPlane struct {
	Origin Vector3
	Normal Vector3
}

// Reflect mirrors a point across the plane.
func (p MirrorPlane) Reflect(point Vector3) Vector3 {
	n := p.Normal.Normalized()
	d := point.Sub(p.Origin).Dot(n)
	return point.Sub(n.Scale(2 * d))
}

// RotateAround rotates a point around an axis (origin + unit direction) by
// the given angle in radians.
func RotateAround(point Vector3, origin, axis Vector3, angle float64) Vector3 {
	rot := mgl64.HomogRotate3D(angle, axis.Normalized().Mgl())
	local := point.Sub(origin).Mgl().Vec4(1)
	rotated := rot.Mul4x1(local)
	return FromMgl(rotated.Vec3()).Add(origin)
}
