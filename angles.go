package vector3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AngleSet is a named rotation state. One set can drive many objects; the
// viewer advances each set once per frame no matter how many objects use it.
// Angles are in degrees for the X, Y and Z axes.
type AngleSet struct {
	Name string

	// Base is the fixed part of the rotation.
	Base mgl64.Vec3
	// Rotate is added to the accumulated angles on every Advance.
	Rotate mgl64.Vec3

	accumulated mgl64.Vec3
	rotation    mgl64.Mat3
}

func NewAngleSet(name string) *AngleSet {
	return &AngleSet{
		Name:     name,
		rotation: mgl64.Ident3(),
	}
}

// Accumulated returns the angles added by Advance so far, each in [0, 360).
func (a *AngleSet) Accumulated() mgl64.Vec3 {
	return a.accumulated
}

func (a *AngleSet) SetAccumulated(v mgl64.Vec3) {
	for i := range v {
		v[i] = wrapDegrees(v[i])
	}
	a.accumulated = v
}

// Advance adds the per-frame increment and wraps every axis into [0, 360).
func (a *AngleSet) Advance() {
	a.accumulated = a.accumulated.Add(a.Rotate)
	for i := range a.accumulated {
		a.accumulated[i] = wrapDegrees(a.accumulated[i])
	}
}

func wrapDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d -= 360
	}
	return d
}

// UpdateRotationMatrix rebuilds the rotation from base + accumulated angles:
// first about X, then Y, then Z. The result is applied to row vectors, so it
// equals Rx·Ry·Rz of the column-vector convention.
func (a *AngleSet) UpdateRotationMatrix() {
	a.rotation = EulerXYZ(a.Base.Add(a.accumulated))
}

func (a *AngleSet) RotationMatrix() mgl64.Mat3 {
	return a.rotation
}

// EulerXYZ returns the combined X→Y→Z rotation for angles given in degrees.
func EulerXYZ(deg mgl64.Vec3) mgl64.Mat3 {
	rx := mgl64.Rotate3DX(mgl64.DegToRad(deg[0]))
	ry := mgl64.Rotate3DY(mgl64.DegToRad(deg[1]))
	rz := mgl64.Rotate3DZ(mgl64.DegToRad(deg[2]))
	return rx.Mul3(ry).Mul3(rz)
}
