package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// QuatToEuler converts a quaternion to Euler angles (degrees)
func QuatToEuler(q mgl32.Quat) mgl32.Vec3 {
	w, x, y, z := q.W, q.V[0], q.V[1], q.V[2]

	// Roll (x-axis rotation)
	sinrCosp := 2 * (w*x + y*z)
	cosrCosp := 1 - 2*(x*x+y*y)
	roll := float32(math.Atan2(float64(sinrCosp), float64(cosrCosp)))

	// Pitch (y-axis rotation)
	sinp := 2 * (w*y - z*x)
	var pitch float32
	if math.Abs(float64(sinp)) >= 1 {
		pitch = float32(math.Copysign(math.Pi/2, float64(sinp)))
	} else {
		pitch = float32(math.Asin(float64(sinp)))
	}

	// Yaw (z-axis rotation)
	sinyCosp := 2 * (w*z + x*y)
	cosyCosp := 1 - 2*(y*y+z*z)
	yaw := float32(math.Atan2(float64(sinyCosp), float64(cosyCosp)))

	return mgl32.Vec3{mgl32.RadToDeg(roll), mgl32.RadToDeg(pitch), mgl32.RadToDeg(yaw)}
}

// EulerToQuat converts Euler angles (degrees) to a quaternion
func EulerToQuat(euler mgl32.Vec3) mgl32.Quat {
	roll := float64(mgl32.DegToRad(euler.X()))
	pitch := float64(mgl32.DegToRad(euler.Y()))
	yaw := float64(mgl32.DegToRad(euler.Z()))

	cy := float32(math.Cos(yaw * 0.5))
	sy := float32(math.Sin(yaw * 0.5))
	cp := float32(math.Cos(pitch * 0.5))
	sp := float32(math.Sin(pitch * 0.5))
	cr := float32(math.Cos(roll * 0.5))
	sr := float32(math.Sin(roll * 0.5))

	return mgl32.Quat{
		W: cr*cp*cy + sr*sp*sy,
		V: mgl32.Vec3{
			sr*cp*cy - cr*sp*sy,
			cr*sp*cy + sr*cp*sy,
			cr*cp*sy - sr*sp*cy,
		},
	}
}

// QuatToEulerArray is QuatToEuler in the shape scene documents store.
func QuatToEulerArray(q mgl32.Quat) [3]float32 {
	return [3]float32(QuatToEuler(q))
}
