package audio

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Listener is the ear of the scene, usually the player camera.
type Listener struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
}

// Cone shapes an emitter's directivity. Angles are full cone widths in degrees.
type Cone struct {
	InnerAngle float32
	OuterAngle float32
	OuterGain  float32
}

// Omni is a cone that radiates equally in all directions.
var Omni = Cone{InnerAngle: 360, OuterAngle: 360, OuterGain: 1}

// Attenuation is 1 up to min, 0 from max on, and linear in between.
func Attenuation(distance, min, max float32) float32 {
	if distance <= min {
		return 1
	}
	if distance >= max || max <= min {
		return 0
	}
	return 1 - (distance-min)/(max-min)
}

// ConeGain returns the gain for a listener seen from an emitter facing
// emitterDir. toListener points from the emitter to the listener.
func (c Cone) ConeGain(emitterDir, toListener mgl32.Vec3) float32 {
	if c.InnerAngle >= 360 || emitterDir.Len() == 0 || toListener.Len() == 0 {
		return 1
	}
	cos := emitterDir.Normalize().Dot(toListener.Normalize())
	cos = mgl32.Clamp(cos, -1, 1)
	angle := mgl32.RadToDeg(float32(math.Acos(float64(cos))))

	inner := c.InnerAngle / 2
	outer := c.OuterAngle / 2
	if outer < inner {
		outer = inner
	}
	switch {
	case angle <= inner:
		return 1
	case angle >= outer:
		return c.OuterGain
	}
	t := (angle - inner) / (outer - inner)
	return 1 + (c.OuterGain-1)*t
}

// SpatialGain combines distance attenuation and cone gain.
func SpatialGain(listener Listener, position, direction mgl32.Vec3, cone Cone, min, max float32) float32 {
	toListener := listener.Position.Sub(position)
	return Attenuation(toListener.Len(), min, max) * cone.ConeGain(direction, toListener)
}
