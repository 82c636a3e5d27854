package renderer

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// intensity keeps 256·x strictly below 256
var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies gamma 2 correction
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToneMap converts an averaged linear color to 8-bit sRGB-ish channel values
func ToneMap(color core.Vec3) (r, g, b byte) {
	r = byte(256 * intensity.Clamp(linearToGamma(color.X)))
	g = byte(256 * intensity.Clamp(linearToGamma(color.Y)))
	b = byte(256 * intensity.Clamp(linearToGamma(color.Z)))
	return r, g, b
}
