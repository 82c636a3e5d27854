package scene

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0, 1]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b
	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	// LMS to linear RGB
	unit := core.NewInterval(0, 1)
	return core.NewVec3(
		unit.Clamp(+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc),
		unit.Clamp(-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc),
		unit.Clamp(-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc),
	)
}

// NewSphereGridScene creates a gridSize x gridSize field of metal spheres whose hue
// varies along X and chroma along Z, resting on a gray ground sphere
func NewSphereGridScene(gridSize int) *Scene {
	s := New("spheregrid")
	s.Description = "Grid of rainbow-colored metal spheres"
	s.Camera = renderer.CameraParams{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      800,
		SamplesPerPixel: 100,
		MaxDepth:        40,
		VerticalFOV:     40,
		LookFrom:        core.NewVec3(4.5, 6, 18),
		LookAt:          core.NewVec3(4.5, 0.8, 4.5),
		ViewUp:          core.NewVec3(0, 1, 0),
		DefocusAngle:    0.3,
		FocusDistance:   14.5,
	}

	s.AddSphere(core.NewVec3(4.5, -10000, 4.5), 10000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	if gridSize < 2 {
		gridSize = 2
	}

	// Fit the grid into a 9x9 area centered on the look-at point
	const targetArea = 9.0
	spacing := targetArea / float64(gridSize-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	const (
		baseLightness = 0.65
		minChroma     = 0.05
		maxChroma     = 0.25
	)

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			hue := float64(i) / float64(gridSize-1) * 360.0
			chroma := minChroma + float64(j)/float64(gridSize-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			fuzz := 0.05 + 0.1*float64((i+j)%3)/2.0

			s.AddSphere(core.NewVec3(x, radius, z), radius, material.NewMetal(oklchToRGB(lightness, chroma, hue), fuzz))
		}
	}

	return s
}
