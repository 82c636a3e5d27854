package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewCoverScene creates the field of small random spheres around a hollow glass
// sphere, a diffuse sphere and a gold sphere. The layout depends only on random.
func NewCoverScene(random *rand.Rand) *Scene {
	s := New("cover")
	s.Description = "Random field of small spheres around three large ones"
	s.Camera = renderer.CameraParams{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      1920,
		SamplesPerPixel: 500,
		MaxDepth:        100,
		VerticalFOV:     25,
		LookFrom:        core.NewVec3(13, 5, 4),
		LookAt:          core.NewVec3(0, 0, 0),
		ViewUp:          core.NewVec3(0, 1, 0),
		DefocusAngle:    0.6,
		FocusDistance:   14.5,
	}

	s.AddSphere(core.NewVec3(0, -100000, -1), 100000, material.NewLambertian(core.NewVec3(1.0, 0.4, 0.4)))

	// Hollow glass: a 1.5 shell around an inverted-index core
	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(0, 1, 0), 0.95, material.NewDielectric(1.0/1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.1))

	randomColor := func(lo, hi float64) core.Vec3 {
		return core.NewVec3(
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
		)
	}

	keepClear := core.NewVec3(4, 0.2, 0)
	for a := -12; a < 6; a++ {
		for b := -10; b < 6; b++ {
			chooseMat := random.Float64()
			size := 0.17 + 0.08*random.Float64()
			center := core.NewVec3(
				1.8*float64(a)+1.5*random.Float64(),
				size,
				1.8*float64(b)+1.5*random.Float64(),
			)

			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				mat = material.NewLambertian(randomColor(0.3, 1.0))
			case chooseMat < 0.95:
				mat = material.NewMetal(randomColor(0.3, 1.0), random.Float64()*0.5)
			default:
				mat = material.NewDielectric(1.5)
			}
			s.AddSphere(center, size, mat)
		}
	}

	return s
}
