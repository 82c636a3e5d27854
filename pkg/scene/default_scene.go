package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewDefaultScene creates three spheres of different materials resting on a ground sphere
func NewDefaultScene() *Scene {
	s := New("default")
	s.Description = "Diffuse, glass and gold spheres on a ground sphere"
	s.Camera = renderer.CameraParams{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VerticalFOV:     40,
		LookFrom:        core.NewVec3(0, 0.75, 2),
		LookAt:          core.NewVec3(0, 0.5, -1),
		ViewUp:          core.NewVec3(0, 1, 0),
		DefocusAngle:    1.0,
		FocusDistance:   3.0,
	}

	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)
	bubble := material.NewDielectric(1.0 / 1.5)

	s.AddSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGreen)
	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianBlue)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.4, bubble)
	s.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)

	return s
}

// NewGroundScene creates a single huge diffuse sphere acting as a ground plane
func NewGroundScene() *Scene {
	s := New("ground")
	s.Description = "Ground sphere under the sky gradient"
	s.Camera.LookFrom = core.NewVec3(0, 1, 0)
	s.Camera.LookAt = core.NewVec3(0, 1, -1)
	s.Camera.SamplesPerPixel = 10

	s.AddSphere(core.NewVec3(0, -100000, -1), 100000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return s
}

// NewEmptyScene creates a scene with nothing but sky
func NewEmptyScene() *Scene {
	s := New("empty")
	s.Description = "Sky gradient only"
	s.Camera.SamplesPerPixel = 1
	return s
}
