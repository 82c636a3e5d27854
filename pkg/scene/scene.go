package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	World       *geometry.List        // Objects in the scene, in insertion order
	Camera      renderer.CameraParams // Framing and sampling settings
}

// New creates an empty scene with the default camera
func New(name string) *Scene {
	return &Scene{
		Name:   name,
		World:  geometry.NewList(),
		Camera: renderer.DefaultCameraParams(),
	}
}

// AddSphere appends a sphere to the world
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.World.Add(sphere)
	return sphere
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// Spheres returns the spheres of the world in insertion order
func (s *Scene) Spheres() []*geometry.Sphere {
	var spheres []*geometry.Sphere
	for _, shape := range s.World.Shapes() {
		if sphere, ok := shape.(*geometry.Sphere); ok {
			spheres = append(spheres, sphere)
		}
	}
	return spheres
}

// NewCamera validates the scene camera and builds it
func (s *Scene) NewCamera() (*renderer.Camera, error) {
	if err := s.Camera.Validate(); err != nil {
		return nil, err
	}
	return renderer.NewCamera(s.Camera), nil
}
