package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// fileFormat is the on-disk JSON layout of a scene
type fileFormat struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Camera      renderer.CameraParams `json:"camera"`
	Spheres     []sphereJSON          `json:"spheres"`
}

type sphereJSON struct {
	Center   core.Vec3    `json:"center"`
	Radius   float64      `json:"radius"`
	Material materialJSON `json:"material"`
}

type materialJSON struct {
	Type            string     `json:"type"`
	Albedo          *core.Vec3 `json:"albedo,omitempty"`
	Fuzz            float64    `json:"fuzz,omitempty"`
	RefractionIndex float64    `json:"refractionIndex,omitempty"`
}

func (m materialJSON) toMaterial() (material.Material, error) {
	kind, err := material.ParseKind(m.Type)
	if err != nil {
		return material.Material{}, err
	}

	switch kind {
	case material.KindLambertian, material.KindMetal:
		if m.Albedo == nil {
			return material.Material{}, fmt.Errorf("%s material requires an albedo", kind)
		}
		if kind == material.KindMetal {
			return material.NewMetal(*m.Albedo, m.Fuzz), nil
		}
		return material.NewLambertian(*m.Albedo), nil
	default:
		if m.RefractionIndex <= 0 {
			return material.Material{}, fmt.Errorf("dielectric material requires a positive refractionIndex, got %f", m.RefractionIndex)
		}
		return material.NewDielectric(m.RefractionIndex), nil
	}
}

func fromMaterial(m material.Material) materialJSON {
	out := materialJSON{Type: m.Kind.String()}
	switch m.Kind {
	case material.KindLambertian:
		albedo := m.Albedo
		out.Albedo = &albedo
	case material.KindMetal:
		albedo := m.Albedo
		out.Albedo = &albedo
		out.Fuzz = m.Fuzz
	case material.KindDielectric:
		out.RefractionIndex = m.RefractionIndex
	}
	return out
}

// Load decodes a JSON scene. Camera fields missing from the file keep their defaults.
func Load(r io.Reader) (*Scene, error) {
	file := fileFormat{Camera: renderer.DefaultCameraParams()}

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if err := file.Camera.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", file.Name, err)
	}

	s := New(file.Name)
	s.Description = file.Description
	s.Camera = file.Camera

	for i, sphere := range file.Spheres {
		if !(sphere.Radius > 0) {
			return nil, fmt.Errorf("sphere %d: radius must be positive, got %f", i, sphere.Radius)
		}
		mat, err := sphere.Material.toMaterial()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddSphere(sphere.Center, sphere.Radius, mat)
	}

	return s, nil
}

// LoadFile reads a JSON scene file
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save encodes the scene as indented JSON. Only spheres can be saved.
func (s *Scene) Save(w io.Writer) error {
	file := fileFormat{
		Name:        s.Name,
		Description: s.Description,
		Camera:      s.Camera,
		Spheres:     make([]sphereJSON, 0, s.World.Len()),
	}

	for i, shape := range s.World.Shapes() {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			return fmt.Errorf("object %d: cannot save shape of type %T", i, shape)
		}
		file.Spheres = append(file.Spheres, sphereJSON{
			Center:   sphere.Center,
			Radius:   sphere.Radius,
			Material: fromMaterial(sphere.Material),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(file); err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return nil
}
