package scene

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

const marblesJSON = `{
  "name": "marbles",
  "camera": {"imageWidth": 64, "samplesPerPixel": 4, "lookFrom": [0, 1, 3], "lookAt": [0, 0, 0]},
  "spheres": [
    {"center": [0, -1000, 0], "radius": 1000, "material": {"type": "diffuse", "albedo": [0.5, 0.5, 0.5]}},
    {"center": [0, 0.5, 0], "radius": 0.5, "material": {"type": "glass", "refractionIndex": 1.5}},
    {"center": [1, 0.5, 0], "radius": 0.5, "material": {"type": "metal", "albedo": [0.8, 0.6, 0.2], "fuzz": 2}}
  ]
}`

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(marblesJSON))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Name != "marbles" || s.GetPrimitiveCount() != 3 {
		t.Fatalf("Expected 3 spheres in marbles, got %q with %d", s.Name, s.GetPrimitiveCount())
	}

	// Fields missing from the file keep their defaults
	defaults := renderer.DefaultCameraParams()
	if s.Camera.ImageWidth != 64 || s.Camera.MaxDepth != defaults.MaxDepth || s.Camera.AspectRatio != defaults.AspectRatio {
		t.Errorf("Unexpected camera %+v", s.Camera)
	}
	if s.Camera.LookFrom != core.NewVec3(0, 1, 3) {
		t.Errorf("Expected lookFrom (0,1,3), got %v", s.Camera.LookFrom)
	}

	spheres := s.Spheres()
	if spheres[0].Material.Kind != material.KindLambertian {
		t.Errorf("Expected diffuse alias to load as lambertian, got %s", spheres[0].Material.Kind)
	}
	if spheres[1].Material != material.NewDielectric(1.5) {
		t.Errorf("Expected glass, got %v", spheres[1].Material)
	}
	if spheres[2].Material.Fuzz != 1 {
		t.Errorf("Expected fuzz clamped to 1, got %f", spheres[2].Material.Fuzz)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `{"name": `},
		{"unknown field", `{"name": "x", "lights": []}`},
		{"unknown material", `{"spheres": [{"center": [0,0,0], "radius": 1, "material": {"type": "plastic"}}]}`},
		{"missing albedo", `{"spheres": [{"center": [0,0,0], "radius": 1, "material": {"type": "lambertian"}}]}`},
		{"missing index", `{"spheres": [{"center": [0,0,0], "radius": 1, "material": {"type": "dielectric"}}]}`},
		{"zero radius", `{"spheres": [{"center": [0,0,0], "radius": 0, "material": {"type": "glass", "refractionIndex": 1.5}}]}`},
		{"short vector", `{"spheres": [{"center": [0,0], "radius": 1, "material": {"type": "glass", "refractionIndex": 1.5}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.content)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadInvalidCamera(t *testing.T) {
	_, err := Load(strings.NewReader(`{"camera": {"imageWidth": 0}}`))
	if !errors.Is(err, renderer.ErrInvalidCamera) {
		t.Errorf("Expected ErrInvalidCamera, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	original := NewCoverScene(rand.New(rand.NewSource(3)))

	var buf bytes.Buffer
	if err := original.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Camera != original.Camera {
		t.Errorf("Camera changed: %+v vs %+v", loaded.Camera, original.Camera)
	}
	if loaded.GetPrimitiveCount() != original.GetPrimitiveCount() {
		t.Fatalf("Expected %d spheres, got %d", original.GetPrimitiveCount(), loaded.GetPrimitiveCount())
	}
	for i, sphere := range original.Spheres() {
		if *loaded.Spheres()[i] != *sphere {
			t.Errorf("Sphere %d changed: %+v vs %+v", i, *loaded.Spheres()[i], *sphere)
		}
	}
}

// boxShape is a non-sphere Shape
type boxShape struct{}

func (boxShape) Hit(ray core.Ray, interval core.Interval) (material.HitRecord, bool) {
	return material.HitRecord{}, false
}

func TestSaveRejectsNonSpheres(t *testing.T) {
	s := New("mixed")
	s.World = geometry.NewList(boxShape{})
	if err := s.Save(&bytes.Buffer{}); err == nil {
		t.Error("Expected error saving a non-sphere shape")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marbles.json")
	if err := os.WriteFile(path, []byte(marblesJSON), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if s.GetPrimitiveCount() != 3 {
		t.Errorf("Expected 3 spheres, got %d", s.GetPrimitiveCount())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
