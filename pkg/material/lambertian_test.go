package material

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func TestLambertian_AlwaysScatters(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewSeededSampler(42)

	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{
		Point:  core.NewVec3(1, 2, 3),
		Normal: normal,
	}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	for i := 0; i < 500; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}

		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}

		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Expected scattered origin %v, got %v", hit.Point, scatter.Scattered.Origin)
		}

		// normal + unit vector lies in a unit sphere tangent to the surface
		offset := scatter.Scattered.Direction.Subtract(normal)
		if math.Abs(offset.Length()-1) > 1e-9 && !scatter.Scattered.Direction.NearZero() {
			t.Fatalf("Expected direction on unit sphere around the normal, got %v", scatter.Scattered.Direction)
		}
		if scatter.Scattered.Direction.Dot(normal) < -1e-9 {
			t.Fatalf("Expected direction in the normal hemisphere, got %v", scatter.Scattered.Direction)
		}
	}
}

// fixedSampler replays fixed draws
type fixedSampler struct {
	values []float64
	next   int
}

func (s *fixedSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	// Draws map to the point (0, 0, 0.5) which normalizes to +Z
	sampler := &fixedSampler{values: []float64{0.5, 0.5, 0.75}}

	normal := core.NewVec3(0, 0, -1)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, ok := lambertian.Scatter(ray, hit, sampler)
	if !ok {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != normal {
		t.Errorf("Expected fallback to normal %v, got %v", normal, scatter.Scattered.Direction)
	}
}

func TestMaterial_KindNames(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
	}{
		{"lambertian", KindLambertian},
		{"metal", KindMetal},
		{"dielectric", KindDielectric},
		{"diffuse", KindLambertian},
		{"glass", KindDielectric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ParseKind(tt.name)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if kind != tt.kind {
				t.Errorf("Expected %v, got %v", tt.kind, kind)
			}
		})
	}

	if _, err := ParseKind("plastic"); err == nil {
		t.Error("Expected error for unknown material")
	}
	if KindMetal.String() != "metal" {
		t.Errorf("Expected metal, got %s", KindMetal.String())
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 1, 0)

	var front HitRecord
	front.SetFaceNormal(core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0)), outward)
	if !front.FrontFace || front.Normal != outward {
		t.Errorf("Expected front face with outward normal, got %+v", front)
	}

	var back HitRecord
	back.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), outward)
	if back.FrontFace || back.Normal != outward.Negate() {
		t.Errorf("Expected back face with flipped normal, got %+v", back)
	}

	// Grazing rays count as front facing
	var grazing HitRecord
	grazing.SetFaceNormal(core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, 0, 0)), outward)
	if !grazing.FrontFace {
		t.Error("Expected perpendicular ray to be front facing")
	}
}
