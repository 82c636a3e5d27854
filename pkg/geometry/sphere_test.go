package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

var defaultInterval = core.NewInterval(0.001, 1000.0)

func newTestSphere(center core.Vec3, radius float64) *Sphere {
	return NewSphere(center, radius, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := newTestSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, defaultInterval)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := newTestSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, defaultInterval)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			tolerance := 1e-9
			if math.Abs(hit.Normal.X-tt.expectedNormal.X) > tolerance ||
				math.Abs(hit.Normal.Y-tt.expectedNormal.Y) > tolerance ||
				math.Abs(hit.Normal.Z-tt.expectedNormal.Z) > tolerance {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := newTestSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, defaultInterval)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	tolerance := 1e-9
	if hit.Point.Subtract(expectedPoint).Length() > tolerance {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := newTestSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Both roots (1 and 3) above tMax
	hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 0.5))
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Both roots below tMin
	hit, isHit = sphere.Hit(ray, core.NewInterval(3.5, 1000.0))
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Bounds are exclusive
	hit, isHit = sphere.Hit(ray, core.NewInterval(1.0, 3.0))
	if isHit {
		t.Errorf("Expected miss when roots sit on the bounds, but got hit at t=%f", hit.T)
	}

	// Near root excluded, far root accepted
	hit, isHit = sphere.Hit(ray, core.NewInterval(1.5, 1000.0))
	if !isHit {
		t.Fatal("Expected far root hit")
	}
	if math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected far root t=3, got t=%f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Expected far root to be a back face hit")
	}
}

func TestSphere_Hit_ClosestIntersection(t *testing.T) {
	sphere := newTestSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, defaultInterval)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected closest intersection at t=1, got t=%f", hit.T)
	}

	if !hit.FrontFace {
		t.Error("Expected closest intersection to be front face")
	}

	if hit.Material != sphere.Material {
		t.Errorf("Expected material copy %v, got %v", sphere.Material, hit.Material)
	}
}

func TestSphere_Hit_NormalInvariants(t *testing.T) {
	sampler := core.NewSeededSampler(11)
	sphere := newTestSphere(core.NewVec3(0.3, -0.2, 0.1), 0.8)

	hits := 0
	for i := 0; i < 2000; i++ {
		origin := core.NewVec3(4*sampler.Get1D()-2, 4*sampler.Get1D()-2, 4*sampler.Get1D()-2)
		direction := core.NewVec3(2*sampler.Get1D()-1, 2*sampler.Get1D()-1, 2*sampler.Get1D()-1)
		ray := core.NewRay(origin, direction)

		hit, isHit := sphere.Hit(ray, defaultInterval)

		// Miss exactly when the discriminant is negative or both roots are out of range
		oc := origin.Subtract(sphere.Center)
		a := direction.Dot(direction)
		halfB := oc.Dot(direction)
		c := oc.Dot(oc) - sphere.Radius*sphere.Radius
		disc := halfB*halfB - a*c
		expectHit := false
		if disc >= 0 {
			r1 := (-halfB - math.Sqrt(disc)) / a
			r2 := (-halfB + math.Sqrt(disc)) / a
			expectHit = defaultInterval.Surrounds(r1) || defaultInterval.Surrounds(r2)
		}
		if isHit != expectHit {
			t.Fatalf("Ray %v: hit=%t, expected %t", ray, isHit, expectHit)
		}
		if !isHit {
			continue
		}
		hits++

		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit normal, got length %f", hit.Normal.Length())
		}
		if direction.Dot(hit.Normal) > 0 {
			t.Fatalf("Normal %v does not oppose ray direction %v", hit.Normal, direction)
		}

		outward := hit.Point.Subtract(sphere.Center).Divide(sphere.Radius)
		if hit.FrontFace != (direction.Dot(outward) <= 0) {
			t.Fatalf("Front face flag %t disagrees with outward normal %v", hit.FrontFace, outward)
		}
	}

	if hits == 0 {
		t.Fatal("Expected some random rays to hit the sphere")
	}
}
