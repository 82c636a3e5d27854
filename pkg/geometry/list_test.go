package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// MockShape implements Shape for testing
type MockShape struct {
	hitFn func(ray core.Ray, interval core.Interval) (material.HitRecord, bool)
	calls []core.Interval
}

func (m *MockShape) Hit(ray core.Ray, interval core.Interval) (material.HitRecord, bool) {
	m.calls = append(m.calls, interval)
	return m.hitFn(ray, interval)
}

func TestList_EmptyMisses(t *testing.T) {
	list := NewList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := list.Hit(ray, defaultInterval); isHit {
		t.Error("Expected empty list to miss")
	}
	if list.Len() != 0 {
		t.Errorf("Expected empty list, got %d shapes", list.Len())
	}
}

func TestList_ClosestHit(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	red := material.NewLambertian(core.NewVec3(1, 0, 0))
	green := material.NewLambertian(core.NewVec3(0, 1, 0))
	blue := material.NewLambertian(core.NewVec3(0, 0, 1))

	tests := []struct {
		name          string
		spheres       []*Sphere
		expectedT     float64
		expectedColor core.Vec3
	}{
		{
			name:          "single sphere",
			spheres:       []*Sphere{NewSphere(core.NewVec3(0, 0, -5), 1, red)},
			expectedT:     4,
			expectedColor: red.Albedo,
		},
		{
			name: "farther sphere added later does not change result",
			spheres: []*Sphere{
				NewSphere(core.NewVec3(0, 0, -5), 1, red),
				NewSphere(core.NewVec3(0, 0, -10), 1, green),
			},
			expectedT:     4,
			expectedColor: red.Albedo,
		},
		{
			name: "closer sphere added later wins",
			spheres: []*Sphere{
				NewSphere(core.NewVec3(0, 0, -5), 1, red),
				NewSphere(core.NewVec3(0, 0, -10), 1, green),
				NewSphere(core.NewVec3(0, 0, -3), 1, blue),
			},
			expectedT:     2,
			expectedColor: blue.Albedo,
		},
		{
			name: "closer sphere added first wins",
			spheres: []*Sphere{
				NewSphere(core.NewVec3(0, 0, -3), 1, blue),
				NewSphere(core.NewVec3(0, 0, -5), 1, red),
			},
			expectedT:     2,
			expectedColor: blue.Albedo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := NewList()
			for _, s := range tt.spheres {
				list.Add(s)
			}

			hit, isHit := list.Hit(ray, defaultInterval)
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.Material.Albedo != tt.expectedColor {
				t.Errorf("Expected albedo %v, got %v", tt.expectedColor, hit.Material.Albedo)
			}
		})
	}
}

func TestList_ShrinksInterval(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	first := &MockShape{hitFn: func(ray core.Ray, interval core.Interval) (material.HitRecord, bool) {
		return material.HitRecord{T: 7}, true
	}}
	second := &MockShape{hitFn: func(ray core.Ray, interval core.Interval) (material.HitRecord, bool) {
		return material.HitRecord{}, false
	}}

	list := NewList(first, second)
	hit, isHit := list.Hit(ray, core.NewInterval(0.001, 100))
	if !isHit || hit.T != 7 {
		t.Fatalf("Expected hit at t=7, got %v (hit=%t)", hit.T, isHit)
	}

	if first.calls[0].Max != 100 {
		t.Errorf("Expected first shape to see the caller's max, got %f", first.calls[0].Max)
	}
	if second.calls[0].Max != 7 || second.calls[0].Min != 0.001 {
		t.Errorf("Expected second shape to see [0.001, 7], got %v", second.calls[0])
	}
}

func TestList_OutsideOriginalInterval(t *testing.T) {
	list := NewList(newTestSphere(core.NewVec3(0, 0, -50), 1))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := list.Hit(ray, core.NewInterval(0.001, 10)); isHit {
		t.Error("Expected miss for sphere beyond the interval")
	}
}
