package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// List is an ordered collection of shapes that is itself a Shape.
// Build it fully before rendering; it must not change while a render is running.
type List struct {
	shapes []Shape
}

// NewList creates a list holding the given shapes in order
func NewList(shapes ...Shape) *List {
	return &List{shapes: append([]Shape(nil), shapes...)}
}

// Add appends a shape
func (l *List) Add(shape Shape) {
	l.shapes = append(l.shapes, shape)
}

// Len returns the number of shapes
func (l *List) Len() int {
	return len(l.shapes)
}

// Shapes returns the shapes in insertion order
func (l *List) Shapes() []Shape {
	return l.shapes
}

// Hit returns the closest intersection among all shapes within the interval
func (l *List) Hit(ray core.Ray, interval core.Interval) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := interval.Max
	hitAnything := false

	for _, shape := range l.shapes {
		if hit, isHit := shape.Hit(ray, interval.WithMax(closestSoFar)); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
