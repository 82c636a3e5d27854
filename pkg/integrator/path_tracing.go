package integrator

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum hit distance; it keeps scattered rays from
// re-hitting the surface they start on
const ShadowAcneEpsilon = 0.001

// Sky is a vertical gradient used as the only light source
type Sky struct {
	Bottom core.Vec3 // color for rays pointing straight down
	Top    core.Vec3 // color for rays pointing straight up
}

// DefaultSky blends white at the horizon-down end into light blue overhead
func DefaultSky() Sky {
	return Sky{
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
		Top:    core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the gradient color based on ray direction
func (s Sky) Color(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return s.Bottom.Lerp(s.Top, t)
}

// PathTracingIntegrator implements unidirectional path tracing with a sky light
type PathTracingIntegrator struct {
	sky Sky
}

// NewPathTracingIntegrator creates a new path tracing integrator lit by the default sky
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{sky: DefaultSky()}
}

// NewPathTracingIntegratorWithSky creates a path tracing integrator with a custom sky
func NewPathTracingIntegratorWithSky(sky Sky) *PathTracingIntegrator {
	return &PathTracingIntegrator{sky: sky}
}

// Sky returns the background gradient
func (pt *PathTracingIntegrator) Sky() Sky {
	return pt.sky
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, core.NewInterval(ShadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return pt.sky.Color(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, world, sampler, depth-1))
}
