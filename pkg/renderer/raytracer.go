package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
)

// RenderConfig contains the execution settings of a render
type RenderConfig struct {
	NumWorkers int   // Number of parallel workers (0 = auto-detect from CPU count)
	Seed       int64 // Run seed; row r draws from a generator seeded with Seed+r

	// NewSampler builds the private sampler of a row. Defaults to a seeded math/rand generator.
	NewSampler func(seed int64) core.Sampler
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: 0,
		Seed:       42,
		NewSampler: newSeededSampler,
	}
}

func newSeededSampler(seed int64) core.Sampler {
	return core.NewSeededSampler(seed)
}

// Raytracer renders a world through a camera, one row per task
type Raytracer struct {
	camera     *Camera
	world      geometry.Shape
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. The world must not be modified while rendering.
func NewRaytracer(camera *Camera, world geometry.Shape, config RenderConfig, logger core.Logger) *Raytracer {
	if config.NewSampler == nil {
		config.NewSampler = newSeededSampler
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integrator.NewPathTracingIntegrator(),
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integrator integrator.Integrator) {
	rt.integrator = integrator
}

// Camera returns the camera used for rendering
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// RenderPixel traces samples-per-pixel rays through pixel (i, j) and returns
// the averaged linear color
func (rt *Raytracer) RenderPixel(i, j int, sampler core.Sampler) core.Vec3 {
	pixelColor := core.Vec3{}
	for s := 0; s < rt.camera.SamplesPerPixel(); s++ {
		ray := rt.camera.GetRay(i, j, sampler)
		pixelColor = pixelColor.Add(rt.integrator.RayColor(ray, rt.world, sampler, rt.camera.MaxDepth()))
	}
	return pixelColor.Multiply(rt.camera.PixelSamplesScale())
}

// RenderRow renders image row j left to right into width*3 RGB bytes
func (rt *Raytracer) RenderRow(j int, sampler core.Sampler) ([]byte, RenderStats) {
	width := rt.camera.ImageWidth()
	pixels := make([]byte, 0, width*3)

	for i := 0; i < width; i++ {
		r, g, b := ToneMap(rt.RenderPixel(i, j, sampler))
		pixels = append(pixels, r, g, b)
	}

	return pixels, RenderStats{
		TotalPixels:  width,
		TotalSamples: width * rt.camera.SamplesPerPixel(),
	}
}

// Render traces every row in parallel and returns the image as a row-major
// RGB buffer, top row first. The output depends only on the scene, camera
// and seed, never on the number of workers.
func (rt *Raytracer) Render(ctx context.Context) ([]byte, RenderStats, error) {
	if err := rt.camera.Params().Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	rowBytes := width * 3

	pool := NewWorkerPool(rt, height, rt.config.NumWorkers)
	stats := RenderStats{Width: width, Height: height, NumWorkers: pool.GetNumWorkers()}

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, max depth %d (using %d workers)...\n",
		width, height, rt.camera.SamplesPerPixel(), rt.camera.MaxDepth(), pool.GetNumWorkers())

	start := time.Now()
	pool.Start(ctx)
	for row := 0; row < height; row++ {
		pool.SubmitTask(RowTask{Row: row, Seed: rt.config.Seed + int64(row)})
	}

	pixels := make([]byte, rowBytes*height)
	var firstErr error
	lastDecile := 0
	for done := 1; done <= height; done++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}

		copy(pixels[result.Row*rowBytes:(result.Row+1)*rowBytes], result.Pixels)
		stats.add(result.Stats)

		if decile := done * 10 / height; decile > lastDecile {
			lastDecile = decile
			rt.logger.Printf("Rows completed: %d/%d (%d%%)\n", done, height, decile*10)
		}
	}
	pool.Stop()
	stats.finish(time.Since(start))

	if firstErr != nil {
		return nil, stats, fmt.Errorf("render interrupted: %w", firstErr)
	}

	rt.logger.Printf("Render completed in %v (%.0f samples/sec)\n",
		stats.RenderTime.Round(time.Millisecond), stats.SamplesPerSecond())

	return pixels, stats, nil
}

// RenderTo renders the image and hands it to sink exactly once
func (rt *Raytracer) RenderTo(ctx context.Context, sink ImageSink) (RenderStats, error) {
	pixels, stats, err := rt.Render(ctx)
	if err != nil {
		return stats, err
	}

	if err := sink.WriteImage(ctx, pixels, stats.Width, stats.Height); err != nil {
		return stats, fmt.Errorf("failed to write image: %w", err)
	}
	return stats, nil
}
