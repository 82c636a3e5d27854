package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ErrInvalidCamera is wrapped by every CameraParams validation failure
var ErrInvalidCamera = errors.New("invalid camera parameters")

// CameraParams contains the framing and sampling configuration of a camera
type CameraParams struct {
	AspectRatio     float64   `json:"aspectRatio"`     // Width / height
	ImageWidth      int       `json:"imageWidth"`      // Image width in pixels
	SamplesPerPixel int       `json:"samplesPerPixel"` // Rays per pixel
	MaxDepth        int       `json:"maxDepth"`        // Maximum ray bounce depth
	VerticalFOV     float64   `json:"verticalFov"`     // Vertical field of view in degrees
	LookFrom        core.Vec3 `json:"lookFrom"`        // Camera position
	LookAt          core.Vec3 `json:"lookAt"`          // Point the camera looks at
	ViewUp          core.Vec3 `json:"viewUp"`          // Camera-relative up direction
	DefocusAngle    float64   `json:"defocusAngle"`    // Aperture cone angle in degrees (0 = pinhole)
	FocusDistance   float64   `json:"focusDistance"`   // Distance to the plane of perfect focus
}

// DefaultCameraParams returns a small pinhole camera looking down -Z
func DefaultCameraParams() CameraParams {
	return CameraParams{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VerticalFOV:     90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		ViewUp:          core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDistance:   1,
	}
}

// Validate reports parameters that would produce a degenerate camera
func (p CameraParams) Validate() error {
	switch {
	case p.ImageWidth < 1:
		return fmt.Errorf("%w: image width must be at least 1, got %d", ErrInvalidCamera, p.ImageWidth)
	case p.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples per pixel must be at least 1, got %d", ErrInvalidCamera, p.SamplesPerPixel)
	case p.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidCamera, p.MaxDepth)
	case !(p.AspectRatio > 0) || math.IsInf(p.AspectRatio, 1):
		return fmt.Errorf("%w: aspect ratio must be positive, got %f", ErrInvalidCamera, p.AspectRatio)
	case !(p.VerticalFOV > 0 && p.VerticalFOV < 180):
		return fmt.Errorf("%w: vertical field of view must be in (0, 180), got %f", ErrInvalidCamera, p.VerticalFOV)
	case !(p.FocusDistance > 0):
		return fmt.Errorf("%w: focus distance must be positive, got %f", ErrInvalidCamera, p.FocusDistance)
	case p.DefocusAngle < 0 || p.DefocusAngle >= 180:
		return fmt.Errorf("%w: defocus angle must be in [0, 180), got %f", ErrInvalidCamera, p.DefocusAngle)
	case p.LookFrom == p.LookAt:
		return fmt.Errorf("%w: lookFrom and lookAt are the same point %v", ErrInvalidCamera, p.LookFrom)
	case p.ViewUp.Cross(p.LookFrom.Subtract(p.LookAt)).NearZero():
		return fmt.Errorf("%w: viewUp %v is parallel to the view direction", ErrInvalidCamera, p.ViewUp)
	}
	return nil
}

// Camera generates rays for rendering. It is immutable after NewCamera and
// safe to share between goroutines.
type Camera struct {
	params            CameraParams
	imageWidth        int
	imageHeight       int
	center            core.Vec3 // Camera center
	pixel00Loc        core.Vec3 // Location of pixel 0, 0
	pixelDeltaU       core.Vec3 // Offset to pixel to the right
	pixelDeltaV       core.Vec3 // Offset to pixel below
	u, v, w           core.Vec3 // Camera frame basis vectors
	pixelSamplesScale float64   // Color scale factor for a sum of pixel samples
	defocusDiskU      core.Vec3 // Defocus disk horizontal radius
	defocusDiskV      core.Vec3 // Defocus disk vertical radius
}

// NewCamera derives the viewport geometry from the camera parameters.
// Call CameraParams.Validate first when the parameters come from user input.
func NewCamera(params CameraParams) *Camera {
	// Calculate the image height, and ensure that it's at least 1
	imageHeight := int(math.Floor(float64(params.ImageWidth) / params.AspectRatio))
	if imageHeight < 1 {
		imageHeight = 1
	}

	center := params.LookFrom

	// Determine viewport dimensions
	theta := degreesToRadians(params.VerticalFOV)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * params.FocusDistance
	viewportWidth := viewportHeight * (float64(params.ImageWidth) / float64(imageHeight))

	// Calculate the u,v,w unit basis vectors for the camera coordinate frame
	w := params.LookFrom.Subtract(params.LookAt).Normalize()
	u := params.ViewUp.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	// Horizontal and vertical delta vectors from pixel to pixel
	pixelDeltaU := viewportU.Divide(float64(params.ImageWidth))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	// Location of the upper left pixel
	viewportUpperLeft := center.
		Subtract(w.Multiply(params.FocusDistance)).
		Subtract(viewportU.Add(viewportV).Multiply(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	// Camera defocus disk basis vectors
	defocusRadius := params.FocusDistance * math.Tan(degreesToRadians(params.DefocusAngle/2))

	return &Camera{
		params:            params,
		imageWidth:        params.ImageWidth,
		imageHeight:       imageHeight,
		center:            center,
		pixel00Loc:        pixel00Loc,
		pixelDeltaU:       pixelDeltaU,
		pixelDeltaV:       pixelDeltaV,
		u:                 u,
		v:                 v,
		w:                 w,
		pixelSamplesScale: 1.0 / float64(params.SamplesPerPixel),
		defocusDiskU:      u.Multiply(defocusRadius),
		defocusDiskV:      v.Multiply(defocusRadius),
	}
}

// GetRay returns a ray from the defocus disk toward a randomly jittered point
// inside pixel (i, j), where j counts rows from the top
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offsetX := sampler.Get1D() - 0.5
	offsetY := sampler.Get1D() - 0.5
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offsetX)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offsetY))

	rayOrigin := c.center
	if c.params.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// defocusDiskSample returns a random point on the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// Params returns the parameters the camera was built from
func (c *Camera) Params() CameraParams { return c.params }

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int { return c.imageWidth }

// ImageHeight returns the derived image height in pixels (at least 1)
func (c *Camera) ImageHeight() int { return c.imageHeight }

// SamplesPerPixel returns the number of rays traced per pixel
func (c *Camera) SamplesPerPixel() int { return c.params.SamplesPerPixel }

// MaxDepth returns the bounce limit for every ray
func (c *Camera) MaxDepth() int { return c.params.MaxDepth }

// PixelSamplesScale returns 1 / samples per pixel
func (c *Camera) PixelSamplesScale() float64 { return c.pixelSamplesScale }

// Center returns the camera position
func (c *Camera) Center() core.Vec3 { return c.center }

// GetCameraForward returns the viewing direction
func (c *Camera) GetCameraForward() core.Vec3 { return c.w.Negate() }

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
