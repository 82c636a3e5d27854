package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	ObjectIndex  int                    `json:"objectIndex"`
	Point        core.Vec3              `json:"point"`
	Normal       core.Vec3              `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// extractMaterialInfo describes a material for the inspector
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindLambertian, material.KindMetal:
		properties["albedo"] = mat.Albedo
		properties["color"] = fmt.Sprintf("#%02x%02x%02x",
			int(mat.Albedo.X*255), int(mat.Albedo.Y*255), int(mat.Albedo.Z*255))
		if mat.Kind == material.KindMetal {
			properties["fuzz"] = mat.Fuzz
		}
	case material.KindDielectric:
		properties["refractionIndex"] = mat.RefractionIndex
		properties["color"] = "#ffffff" // Clear glass
	}

	return mat.Kind.String(), properties
}

// extractGeometryInfo describes a shape for the inspector
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = geom.Center
		properties["radius"] = geom.Radius
		return "sphere", properties
	default:
		return "unknown", properties
	}
}

// InspectResult contains the hit record and the object that produced it
type InspectResult struct {
	Hit       bool
	HitRecord material.HitRecord
	Shape     geometry.Shape
	Index     int
}

// inspectPixel casts the zero-jitter ray through a pixel and returns the first object hit
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, pixelX, pixelY int) InspectResult {
	ray := camera.GetRay(pixelX, pixelY, core.ConstantSampler(0.5))

	interval := core.NewInterval(integrator.ShadowAcneEpsilon, math.Inf(1))
	hit, isHit := sceneObj.World.Hit(ray, interval)
	if !isHit {
		return InspectResult{Hit: false, Index: -1}
	}

	// The list does not report which shape was hit; find the one at the same distance
	for i, shape := range sceneObj.World.Shapes() {
		if shapeHit, ok := shape.Hit(ray, interval); ok && shapeHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Shape: shape, Index: i}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit, Index: -1}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	query := c.QueryParams()

	req, err := parseRenderRequest(query)
	if err != nil {
		return badRequest(c, "Invalid scene parameters: %v", err)
	}

	sceneObj, err := scene.Create(req.Scene, req.Seed)
	if err != nil {
		return badRequest(c, "%v", err)
	}
	sceneObj.Camera.ImageWidth = req.Width
	camera, err := sceneObj.NewCamera()
	if err != nil {
		return badRequest(c, "%v", err)
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		return badRequest(c, "Invalid x coordinate")
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		return badRequest(c, "Invalid y coordinate")
	}
	if pixelX < 0 || pixelX >= camera.ImageWidth() || pixelY < 0 || pixelY >= camera.ImageHeight() {
		return badRequest(c, "Pixel coordinates out of bounds")
	}

	result := inspectPixel(sceneObj, camera, pixelX, pixelY)
	if !result.Hit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false, ObjectIndex: -1})
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		ObjectIndex:  result.Index,
		Point:        result.HitRecord.Point,
		Normal:       result.HitRecord.Normal,
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
