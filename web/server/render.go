package server

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/imageio"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string // Scene name as accepted by scene.Create
	Width     int    // Image width; height follows the scene aspect ratio
	Samples   int    // Samples per pixel
	Depth     int    // Maximum bounce depth, -1 keeps the scene default
	Seed      int64  // Scene layout and sampling seed
	Thumbnail int    // Maximum side of the returned image, 0 for full size
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: queryString(values, "scene", "default")}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 50, minSamples, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", -1, minDepth, maxDepth); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(values, "seed", 42); err != nil {
		return nil, err
	}
	if req.Thumbnail, err = parseIntParam(values, "thumbnail", 0, minThumbnail, maxThumbnail); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width > 800 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// setupRenderingPipeline creates the scene and a raytracer configured by the request
func setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*scene.Scene, *renderer.Raytracer, error) {
	sceneObj, err := scene.Create(req.Scene, req.Seed)
	if err != nil {
		return nil, nil, err
	}

	sceneObj.Camera.ImageWidth = req.Width
	sceneObj.Camera.SamplesPerPixel = req.Samples
	if req.Depth >= 0 {
		sceneObj.Camera.MaxDepth = req.Depth
	}

	camera, err := sceneObj.NewCamera()
	if err != nil {
		return nil, nil, err
	}

	config := renderer.DefaultRenderConfig()
	config.Seed = req.Seed
	return sceneObj, renderer.NewRaytracer(camera, sceneObj.World, config, logger), nil
}

// pngSink encodes the finished image into buf
func pngSink(buf *bytes.Buffer) renderer.ImageSink {
	return renderer.ImageSinkFunc(func(ctx context.Context, pixels []byte, width, height int) error {
		return imageio.EncodePixels(buf, pixels, width, height, imageio.FormatPNG)
	})
}

// handleRender renders the requested scene and responds with a PNG
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return badRequest(c, "Invalid request: %v", err)
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	logger := NewWebLogger(renderID, s.console)

	sceneObj, raytracer, err := setupRenderingPipeline(req, logger)
	if err != nil {
		return badRequest(c, "%v", err)
	}
	logger.Printf("Rendering %s scene (%d objects)\n", sceneObj.Name, sceneObj.GetPrimitiveCount())

	var buf bytes.Buffer
	sink := pngSink(&buf)
	if req.Thumbnail > 0 {
		sink = imageio.NewThumbnailSink(uint(req.Thumbnail), sink)
	}

	// The request context stops the render when the client disconnects
	stats, err := raytracer.RenderTo(c.Request().Context(), sink)
	if err != nil {
		logger.Printf("Render failed: %v\n", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	header := c.Response().Header()
	header.Set("X-Render-Id", renderID)
	header.Set("X-Render-Time-Ms", strconv.FormatInt(stats.RenderTime.Milliseconds(), 10))
	header.Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	return c.Blob(http.StatusOK, imageio.FormatPNG.ContentType(), buf.Bytes())
}
