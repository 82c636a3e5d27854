package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Parameter limits shared by the render and inspect endpoints
const (
	minWidth, maxWidth         = 16, 2000
	minSamples, maxSamples     = 1, 10000
	minDepth, maxDepth         = 0, 500
	minThumbnail, maxThumbnail = 0, 1000
)

// Server handles web requests for the sphere raytracer
type Server struct {
	port    int
	echo    *echo.Echo
	console *Console
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{
		port:    port,
		echo:    echo.New(),
		console: NewConsole(200),
	}
	s.echo.HideBanner = true
	s.echo.Use(corsMiddleware)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/scene-config", s.handleSceneConfig)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)
	s.echo.GET("/api/console", s.handleConsole)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for running renders
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// errorResponse is the JSON body of every failed API call
type errorResponse struct {
	Error string `json:"error"`
}

func badRequest(c echo.Context, format string, args ...interface{}) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf(format, args...)})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and file scenes
func (s *Server) handleScenes(c echo.Context) error {
	scenes, err := scene.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"scenes": scenes})
}

// SceneConfigResponse describes a scene's camera defaults and the accepted parameter ranges
type SceneConfigResponse struct {
	Scene    string                `json:"scene"`
	Objects  int                   `json:"objects"`
	Defaults renderer.CameraParams `json:"defaults"`
	Limits   map[string][2]int     `json:"limits"`
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	query := c.QueryParams()
	name := queryString(query, "scene", "default")
	seed, err := parseInt64Param(query, "seed", 42)
	if err != nil {
		return badRequest(c, "%v", err)
	}

	sceneObj, err := scene.Create(name, seed)
	if err != nil {
		return badRequest(c, "%v", err)
	}

	return c.JSON(http.StatusOK, SceneConfigResponse{
		Scene:    name,
		Objects:  sceneObj.GetPrimitiveCount(),
		Defaults: sceneObj.Camera,
		Limits: map[string][2]int{
			"width":     {minWidth, maxWidth},
			"samples":   {minSamples, maxSamples},
			"depth":     {minDepth, maxDepth},
			"thumbnail": {minThumbnail, maxThumbnail},
		},
	})
}

// handleConsole returns the most recent render log lines
func (s *Server) handleConsole(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"messages": s.console.Messages()})
}

func queryString(values url.Values, key, defaultValue string) string {
	if value := values.Get(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseInt64Param parses an unbounded 64-bit integer parameter
func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
