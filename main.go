package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/imageio"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	Scene     string
	SceneFile string
	Width     int
	Samples   int
	Depth     int
	Seed      int64
	Workers   int
	Output    string
	Thumbnail uint
	Upload    bool
	EnvFile   string
	List      bool
	Help      bool
}

func parseFlags(args []string, output io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.Scene, "scene", "cover", "Built-in scene name or file:<name> from the scenes directory")
	fs.StringVar(&opts.SceneFile, "scene-file", "", "Path to a JSON scene file (overrides -scene)")
	fs.IntVar(&opts.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.Depth, "depth", -1, "Maximum ray bounce depth (-1 = scene default)")
	fs.Int64Var(&opts.Seed, "seed", 42, "Seed for scene layout and sampling")
	fs.IntVar(&opts.Workers, "workers", 0, "Number of parallel workers (0 = logical CPU count)")
	fs.StringVar(&opts.Output, "output", "", "Output image path (.png, .jpg, .gif, .tif, .bmp); default output/<scene>/render_<timestamp>.png")
	fs.UintVar(&opts.Thumbnail, "thumbnail", 0, "Also write a thumbnail with this maximum side length")
	fs.BoolVar(&opts.Upload, "upload", false, "Also upload the image to S3 (configured by S3_* environment variables)")
	fs.StringVar(&opts.EnvFile, "env", ".env", "Environment file read before S3 upload")
	fs.BoolVar(&opts.List, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	err := fs.Parse(args)
	return opts, fs, err
}

// createScene loads the scene and applies command line overrides
func createScene(opts options) (*scene.Scene, error) {
	var s *scene.Scene
	var err error
	if opts.SceneFile != "" {
		s, err = scene.LoadFile(opts.SceneFile)
	} else {
		s, err = scene.Create(opts.Scene, opts.Seed)
	}
	if err != nil {
		return nil, err
	}

	if opts.Width > 0 {
		s.Camera.ImageWidth = opts.Width
	}
	if opts.Samples > 0 {
		s.Camera.SamplesPerPixel = opts.Samples
	}
	if opts.Depth >= 0 {
		s.Camera.MaxDepth = opts.Depth
	}

	if err := s.Camera.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// createOutputPath returns output/<scene>/render_<timestamp>.png
func createOutputPath(sceneName string, now time.Time) string {
	dir := strings.NewReplacer("file:", "", "/", "_", "\\", "_").Replace(sceneName)
	if dir == "" {
		dir = "scene"
	}
	return filepath.Join("output", dir, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// thumbnailPath inserts _thumb before the extension
func thumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}

// createSink assembles the file, thumbnail and upload outputs
func createSink(opts options, outputPath string, logger core.Logger) (renderer.ImageSink, error) {
	fileSink, err := imageio.NewFileSink(outputPath)
	if err != nil {
		return nil, err
	}
	sinks := imageio.MultiSink{fileSink}

	if opts.Thumbnail > 0 {
		thumbSink, err := imageio.NewFileSink(thumbnailPath(outputPath))
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, imageio.NewThumbnailSink(opts.Thumbnail, thumbSink))
	}

	if opts.Upload {
		cfg, err := imageio.LoadS3ConfigFromEnv(opts.EnvFile)
		if err != nil {
			return nil, err
		}
		client, err := imageio.NewS3Client(cfg)
		if err != nil {
			return nil, err
		}
		s3Sink, err := imageio.NewS3Sink(client, cfg, filepath.Base(outputPath), logger)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s3Sink)
	}

	return sinks, nil
}

// defaultWorkers returns the logical CPU count, or 0 to let the pool decide
func defaultWorkers(logger core.Logger) int {
	count, err := cpu.Counts(true)
	if err != nil || count < 1 {
		logger.Printf("Could not read CPU count (%v), using runtime default\n", err)
		return 0
	}
	return count
}

// checkMemory warns when the output buffer alone approaches the available memory
func checkMemory(params renderer.CameraParams, logger core.Logger) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return
	}

	camera := renderer.NewCamera(params)
	needed := uint64(camera.ImageWidth()) * uint64(camera.ImageHeight()) * 3 * 2
	if needed > vm.Available/2 {
		logger.Printf("Warning: a %dx%d image needs about %d MB, only %d MB available\n",
			camera.ImageWidth(), camera.ImageHeight(), needed>>20, vm.Available>>20)
	}
}

func printScenes(w io.Writer) error {
	scenes, err := scene.List()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scenes {
		fmt.Fprintf(w, "  %-20s %s\n", info.ID, info.Description)
	}
	return nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, fs, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	if opts.Help {
		fmt.Fprintln(stdout, "Sphere Raytracer")
		fmt.Fprintln(stdout, "Usage: raytracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		return printScenes(stdout)
	}
	if opts.List {
		return printScenes(stdout)
	}

	logger := core.NewDefaultLogger()

	selectedScene, err := createScene(opts)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	logger.Printf("Using %s scene (%d objects)...\n", selectedScene.Name, selectedScene.GetPrimitiveCount())

	outputPath := opts.Output
	if outputPath == "" {
		outputPath = createOutputPath(selectedScene.Name, time.Now())
	}
	sink, err := createSink(opts, outputPath, logger)
	if err != nil {
		return fmt.Errorf("failed to configure output: %w", err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers(logger)
	}
	checkMemory(selectedScene.Camera, logger)

	config := renderer.DefaultRenderConfig()
	config.Seed = opts.Seed
	config.NumWorkers = workers

	raytracer := renderer.NewRaytracer(renderer.NewCamera(selectedScene.Camera), selectedScene.World, config, logger)
	stats, err := raytracer.RenderTo(ctx, sink)
	if err != nil {
		return err
	}

	logger.Printf("Samples per pixel: %.1f, %d pixels\n", stats.AverageSamples, stats.TotalPixels)
	logger.Printf("Render saved as %s\n", outputPath)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
