package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skyline/internal/logger"
	"skyline/pkg/config"
	"skyline/pkg/engine"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

type options struct {
	configPath string
	pngPath    string
	stlPath    string
	statsPath  string
	traversal  string
	metrics    string
	angle      float64
	seed       int64
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&opts.pngPath, "png", "", "Render one frame to this PNG file and exit")
	flag.StringVar(&opts.stlPath, "stl", "", "Export the terrain mesh to this STL file and exit")
	flag.StringVar(&opts.statsPath, "stats", "", "Write frame statistics as JSON to this file")
	flag.StringVar(&opts.traversal, "traversal", "", "Override render.traversal (hierarchical, grid)")
	flag.StringVar(&opts.metrics, "metrics", "", "Serve Prometheus metrics on this address")
	flag.Float64Var(&opts.angle, "angle", 0, "Override camera.angle_degrees")
	flag.Int64Var(&opts.seed, "seed", 0, "Override terrain.seed")
	flag.Parse()

	cfg, loadErr := config.LoadConfig(opts.configPath)
	if loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", loadErr)
		os.Exit(1)
	}
	applyOverrides(cfg, opts)

	log, err := logger.New(cfg.Log.Level, cfg.Log.File, cfg.Log.FileOnly)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if loadErr != nil {
		log.Warnf("Config %s not found, using defaults", opts.configPath)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.ListenAddr, log)
	}

	if opts.pngPath != "" || opts.stlPath != "" || opts.statsPath != "" {
		if err := runHeadless(cfg, opts, log); err != nil {
			log.Fatal(err)
		}
		return
	}

	log.Info("Starting Skyline viewer...")
	viewer, err := engine.NewEngine(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize viewer: %v", err)
	}
	viewer.Run()
}

// applyOverrides copies explicitly set flags over the loaded configuration
func applyOverrides(cfg *config.Config, opts options) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "traversal":
			cfg.Render.Traversal = opts.traversal
		case "metrics":
			cfg.Metrics.Enabled = true
			cfg.Metrics.ListenAddr = opts.metrics
		case "angle":
			cfg.Camera.AngleDegrees = opts.angle
		case "seed":
			cfg.Terrain.Seed = opts.seed
		}
	})
}

// runHeadless renders a single frame or exports the mesh without a window
func runHeadless(cfg *config.Config, opts options, log *logger.Logger) error {
	field, err := engine.BuildField(cfg, cfg.Terrain.Seed, log.Named("terrain"))
	if err != nil {
		return err
	}

	if opts.stlPath != "" {
		if err := engine.ExportSTL(field, opts.stlPath); err != nil {
			return err
		}
		log.Infof("Mesh written to %s", opts.stlPath)
	}

	if opts.pngPath == "" && opts.statsPath == "" {
		return nil
	}

	camera := engine.NewOrbitCamera(cfg.Camera, cfg.Screen)
	renderer, err := engine.NewRenderer(field, camera, cfg.Render, log)
	if err != nil {
		return err
	}

	stats := renderer.Render()
	log.Infof("Rendered %dx%d with %s traversal in %s (%d events, %d pruned)",
		cfg.Screen.Width, cfg.Screen.Height, stats.Traversal, stats.Duration, stats.Events, stats.Pruned)

	if opts.pngPath != "" {
		if err := renderer.Frame().WritePNG(opts.pngPath); err != nil {
			return err
		}
		log.Infof("Frame written to %s", opts.pngPath)
	}
	if opts.statsPath != "" {
		if err := engine.WriteStats(opts.statsPath, stats); err != nil {
			return err
		}
	}
	return nil
}

func serveMetrics(addr string, log *logger.Logger) {
	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())

	log.Infof("Serving metrics on %s", addr)
	if err := http.ListenAndServe(addr, &admin); err != nil {
		log.Errorf("Metrics server stopped: %v", err)
	}
}
