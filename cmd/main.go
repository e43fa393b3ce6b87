package main

import (
	"context"
	"flag"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/config"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/internal/util"
	"github.com/brettbedarf/memfs/observers"
	"github.com/brettbedarf/memfs/requests"
	"github.com/brettbedarf/memfs/server"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		verbose    int
		nodesDef   string
		metrics    string
		umount     bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config override file (.yaml, .yml or .json)")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&nodesDef, "nodes", "", "Path to nodes manifest file (.json, .yaml or .yml)")
	flag.StringVar(&nodesDef, "n", "", "--nodes (shorthand)")
	flag.StringVar(&metrics, "metrics", "", "Address to serve Prometheus metrics on, e.g. :9464 (disabled when empty)")
	flag.BoolVar(&umount, "umount", false,
		"Unmount the fs first if needed before mounting again. Useful for debuggers that don't exit properly.")
	flag.BoolVar(&umount, "u", false, "--umount (shorthand)")
	flag.IntVar(&verbose, "verbose", config.InfoVerbose, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", config.InfoVerbose, "--verbose (shorthand)")
	flag.Parse()

	// Load config; an explicit verbosity flag wins over the file
	override := &config.ConfigOverride{}
	if configPath != "" {
		fileOverride, err := config.LoadConfigOverrideFile(configPath)
		if err != nil {
			util.InitializeLogger(config.VerboseToLogLevel(verbose))
			logger := util.GetLogger("main")
			logger.Fatal().Err(err).Str("config", configPath).Msg("Failed to load config file")
		}
		override = fileOverride
	}
	if flagSet("verbose", "v") || override.LogLvl == nil {
		override.LogLvl = &verbose
	}
	if metrics != "" {
		override.MetricsAddr = &metrics
	}
	cfg := config.NewConfig(override)

	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")

	mnt := flag.Arg(0)
	logger.Info().Int("verbose", verbose).Str("nodes", nodesDef).Str("mnt", mnt).Msg("memfs server initializing")
	// Check if mount point is provided
	if mnt == "" {
		logger.Fatal().Msg("Mount point not specified; it must be passed as the argument")
	}
	// Try unmount if requested
	if umount { // send cli command
		cmd := exec.Command("fusermount", "-u", mnt)
		// we ignore error here if not already mounted
		cmd.Run() // nolint:errcheck
	}

	counter := observers.NewCounter()
	watchers := []memfs.Observer{observers.NewLog("Operations"), counter}

	// Metrics
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		prom, err := observers.NewPrometheus(reg)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to register metrics")
		}
		ms, err := server.ListenMetrics(cfg.MetricsAddr, reg)
		if err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.MetricsAddr).Msg("Failed to serve metrics")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			ms.Close(ctx) // nolint:errcheck
		}()
		watchers = append(watchers, prom)
	}

	fs := server.New(cfg, filesystem.WithObserver(observers.Multi(watchers...)))

	// Seed nodes
	if nodesDef != "" {
		manifest, err := requests.LoadManifest(nodesDef)
		if err != nil {
			logger.Fatal().Err(err).Str("nodes", nodesDef).Msg("Failed to load nodes manifest")
		}
		if _, err := manifest.Apply(fs.FileSystem); err != nil {
			logger.Warn().Err(err).Msg("Some nodes could not be added")
		}
	} else {
		logger.Warn().Msg("No nodes manifest provided")
	}

	// Serve
	if err := fs.Serve(mnt); err != nil {
		logger.Fatal().Err(err).Msg("Failed to mount filesystem")
	}

	// Setup signal handling for graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	logger.Info().Str("mountpoint", mnt).Msg("Filesystem mounted successfully")

	// Wait for termination signal
	sig := <-signalChan
	logger.Info().Str("signal", sig.String()).Msg("Received signal, unmounting filesystem")

	// Unmount the filesystem
	if err := fs.Unmount(); err != nil {
		logger.Error().Err(err).Msg("Failed to unmount filesystem")
	} else {
		logger.Info().Interface("operations", counter.Snapshot()).Msg("Filesystem unmounted successfully")
	}
}

// flagSet reports whether any of the named flags was given explicitly.
func flagSet(names ...string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}
