package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"busic/internal/app"
	"busic/internal/audio"
	"busic/internal/config"
	"busic/internal/logging"
)

func main() {
	// Run from the executable's directory so assets resolve in deployed builds.
	// "go run" builds into a temp go-build directory, so leave that alone.
	if execPath, err := os.Executable(); err == nil {
		if dir := filepath.Dir(execPath); !strings.Contains(dir, "go-build") {
			os.Chdir(dir)
		}
	}

	configPath := flag.String("config", config.DefaultPath, "settings file")
	logLevel := flag.String("log-level", "", "log level, overrides the settings file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.L().WithError(err).Fatal("busic: load config")
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		logging.L().WithError(err).Fatal("busic: logging")
	}
	defer logging.ReplaceGlobal(logger)()

	backend := audio.NewRaylibBackend()
	defer backend.Close()

	app.New(cfg, backend).Run()
}
