package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/LarsNiebuhr/colourspace"
)

func main() {
	configPath := flag.String("config", "", "path to pipeline configuration JSON file (optional)")
	gamutPath := flag.String("gamut", "", "path to the gamut point cloud JSON file")
	targetPath := flag.String("target", "", "path to the colour data JSON file to clip")
	outPath := flag.String("out", "", "path for the clipped output file")
	flag.Parse()

	zl, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "initializing logger:", err)
		os.Exit(1)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	if *gamutPath == "" || *targetPath == "" || *outPath == "" {
		logger.Fatal("-gamut, -target and -out flags are required")
	}

	cfg := colourspace.DefaultConfig()
	if *configPath != "" {
		loaded, err := colourspace.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal(err)
		}
		cfg = *loaded
	}

	mapper, err := colourspace.NewMapper(&cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := mapper.Run(ctx, *gamutPath, *targetPath, *outPath); err != nil {
		logger.Fatal(err)
	}
}
