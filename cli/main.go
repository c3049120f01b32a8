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
	"github.com/LarsNiebuhr/colourspace/gamut"
	"github.com/LarsNiebuhr/colourspace/internal/cloudio"
)

const validModes = "build, inside, clip, obj"

func main() {
	configPath := flag.String("config", "", "path to pipeline configuration JSON file (optional)")
	cloudPath := flag.String("cloud", "", "path to the gamut point cloud JSON file")
	dataPath := flag.String("data", "", "path to the colour data JSON file (inside and clip modes)")
	outPath := flag.String("out", "", "output path (clip and obj modes)")
	mode := flag.String("mode", "", "mode to run: "+validModes)
	flag.Parse()

	zl, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "initializing logger:", err)
		os.Exit(1)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	if *mode == "" {
		logger.Fatal("-mode flag is required; valid modes: " + validModes)
	}
	if *cloudPath == "" {
		logger.Fatal("-cloud flag is required")
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

	logger.Infof("=== Running mode: %s ===", *mode)

	switch *mode {
	case "build":
		_, err = buildHull(mapper, *cloudPath)
	case "inside":
		err = runInside(mapper, *cloudPath, *dataPath, logger)
	case "clip":
		err = runClip(ctx, mapper, *cloudPath, *dataPath, *outPath)
	case "obj":
		err = runOBJ(mapper, *cloudPath, *outPath, logger)
	default:
		logger.Fatalf("unknown mode %q; valid modes: %s", *mode, validModes)
	}
	if err != nil {
		logger.Fatal(err)
	}
	logger.Infof("Mode %s completed successfully", *mode)
}

func buildHull(mapper *colourspace.Mapper, cloudPath string) (*gamut.Gamut, error) {
	pts, err := mapper.LoadPoints(cloudPath)
	if err != nil {
		return nil, err
	}
	return mapper.BuildGamut(pts)
}

func runInside(mapper *colourspace.Mapper, cloudPath, dataPath string, logger *zap.SugaredLogger) error {
	if dataPath == "" {
		return fmt.Errorf("-data flag is required for inside mode")
	}
	g, err := buildHull(mapper, cloudPath)
	if err != nil {
		return err
	}
	data, err := mapper.LoadPoints(dataPath)
	if err != nil {
		return err
	}
	mask, err := mapper.InsideMask(g, data)
	if err != nil {
		return err
	}

	inside := 0
	for _, in := range mask.Flat() {
		if in {
			inside++
		}
	}
	logger.Infof("%d of %d points inside the gamut", inside, mask.Len())
	return nil
}

func runClip(ctx context.Context, mapper *colourspace.Mapper, cloudPath, dataPath, outPath string) error {
	if dataPath == "" {
		return fmt.Errorf("-data flag is required for clip mode")
	}
	if outPath == "" {
		return fmt.Errorf("-out flag is required for clip mode")
	}
	return mapper.Run(ctx, cloudPath, dataPath, outPath)
}

func runOBJ(mapper *colourspace.Mapper, cloudPath, outPath string, logger *zap.SugaredLogger) error {
	if outPath == "" {
		return fmt.Errorf("-out flag is required for obj mode")
	}
	g, err := buildHull(mapper, cloudPath)
	if err != nil {
		return err
	}

	verts := g.Vertices()
	coords := g.Coordinates(verts)
	lookup := make(map[int]int, len(verts))
	for pos, idx := range verts {
		lookup[idx] = pos
	}
	faces := make([][3]int, len(g.Simplices()))
	for i, s := range g.Simplices() {
		faces[i] = [3]int{lookup[s[0]], lookup[s[1]], lookup[s[2]]}
	}

	if err := cloudio.WriteOBJ(outPath, coords, faces); err != nil {
		return err
	}
	logger.Infof("Wrote %d vertices and %d faces to %s", len(coords), len(faces), outPath)
	return nil
}
