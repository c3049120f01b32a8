package colourspace

import (
	"context"
	"fmt"

	"github.com/LarsNiebuhr/colourspace/gamut"
	"github.com/LarsNiebuhr/colourspace/space"
)

// Run executes the gamut mapping pipeline: load the gamut and target
// clouds, build the hull, and clip the target to the hull boundary.
func (m *Mapper) Run(ctx context.Context, gamutPath, targetPath, outPath string) error {
	m.logger.Info("Starting gamut mapping")

	var (
		hullData *space.Points
		target   *space.Points
		g        *gamut.Gamut
		clipped  *space.Points
	)

	steps := []struct {
		name string
		fn   func() error
	}{
		{"LoadClouds", func() error {
			var err error
			if hullData, err = m.LoadPoints(gamutPath); err != nil {
				return err
			}
			target, err = m.LoadPoints(targetPath)
			return err
		}},
		{"BuildHull", func() error {
			var err error
			g, err = m.BuildGamut(hullData)
			return err
		}},
		{"Clip", func() error {
			var err error
			clipped, err = m.Clip(g, target)
			return err
		}},
		{"Save", func() error {
			return m.SavePoints(outPath, clipped, m.cfg.Hull.Space.Type)
		}},
	}

	for _, step := range steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		m.logger.Infof("=== %s ===", step.name)
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	m.logger.Info("Gamut mapping finished")
	return nil
}
