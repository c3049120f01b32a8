// Package colourspace maps colour data against gamuts computed as convex
// hulls in configurable colour spaces.
package colourspace

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/LarsNiebuhr/colourspace/gamut"
	"github.com/LarsNiebuhr/colourspace/internal/cloudio"
	"github.com/LarsNiebuhr/colourspace/space"
)

// Mapper runs gamut construction and mapping according to its
// configuration.
type Mapper struct {
	cfg    Config
	logger *zap.SugaredLogger
	sp     space.Space
}

// NewMapper creates a Mapper. A nil cfg uses DefaultConfig, a nil logger
// discards all output.
func NewMapper(cfg *Config, logger *zap.SugaredLogger) (*Mapper, error) {
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	sp, err := cfg.Hull.Space.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolving hull space: %w", err)
	}
	return &Mapper{cfg: *cfg, logger: logger, sp: sp}, nil
}

// Space returns the colour space hulls are computed in.
func (m *Mapper) Space() space.Space { return m.sp }

// BuildGamut computes the gamut of the colour data in the configured hull
// space.
func (m *Mapper) BuildGamut(data *space.Points) (*gamut.Gamut, error) {
	opts := &gamut.Options{
		Gamma:  m.cfg.Hull.Gamma,
		Center: m.cfg.Hull.Center,
	}
	g, err := gamut.New(m.sp, data, opts)
	if err != nil {
		return nil, fmt.Errorf("building gamut: %w", err)
	}
	m.logger.Infof("Hull built: %d vertices, %d facets",
		len(g.Vertices()), len(g.Simplices()))
	return g, nil
}

// InsideMask tests the colour data for membership in the gamut using the
// configured number of workers.
func (m *Mapper) InsideMask(g *gamut.Gamut, data *space.Points) (*gamut.Mask, error) {
	mask, err := g.IsInsideParallel(m.sp, data, m.cfg.Query.Workers)
	if err != nil {
		return nil, fmt.Errorf("testing membership: %w", err)
	}
	return mask, nil
}

// Clip maps every point of the colour data outside the gamut onto the
// hull boundary. The result is expressed in the configured hull space.
func (m *Mapper) Clip(g *gamut.Gamut, data *space.Points) (*space.Points, error) {
	mask, err := m.InsideMask(g, data)
	if err != nil {
		return nil, err
	}
	outside := 0
	for _, in := range mask.Flat() {
		if !in {
			outside++
		}
	}
	m.logger.Infof("Clipping %d of %d points to the hull boundary",
		outside, mask.Len())

	clipped, err := g.Clip(m.sp, data)
	if err != nil {
		return nil, fmt.Errorf("clipping colour data: %w", err)
	}
	return clipped, nil
}

// LoadPoints reads a point cloud file and wraps it as colour data in the
// space the file names.
func (m *Mapper) LoadPoints(path string) (*space.Points, error) {
	f, err := cloudio.Load(path)
	if err != nil {
		return nil, err
	}
	sp, err := ResolveSpace(f.Space)
	if err != nil {
		return nil, fmt.Errorf("point cloud file %s: %w", path, err)
	}
	pts, err := space.NewPoints(sp, f.Shape, f.Values)
	if err != nil {
		return nil, fmt.Errorf("point cloud file %s: %w", path, err)
	}
	m.logger.Infof("Loaded %d points from %s in space %q", pts.Len(), path, f.Space)
	return pts, nil
}

// SavePoints writes colour data as a point cloud file under the given
// space name.
func (m *Mapper) SavePoints(path string, pts *space.Points, spaceName string) error {
	f := &cloudio.File{
		Space:  spaceName,
		Shape:  pts.Shape(),
		Values: pts.Values(),
	}
	if err := cloudio.Save(path, f); err != nil {
		return err
	}
	m.logger.Infof("Saved %d points to %s", pts.Len(), path)
	return nil
}
