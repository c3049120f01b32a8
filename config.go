package colourspace

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"

	"github.com/LarsNiebuhr/colourspace/space"
)

// Config holds all configuration for the gamut mapping pipeline.
type Config struct {
	Hull  HullConfig
	Query QueryConfig
}

// HullConfig holds parameters for gamut hull construction.
type HullConfig struct {
	Space  SpaceSpec // Colour space the hull is computed in
	Gamma  float64   // Radius modification exponent; 1 = plain convex hull
	Center r3.Vector // Expansion center for the radius modification, in the hull space
}

// QueryConfig holds parameters for membership and clipping queries.
type QueryConfig struct {
	Workers int // Parallel workers for batch membership; 0 = one per CPU
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Hull: HullConfig{
			Space: SpaceSpec{Type: "cielab"},
			Gamma: 1,
		},
		Query: QueryConfig{
			Workers: 0,
		},
	}
}

// LoadConfig reads and decodes a JSON configuration file. Settings not
// present in the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	return &cfg, nil
}

// SpaceSpec describes a colour space by name, with parameters for the
// transforms that need them. Chained transforms name their base space in
// Base; a nil Base means CIE XYZ.
type SpaceSpec struct {
	Type       string      `mapstructure:"type"`
	WhitePoint string      `mapstructure:"white_point"`
	Gamma      float64     `mapstructure:"gamma"`
	Matrix     [][]float64 `mapstructure:"matrix"`
	Base       *SpaceSpec  `mapstructure:"base"`
}

// Resolve builds the colour space the spec describes.
func (s *SpaceSpec) Resolve() (space.Space, error) {
	base := space.Space(space.XYZ)
	if s.Base != nil {
		resolved, err := s.Base.Resolve()
		if err != nil {
			return nil, err
		}
		base = resolved
	}

	switch strings.ToLower(s.Type) {
	case "", "xyz":
		return space.XYZ, nil
	case "xyy":
		return space.NewXyY(base), nil
	case "cielab", "lab":
		wp, err := s.whitePoint()
		if err != nil {
			return nil, err
		}
		return space.NewCIELAB(base, wp), nil
	case "cielch", "lch":
		wp, err := s.whitePoint()
		if err != nil {
			return nil, err
		}
		return space.NewPolar(space.NewCIELAB(base, wp)), nil
	case "cieluv", "luv":
		wp, err := s.whitePoint()
		if err != nil {
			return nil, err
		}
		return space.NewCIELUV(base, wp), nil
	case "ipt":
		return space.IPT, nil
	case "linear":
		m, err := s.matrix()
		if err != nil {
			return nil, err
		}
		return space.NewLinearChecked(base, m)
	case "gamma":
		if s.Gamma == 0 {
			return nil, fmt.Errorf("%w: gamma space needs a nonzero exponent", ErrBadConfig)
		}
		return space.NewGamma(base, s.Gamma), nil
	case "polar":
		return space.NewPolar(base), nil
	case "cartesian":
		return space.NewCartesian(base), nil
	case "poincare":
		return space.NewPoincareDisk(base), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSpace, s.Type)
}

func (s *SpaceSpec) whitePoint() (r3.Vector, error) {
	switch strings.ToLower(s.WhitePoint) {
	case "", "d65":
		return space.WhiteD65, nil
	case "a":
		return space.WhiteA, nil
	case "b":
		return space.WhiteB, nil
	case "c":
		return space.WhiteC, nil
	case "d50":
		return space.WhiteD50, nil
	case "d55":
		return space.WhiteD55, nil
	case "d75":
		return space.WhiteD75, nil
	case "e":
		return space.WhiteE, nil
	case "f2":
		return space.WhiteF2, nil
	case "f7":
		return space.WhiteF7, nil
	case "f11":
		return space.WhiteF11, nil
	}
	return r3.Vector{}, fmt.Errorf("%w: unknown white point %q", ErrBadConfig, s.WhitePoint)
}

func (s *SpaceSpec) matrix() ([3][3]float64, error) {
	var m [3][3]float64
	if len(s.Matrix) != 3 {
		return m, fmt.Errorf("%w: linear space needs a 3x3 matrix", ErrBadConfig)
	}
	for i, row := range s.Matrix {
		if len(row) != 3 {
			return m, fmt.Errorf("%w: linear space needs a 3x3 matrix", ErrBadConfig)
		}
		copy(m[i][:], row)
	}
	return m, nil
}

// ResolveSpace resolves a bare colour space name, as stored in point
// cloud files.
func ResolveSpace(name string) (space.Space, error) {
	spec := SpaceSpec{Type: name}
	return spec.Resolve()
}
