package space

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Canonical colour space instances.
var (
	// XYZ is the terminal CIE XYZ space all transforms chain back to.
	XYZ = &XYZSpace{}

	// XyY is the projective xyY chromaticity space over XYZ.
	XyY = NewXyY(XYZ)

	// CIELAB is CIE L*a*b* with the D65 white point.
	CIELAB = NewCIELAB(XYZ, WhiteD65)

	// CIELCh is the cylindrical form of CIELAB.
	CIELCh = NewPolar(CIELAB)

	// CIELUV is CIE L*u*v* with the D65 white point.
	CIELUV = NewCIELUV(XYZ, WhiteD65)

	// IPT is the Ebner/Fairchild IPT space: a linear transform of
	// gamma-compressed cone responses.
	IPT = NewLinear(NewGamma(mustLinear(XYZ, [3][3]float64{
		{0.4002, 0.7075, -0.0807},
		{-0.228, 1.15, 0.0612},
		{0, 0, 0.9184},
	}), 0.43), [3][3]float64{
		{0.4, 0.4, 0.2},
		{4.455, -4.850, 0.3960},
		{0.8056, 0.3572, -1.1628},
	})
)

// CIELAB and CIELUV knee constants, exact rational forms of the rounded
// standard values 903.3 and 0.008856.
const (
	labKappa   = 24389.0 / 27.0
	labEpsilon = 216.0 / 24389.0
)

// XYZSpace is the identity terminal space.
type XYZSpace struct{}

func (s *XYZSpace) ToXYZ(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	copy(out, nd)
	return out
}

func (s *XYZSpace) FromXYZ(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	copy(out, nd)
	return out
}

func (s *XYZSpace) JacobianXYZ(pts *Points) []*mat.Dense {
	return identityJacobians(pts.Len())
}

// XyYSpace is the projective transform from XYZ to chromaticity plus
// luminance.
type XyYSpace struct {
	base Space
}

// NewXyY creates an xyY space on top of base.
func NewXyY(base Space) *XyYSpace {
	return &XyYSpace{base: base}
}

func (s *XyYSpace) ToXYZ(nd []r3.Vector) []r3.Vector   { return s.base.ToXYZ(s.toBase(nd)) }
func (s *XyYSpace) FromXYZ(nd []r3.Vector) []r3.Vector { return s.fromBase(s.base.FromXYZ(nd)) }

func (s *XyYSpace) toBase(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		x, y, bigY := v.X, v.Y, v.Z
		out[i] = r3.Vector{
			X: x * bigY / y,
			Y: bigY,
			Z: (1 - x - y) * bigY / y,
		}
	}
	return out
}

func (s *XyYSpace) fromBase(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		sum := v.X + v.Y + v.Z
		out[i] = r3.Vector{X: v.X / sum, Y: v.Y / sum, Z: v.Y}
	}
	return out
}

func (s *XyYSpace) JacobianXYZ(pts *Points) []*mat.Dense {
	return chainJacobians(s.jacobianBase(pts), s.base.JacobianXYZ(pts))
}

func (s *XyYSpace) jacobianBase(pts *Points) []*mat.Dense {
	d := pts.Get(s.base)
	jac := emptyJacobians(len(d))
	for i, v := range d {
		sum2 := (v.X + v.Y + v.Z) * (v.X + v.Y + v.Z)
		jac[i].Set(0, 0, (v.Y+v.Z)/sum2)
		jac[i].Set(0, 1, -v.X/sum2)
		jac[i].Set(0, 2, -v.X/sum2)
		jac[i].Set(1, 0, -v.Y/sum2)
		jac[i].Set(1, 1, (v.X+v.Z)/sum2)
		jac[i].Set(1, 2, -v.Y/sum2)
		jac[i].Set(2, 1, 1)
	}
	return jac
}

// CIELABSpace is the CIE 1976 L*a*b* transform with a configurable white
// point.
type CIELABSpace struct {
	base       Space
	whitePoint r3.Vector
}

// NewCIELAB creates a CIELAB space on top of base for the given white point.
func NewCIELAB(base Space, whitePoint r3.Vector) *CIELABSpace {
	return &CIELABSpace{base: base, whitePoint: whitePoint}
}

// WhitePoint returns the white point the transform is anchored to.
func (s *CIELABSpace) WhitePoint() r3.Vector { return s.whitePoint }

func (s *CIELABSpace) ToXYZ(nd []r3.Vector) []r3.Vector   { return s.base.ToXYZ(s.toBase(nd)) }
func (s *CIELABSpace) FromXYZ(nd []r3.Vector) []r3.Vector { return s.fromBase(s.base.FromXYZ(nd)) }

func labF(x float64) float64 {
	if x > labEpsilon {
		return math.Cbrt(x)
	}
	return (labKappa*x + 16) / 116
}

func labDfdx(x float64) float64 {
	if x > labEpsilon {
		return math.Pow(x, -2.0/3.0) / 3
	}
	return labKappa / 116
}

func (s *CIELABSpace) toBase(nd []r3.Vector) []r3.Vector {
	wp := s.whitePoint
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		l, a, b := v.X, v.Y, v.Z
		fy := (l + 16) / 116
		fx := a/500 + fy
		fz := fy - b/200

		xr := fx * fx * fx
		if xr <= labEpsilon {
			xr = (116*fx - 16) / labKappa
		}
		yr := fy * fy * fy
		if l <= labKappa*labEpsilon {
			yr = l / labKappa
		}
		zr := fz * fz * fz
		if zr <= labEpsilon {
			zr = (116*fz - 16) / labKappa
		}
		out[i] = r3.Vector{X: xr * wp.X, Y: yr * wp.Y, Z: zr * wp.Z}
	}
	return out
}

func (s *CIELABSpace) fromBase(nd []r3.Vector) []r3.Vector {
	wp := s.whitePoint
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		fx := labF(v.X / wp.X)
		fy := labF(v.Y / wp.Y)
		fz := labF(v.Z / wp.Z)
		out[i] = r3.Vector{
			X: 116*fy - 16,
			Y: 500 * (fx - fy),
			Z: 200 * (fy - fz),
		}
	}
	return out
}

func (s *CIELABSpace) JacobianXYZ(pts *Points) []*mat.Dense {
	return chainJacobians(s.jacobianBase(pts), s.base.JacobianXYZ(pts))
}

func (s *CIELABSpace) jacobianBase(pts *Points) []*mat.Dense {
	wp := s.whitePoint
	d := pts.Get(s.base)
	jac := emptyJacobians(len(d))
	for i, v := range d {
		dfx := labDfdx(v.X / wp.X)
		dfy := labDfdx(v.Y / wp.Y)
		dfz := labDfdx(v.Z / wp.Z)
		jac[i].Set(0, 1, 116*dfy/wp.Y)
		jac[i].Set(1, 0, 500*dfx/wp.X)
		jac[i].Set(1, 1, -500*dfy/wp.Y)
		jac[i].Set(2, 1, 200*dfy/wp.Y)
		jac[i].Set(2, 2, -200*dfz/wp.Z)
	}
	return jac
}

// CIELUVSpace is the CIE 1976 L*u*v* transform with a configurable white
// point.
type CIELUVSpace struct {
	base       Space
	whitePoint r3.Vector
}

// NewCIELUV creates a CIELUV space on top of base for the given white point.
func NewCIELUV(base Space, whitePoint r3.Vector) *CIELUVSpace {
	return &CIELUVSpace{base: base, whitePoint: whitePoint}
}

// WhitePoint returns the white point the transform is anchored to.
func (s *CIELUVSpace) WhitePoint() r3.Vector { return s.whitePoint }

func (s *CIELUVSpace) ToXYZ(nd []r3.Vector) []r3.Vector   { return s.base.ToXYZ(s.toBase(nd)) }
func (s *CIELUVSpace) FromXYZ(nd []r3.Vector) []r3.Vector { return s.fromBase(s.base.FromXYZ(nd)) }

func (s *CIELUVSpace) refChroma() (upr, vpr float64) {
	wp := s.whitePoint
	wd := wp.X + 15*wp.Y + 3*wp.Z
	return 4 * wp.X / wd, 9 * wp.Y / wd
}

func (s *CIELUVSpace) toBase(nd []r3.Vector) []r3.Vector {
	upr, vpr := s.refChroma()
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		l, u, vv := v.X, v.Y, v.Z
		fy := (l + 16) / 116
		y := fy * fy * fy
		if l <= labKappa*labEpsilon {
			y = l / labKappa
		}
		a := (52*l/(u+13*l*upr) - 1) / 3
		b := -5 * y
		c := -1.0 / 3.0
		d := y * (39*l/(vv+13*l*vpr) - 5)
		x := (d - b) / (a - c)
		z := x*a + b
		out[i] = r3.Vector{X: x, Y: y, Z: z}
	}
	return out
}

func (s *CIELUVSpace) fromBase(nd []r3.Vector) []r3.Vector {
	wp := s.whitePoint
	upr, vpr := s.refChroma()
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		denom := v.X + 15*v.Y + 3*v.Z
		up := 4 * v.X / denom
		vp := 9 * v.Y / denom
		l := 116*labF(v.Y/wp.Y) - 16
		out[i] = r3.Vector{
			X: l,
			Y: 13 * l * (up - upr),
			Z: 13 * l * (vp - vpr),
		}
	}
	return out
}

func (s *CIELUVSpace) JacobianXYZ(pts *Points) []*mat.Dense {
	return chainJacobians(s.jacobianBase(pts), s.base.JacobianXYZ(pts))
}

func (s *CIELUVSpace) jacobianBase(pts *Points) []*mat.Dense {
	wp := s.whitePoint
	upr, vpr := s.refChroma()
	xyz := pts.Get(s.base)
	luv := pts.Get(s)
	jac := emptyJacobians(len(xyz))
	for i, v := range xyz {
		l := luv[i].X
		denom := v.X + 15*v.Y + 3*v.Z
		dldy := 116 * labDfdx(v.Y) / wp.Y
		jac[i].Set(0, 1, dldy)
		jac[i].Set(1, 0, 13*l*(60*v.Y+12*v.Z)/(denom*denom))
		jac[i].Set(1, 1, 13*l*-60*v.X/(denom*denom)+
			13*dldy*(4*v.X/denom-upr))
		jac[i].Set(1, 2, 13*l*-12*v.X/(denom*denom))
		jac[i].Set(2, 0, 13*l*-9*v.Y/(denom*denom))
		jac[i].Set(2, 1, 13*l*(9*v.X+27*v.Z)/(denom*denom)+
			13*dldy*(9*v.Y/denom-vpr))
		jac[i].Set(2, 2, 13*l*-27*v.Y/(denom*denom))
	}
	return jac
}

// LinearSpace applies a 3x3 matrix to its base: transformed = M * base.
type LinearSpace struct {
	base Space
	m    *mat.Dense
	mInv *mat.Dense
}

// NewLinearChecked creates a linear space on top of base, failing when the
// matrix is singular.
func NewLinearChecked(base Space, m [3][3]float64) (*LinearSpace, error) {
	md := mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
	var inv mat.Dense
	if err := inv.Inverse(md); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMatrix, err)
	}
	return &LinearSpace{base: base, m: md, mInv: &inv}, nil
}

// NewLinear creates a linear space on top of base. It panics on a singular
// matrix; use NewLinearChecked for fallible construction.
func NewLinear(base Space, m [3][3]float64) *LinearSpace {
	return mustLinear(base, m)
}

func mustLinear(base Space, m [3][3]float64) *LinearSpace {
	s, err := NewLinearChecked(base, m)
	if err != nil {
		panic(err)
	}
	return s
}

// Matrix returns a copy of the transform matrix.
func (s *LinearSpace) Matrix() *mat.Dense {
	var m mat.Dense
	m.CloneFrom(s.m)
	return &m
}

func (s *LinearSpace) ToXYZ(nd []r3.Vector) []r3.Vector   { return s.base.ToXYZ(s.toBase(nd)) }
func (s *LinearSpace) FromXYZ(nd []r3.Vector) []r3.Vector { return s.fromBase(s.base.FromXYZ(nd)) }

func (s *LinearSpace) toBase(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		out[i] = mulVec(s.mInv, v)
	}
	return out
}

func (s *LinearSpace) fromBase(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		out[i] = mulVec(s.m, v)
	}
	return out
}

func (s *LinearSpace) JacobianXYZ(pts *Points) []*mat.Dense {
	return chainJacobians(s.jacobianBase(pts), s.base.JacobianXYZ(pts))
}

func (s *LinearSpace) jacobianBase(pts *Points) []*mat.Dense {
	out := make([]*mat.Dense, pts.Len())
	for i := range out {
		var m mat.Dense
		m.CloneFrom(s.m)
		out[i] = &m
	}
	return out
}

// GammaSpace applies a signed power to each channel of its base:
// transformed = sign(base) * abs(base)^gamma.
type GammaSpace struct {
	base     Space
	gamma    float64
	gammaInv float64
}

// NewGamma creates a gamma space on top of base.
func NewGamma(base Space, gamma float64) *GammaSpace {
	return &GammaSpace{base: base, gamma: gamma, gammaInv: 1 / gamma}
}

// Gamma returns the exponent of the transform.
func (s *GammaSpace) Gamma() float64 { return s.gamma }

func (s *GammaSpace) ToXYZ(nd []r3.Vector) []r3.Vector   { return s.base.ToXYZ(s.toBase(nd)) }
func (s *GammaSpace) FromXYZ(nd []r3.Vector) []r3.Vector { return s.fromBase(s.base.FromXYZ(nd)) }

func signedPow(x, p float64) float64 {
	if x < 0 {
		return -math.Pow(-x, p)
	}
	return math.Pow(x, p)
}

func (s *GammaSpace) toBase(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		out[i] = r3.Vector{
			X: signedPow(v.X, s.gammaInv),
			Y: signedPow(v.Y, s.gammaInv),
			Z: signedPow(v.Z, s.gammaInv),
		}
	}
	return out
}

func (s *GammaSpace) fromBase(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		out[i] = r3.Vector{
			X: signedPow(v.X, s.gamma),
			Y: signedPow(v.Y, s.gamma),
			Z: signedPow(v.Z, s.gamma),
		}
	}
	return out
}

func (s *GammaSpace) JacobianXYZ(pts *Points) []*mat.Dense {
	return chainJacobians(s.jacobianBase(pts), s.base.JacobianXYZ(pts))
}

func (s *GammaSpace) jacobianBase(pts *Points) []*mat.Dense {
	d := pts.Get(s.base)
	jac := emptyJacobians(len(d))
	for i, v := range d {
		jac[i].Set(0, 0, s.gamma*math.Pow(math.Abs(v.X), s.gamma-1))
		jac[i].Set(1, 1, s.gamma*math.Pow(math.Abs(v.Y), s.gamma-1))
		jac[i].Set(2, 2, s.gamma*math.Pow(math.Abs(v.Z), s.gamma-1))
	}
	return jac
}

// PolarSpace rewrites the last two channels of its base in polar
// coordinates, turning for example CIELAB into CIELCh.
type PolarSpace struct {
	base Space
}

// NewPolar creates a polar space on top of base.
func NewPolar(base Space) *PolarSpace {
	return &PolarSpace{base: base}
}

func (s *PolarSpace) ToXYZ(nd []r3.Vector) []r3.Vector   { return s.base.ToXYZ(s.toBase(nd)) }
func (s *PolarSpace) FromXYZ(nd []r3.Vector) []r3.Vector { return s.fromBase(s.base.FromXYZ(nd)) }

func (s *PolarSpace) toBase(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		c, h := v.Y, v.Z
		out[i] = r3.Vector{X: v.X, Y: c * math.Cos(h), Z: c * math.Sin(h)}
	}
	return out
}

func (s *PolarSpace) fromBase(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		out[i] = r3.Vector{
			X: v.X,
			Y: math.Hypot(v.Y, v.Z),
			Z: math.Atan2(v.Z, v.Y),
		}
	}
	return out
}

func (s *PolarSpace) JacobianXYZ(pts *Points) []*mat.Dense {
	return chainJacobians(s.jacobianBase(pts), s.base.JacobianXYZ(pts))
}

func (s *PolarSpace) jacobianBase(pts *Points) []*mat.Dense {
	d := pts.Get(s)
	jac := emptyJacobians(len(d))
	for i, v := range d {
		c, h := v.Y, v.Z
		jac[i].Set(0, 0, 1)
		jac[i].Set(1, 1, math.Cos(h))
		jac[i].Set(1, 2, math.Sin(h))
		jac[i].Set(2, 1, -math.Sin(h)/c)
		jac[i].Set(2, 2, math.Cos(h)/c)
	}
	return jac
}

// CartesianSpace rewrites the last two channels of its polar base in
// Cartesian coordinates, turning for example CIELCh back into CIELAB.
type CartesianSpace struct {
	base Space
}

// NewCartesian creates a Cartesian space on top of a polar base.
func NewCartesian(base Space) *CartesianSpace {
	return &CartesianSpace{base: base}
}

func (s *CartesianSpace) ToXYZ(nd []r3.Vector) []r3.Vector   { return s.base.ToXYZ(s.toBase(nd)) }
func (s *CartesianSpace) FromXYZ(nd []r3.Vector) []r3.Vector { return s.fromBase(s.base.FromXYZ(nd)) }

func (s *CartesianSpace) toBase(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		out[i] = r3.Vector{
			X: v.X,
			Y: math.Hypot(v.Y, v.Z),
			Z: math.Atan2(v.Z, v.Y),
		}
	}
	return out
}

func (s *CartesianSpace) fromBase(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		c, h := v.Y, v.Z
		out[i] = r3.Vector{X: v.X, Y: c * math.Cos(h), Z: c * math.Sin(h)}
	}
	return out
}

func (s *CartesianSpace) JacobianXYZ(pts *Points) []*mat.Dense {
	return chainJacobians(s.jacobianBase(pts), s.base.JacobianXYZ(pts))
}

func (s *CartesianSpace) jacobianBase(pts *Points) []*mat.Dense {
	d := pts.Get(s.base)
	jac := emptyJacobians(len(d))
	for i, v := range d {
		c, h := v.Y, v.Z
		jac[i].Set(0, 0, 1)
		jac[i].Set(1, 1, math.Cos(h))
		jac[i].Set(1, 2, -c*math.Sin(h))
		jac[i].Set(2, 1, math.Sin(h))
		jac[i].Set(2, 2, c*math.Cos(h))
	}
	return jac
}

// PoincareDiskSpace compresses the chroma plane of its base into the
// unit disk. Radial distance in the disk under the hyperbolic metric
// equals Euclidean chroma in the base, so a chroma C lands at radius
// tanh(C/2). The first channel passes through unchanged.
type PoincareDiskSpace struct {
	base Space
}

// NewPoincareDisk creates a Poincare disk space on top of base.
func NewPoincareDisk(base Space) *PoincareDiskSpace {
	return &PoincareDiskSpace{base: base}
}

func (s *PoincareDiskSpace) ToXYZ(nd []r3.Vector) []r3.Vector   { return s.base.ToXYZ(s.toBase(nd)) }
func (s *PoincareDiskSpace) FromXYZ(nd []r3.Vector) []r3.Vector { return s.fromBase(s.base.FromXYZ(nd)) }

func (s *PoincareDiskSpace) toBase(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		out[i] = r3.Vector{X: v.X}
		if r := math.Hypot(v.Y, v.Z); r > 0 {
			scale := 2 * math.Atanh(r) / r
			out[i].Y = v.Y * scale
			out[i].Z = v.Z * scale
		}
	}
	return out
}

func (s *PoincareDiskSpace) fromBase(nd []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(nd))
	for i, v := range nd {
		out[i] = r3.Vector{X: v.X}
		if c := math.Hypot(v.Y, v.Z); c > 0 {
			scale := math.Tanh(c/2) / c
			out[i].Y = v.Y * scale
			out[i].Z = v.Z * scale
		}
	}
	return out
}

func (s *PoincareDiskSpace) JacobianXYZ(pts *Points) []*mat.Dense {
	return chainJacobians(s.jacobianBase(pts), s.base.JacobianXYZ(pts))
}

func (s *PoincareDiskSpace) jacobianBase(pts *Points) []*mat.Dense {
	d := pts.Get(s.base)
	jac := emptyJacobians(len(d))
	for i, v := range d {
		jac[i].Set(0, 0, 1)
		a, b := v.Y, v.Z
		c := math.Hypot(a, b)
		if c == 0 {
			// The chroma scale tanh(C/2)/C tends to 1/2 at the center.
			jac[i].Set(1, 1, 0.5)
			jac[i].Set(2, 2, 0.5)
			continue
		}
		th := math.Tanh(c / 2)
		scale := th / c
		ds := (c/2*(1-th*th) - th) / (c * c)
		jac[i].Set(1, 1, scale+a*ds*a/c)
		jac[i].Set(1, 2, a*ds*b/c)
		jac[i].Set(2, 1, b*ds*a/c)
		jac[i].Set(2, 2, scale+b*ds*b/c)
	}
	return jac
}
