// Package space implements colour spaces as chained transforms rooted in CIE
// XYZ, together with an n-dimensional colour data container. Every space
// converts to and from XYZ and exposes per-point Jacobians so that colour
// metrics can be transported between spaces.
package space

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Space is a colour space reachable from CIE XYZ.
type Space interface {
	// ToXYZ converts colour vectors in this space to CIE XYZ.
	ToXYZ(nd []r3.Vector) []r3.Vector

	// FromXYZ converts CIE XYZ colour vectors to this space.
	FromXYZ(nd []r3.Vector) []r3.Vector

	// JacobianXYZ returns the per-point Jacobians d(self)/d(XYZ) evaluated
	// at the given colour data. Points where the transform is singular
	// (zero chroma, zero XYZ sum) yield non-finite matrix entries.
	JacobianXYZ(pts *Points) []*mat.Dense
}

// White points of the common CIE standard illuminants, normalised to Y = 1.
var (
	WhiteA   = r3.Vector{X: 1.0985, Y: 1, Z: 0.35585}
	WhiteB   = r3.Vector{X: 0.990720, Y: 1, Z: 0.852230}
	WhiteC   = r3.Vector{X: 0.980740, Y: 1, Z: 0.82320}
	WhiteD50 = r3.Vector{X: 0.964220, Y: 1, Z: 0.82510}
	WhiteD55 = r3.Vector{X: 0.956820, Y: 1, Z: 0.921490}
	WhiteD65 = r3.Vector{X: 0.950470, Y: 1, Z: 1.088830}
	WhiteD75 = r3.Vector{X: 0.949720, Y: 1, Z: 1.226380}
	WhiteE   = r3.Vector{X: 1, Y: 1, Z: 1}
	WhiteF2  = r3.Vector{X: 0.991860, Y: 1, Z: 0.673930}
	WhiteF7  = r3.Vector{X: 0.950410, Y: 1, Z: 1.087470}
	WhiteF11 = r3.Vector{X: 1.009620, Y: 1, Z: 0.643500}
)

// InvJacobianXYZ returns the per-point Jacobians d(XYZ)/d(sp), computed by
// inverting JacobianXYZ matrix by matrix.
func InvJacobianXYZ(sp Space, pts *Points) ([]*mat.Dense, error) {
	jac := sp.JacobianXYZ(pts)
	inv := make([]*mat.Dense, len(jac))
	for i, j := range jac {
		var m mat.Dense
		if err := m.Inverse(j); err != nil {
			return nil, fmt.Errorf("inverting Jacobian %d: %w", i, err)
		}
		inv[i] = &m
	}
	return inv, nil
}

// MetricsToXYZ transports per-point metric tensors from sp into XYZ,
// computing transpose(J) * g * J with J = JacobianXYZ.
func MetricsToXYZ(sp Space, pts *Points, metrics []*mat.Dense) ([]*mat.Dense, error) {
	jac := sp.JacobianXYZ(pts)
	return transportMetrics(jac, metrics)
}

// MetricsFromXYZ transports per-point metric tensors from XYZ into sp,
// computing transpose(J) * g * J with J = InvJacobianXYZ.
func MetricsFromXYZ(sp Space, pts *Points, metrics []*mat.Dense) ([]*mat.Dense, error) {
	jac, err := InvJacobianXYZ(sp, pts)
	if err != nil {
		return nil, err
	}
	return transportMetrics(jac, metrics)
}

func transportMetrics(jac []*mat.Dense, metrics []*mat.Dense) ([]*mat.Dense, error) {
	if len(jac) != len(metrics) {
		return nil, ErrShapeMismatch
	}
	out := make([]*mat.Dense, len(metrics))
	for i := range metrics {
		var gj, m mat.Dense
		gj.Mul(metrics[i], jac[i])
		m.Mul(jac[i].T(), &gj)
		out[i] = &m
	}
	return out, nil
}

// chainJacobians multiplies per-point Jacobians: out_i = dxdb_i * dbdXYZ_i.
func chainJacobians(dxdb, dbdXYZ []*mat.Dense) []*mat.Dense {
	out := make([]*mat.Dense, len(dxdb))
	for i := range dxdb {
		var m mat.Dense
		m.Mul(dxdb[i], dbdXYZ[i])
		out[i] = &m
	}
	return out
}

// identityJacobians returns n fresh 3x3 identity matrices.
func identityJacobians(n int) []*mat.Dense {
	out := make([]*mat.Dense, n)
	for i := range out {
		out[i] = mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	}
	return out
}

// emptyJacobians returns n zeroed 3x3 matrices.
func emptyJacobians(n int) []*mat.Dense {
	out := make([]*mat.Dense, n)
	for i := range out {
		out[i] = mat.NewDense(3, 3, nil)
	}
	return out
}

// mulVec applies a 3x3 matrix to a colour vector.
func mulVec(m *mat.Dense, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}
