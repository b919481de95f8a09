package cellgeom

import (
	"math"

	"github.com/notargets/EBGeometry/implicit"
	"github.com/notargets/EBGeometry/utils"
)

// NormalDerivatives maps a multi-index alpha with |alpha| <= max order to
// the partial derivative d^alpha of each component of the normal
type NormalDerivatives map[utils.IntVect]utils.RealVect

// NormalDerivativeEngine supplies the normal derivative map of fn at point.
// ok is false when the estimate is ill-conditioned.
type NormalDerivativeEngine interface {
	CalculateAll(maxOrder int, point utils.RealVect, fn implicit.Function) (nd NormalDerivatives, ok bool)
}

// UnitNormal differentiates n = grad(f)/|grad(f)| using the partial
// derivatives of f up to order maxOrder+1.
type UnitNormal struct {
	// Smallest acceptable gradient magnitude (default MachinePrecision)
	MinGradient float64
}

func (u UnitNormal) CalculateAll(maxOrder int, point utils.RealVect, fn implicit.Function) (NormalDerivatives, bool) {
	dim := fn.Dim()
	minGrad := u.MinGradient
	if minGrad <= 0 {
		minGrad = MachinePrecision
	}

	// F holds d^alpha f for |alpha| <= maxOrder+1
	F := make(map[utils.IntVect]float64)
	for _, alpha := range utils.MonomialPowers(dim, maxOrder+1) {
		F[alpha] = fn.Value(alpha, point)
	}

	// S holds d^alpha s for s = |grad f|^2, |alpha| <= maxOrder
	powers := utils.MonomialPowers(dim, maxOrder)
	S := make(map[utils.IntVect]float64, len(powers))
	for _, alpha := range powers {
		var sum float64
		for _, beta := range utils.SubIndices(alpha, dim) {
			c := utils.MultiBinomial(alpha, beta, dim)
			rest := alpha.Sub(beta)
			for j := 0; j < dim; j++ {
				ej := utils.Unit(j)
				sum += c * F[beta.Add(ej)] * F[rest.Add(ej)]
			}
		}
		S[alpha] = sum
	}

	var zero utils.IntVect
	S0 := S[zero]
	nd := make(NormalDerivatives, len(powers))
	if !(math.Sqrt(S0) > minGrad) {
		return nd, false
	}

	// G holds d^beta of s^(-1/2). Differentiating 2 s dG/dx_k + G ds/dx_k = 0
	// gives each G[beta] from lower orders.
	G := make(map[utils.IntVect]float64, len(powers))
	G[zero] = 1.0 / math.Sqrt(S0)
	for order := 1; order <= maxOrder; order++ {
		for _, beta := range utils.MultiIndicesOfOrder(dim, order) {
			k := 0
			for beta[k] == 0 {
				k++
			}
			ek := utils.Unit(k)
			gamma := beta.Sub(ek)

			var sum float64
			for _, delta := range utils.SubIndices(gamma, dim) {
				c := utils.MultiBinomial(gamma, delta, dim)
				rest := gamma.Sub(delta)
				if delta != gamma {
					sum += c * 2.0 * S[rest] * G[delta.Add(ek)]
				}
				sum += c * G[rest] * S[delta.Add(ek)]
			}
			G[beta] = -sum / (2.0 * S0)
		}
	}

	ok := true
	for _, alpha := range powers {
		var n utils.RealVect
		for i := 0; i < dim; i++ {
			ei := utils.Unit(i)
			for _, beta := range utils.SubIndices(alpha, dim) {
				n[i] += utils.MultiBinomial(alpha, beta, dim) * F[alpha.Sub(beta).Add(ei)] * G[beta]
			}
			if math.IsNaN(n[i]) || math.IsInf(n[i], 0) {
				ok = false
			}
		}
		nd[alpha] = n
	}
	return nd, ok
}

// setNormalDerivatives fills the normal derivative map at the local origin.
// Cells with no boundary crossing skip it.
func (r *Record) setNormalDerivatives() {
	r.NormalDerivatives = nil
	r.BadNormal = false
	if r.AllVerticesIn || r.AllVerticesOut {
		return
	}

	point := r.GlobalCoord.Convert(utils.RealVect{}, r.LocalCoord)
	nd, ok := r.cfg.Normals.CalculateAll(r.MaxOrder, point, r.function)
	r.NormalDerivatives = nd
	r.BadNormal = !ok
	if !ok {
		r.cfg.Logger.Debug("ill-conditioned normal",
			"dim", r.Dim, "point", point[:r.Dim])
	}
}
