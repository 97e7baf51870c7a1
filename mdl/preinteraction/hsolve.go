package preinteraction

import (
	"math"

	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/tree"
	"github.com/cpmech/gosph/vecn"
)

// densitySum evaluates rho_i(h) = sum_j m_j W(|r_ij|,h) (including the
// self term) and its derivative drho/dh = sum_j m_j dhw(|r_ij|,h), over
// the supplied candidate neighbor list nbrs (indices into st.Particles).
func densitySum(st *particle.State, i int, h float64, nbrs []int) (rho, drhodh float64) {
	p := &st.Particles[i]
	rho = p.Mass * st.Kernel.W(0, h)
	drhodh = p.Mass * st.Kernel.DHW(0, h)
	for _, j := range nbrs {
		r := st.Periodic.CalcRij(p.Pos, st.Particles[j].Pos).Norm()
		rho += st.Particles[j].Mass * st.Kernel.W(r, h)
		drhodh += st.Particles[j].Mass * st.Kernel.DHW(r, h)
	}
	return
}

// hGuessFromDensity inverts the neighbor-count formula for an initial h
// given a known (or last known) density: N_target = (aEff/m) rho h^Deff.
func hGuessFromDensity(mass, rho, nTarget float64, deff int) float64 {
	if rho <= 0 {
		rho = 1
	}
	val := nTarget * mass / (aEff(deff) * rho)
	return math.Pow(val, 1.0/float64(deff))
}

// SolveH solves for particle i's smoothing length by Newton-Raphson on
// rho(h) against the implied target density rhoTarget = N_target*m /
// (aEff*h^Deff); since rhoTarget itself depends on h, each iteration
// re-targets using the *current* h (the standard fixed-point form used by
// production SPH codes: iterate h <- h - (rho(h)-rhoTarget(h)) /
// d/dh[rho(h)-rhoTarget(h)]).
//
// On failure to converge within Params.HMaxIter, it widens the search
// window and falls back to bisection; this is a non-fatal convergence
// failure recorded on st.ConvergenceWarnings. The particle takes the
// bisection result, or keeps its last Newton iterate when the widened
// window holds no sign change.
func SolveH(st *particle.State, tr *tree.Tree, i int, prm Params, hInit float64) (hFinal float64, neighborCount int, err error) {
	p := &st.Particles[i]
	deff := vecn.EffDim
	m := p.Mass

	h := hInit
	if h <= 0 {
		h = hGuessFromDensity(m, p.Dens, prm.NeighborNumber, deff)
	}

	buf := make([]int, prm.NeighborBufCap)
	supportRatio := st.Kernel.SupportRatio()
	collectedRadius := h * supportRatio
	n, qerr := tr.Neighbors(i, collectedRadius, buf, false, nil)
	if qerr != nil {
		return h, 0, qerr
	}
	nbrs := buf[:n]

	converged := false
	for iter := 0; iter < prm.HMaxIter; iter++ {
		if h*supportRatio > collectedRadius {
			collectedRadius = h * supportRatio
			n, qerr = tr.Neighbors(i, collectedRadius, buf, false, nil)
			if qerr != nil {
				return h, 0, qerr
			}
			nbrs = buf[:n]
		}

		rho, drhodh := densitySum(st, i, h, nbrs)
		nTarget := prm.NeighborNumber
		rhoTarget := nTarget * m / (aEff(deff) * math.Pow(h, float64(deff)))
		// d(rhoTarget)/dh = -Deff * rhoTarget / h
		dRhoTargetDh := -float64(deff) * rhoTarget / h

		f := rho - rhoTarget
		df := drhodh - dRhoTargetDh
		if df == 0 {
			break
		}
		dh := -f / df
		hNew := h + dh
		if hNew <= 0 {
			hNew = 0.5 * h
		}
		relDelta := math.Abs(dh) / h
		h = hNew
		if relDelta < prm.HTol {
			converged = true
			break
		}
	}

	if !converged {
		h, nbrs, n = bisectH(st, tr, i, prm, h, buf)
		st.ConvergenceWarnings++
	}

	if h*supportRatio > collectedRadius {
		n, qerr = tr.Neighbors(i, h*supportRatio, buf, false, nil)
		if qerr != nil {
			return h, 0, qerr
		}
		nbrs = buf[:n]
	}

	count := 0
	for _, j := range nbrs {
		r := st.Periodic.CalcRij(p.Pos, st.Particles[j].Pos).Norm()
		if r < h {
			count++
		}
	}

	return h, count, nil
}

// bisectH widens the bracket around the failed Newton iterate and
// performs plain bisection on rho(h)-rhoTarget(h) until convergence or a
// capped number of extra iterations, returning the last neighbor list
// gathered.
func bisectH(st *particle.State, tr *tree.Tree, i int, prm Params, hGuess float64, buf []int) (float64, []int, int) {
	p := &st.Particles[i]
	deff := vecn.EffDim
	m := p.Mass
	supportRatio := st.Kernel.SupportRatio()

	lo, hi := 0.1*hGuess, 10*hGuess
	f := func(h float64) (float64, []int, int) {
		radius := h * supportRatio
		n, err := tr.Neighbors(i, radius, buf, false, nil)
		if err != nil {
			// fall back to whatever fits; overflow here is a resource
			// failure the caller will surface on the next real query.
			n = len(buf)
		}
		nbrs := buf[:n]
		rho, _ := densitySum(st, i, h, nbrs)
		rhoTarget := prm.NeighborNumber * m / (aEff(deff) * math.Pow(h, float64(deff)))
		return rho - rhoTarget, nbrs, n
	}

	flo, _, _ := f(lo)
	fhi, nbrsHi, nHi := f(hi)
	lastNbrs, lastN := nbrsHi, nHi
	if flo*fhi > 0 {
		// bracket failed to capture a root; return the best available guess
		return hGuess, lastNbrs, lastN
	}
	mid := hGuess
	for iter := 0; iter < 40; iter++ {
		mid = 0.5 * (lo + hi)
		fmid, nbrsMid, nMid := f(mid)
		lastNbrs, lastN = nbrsMid, nMid
		if (fmid > 0) == (flo > 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
		if hi-lo < prm.HTol*mid {
			break
		}
	}
	return mid, lastNbrs, lastN
}

