package fluidforce

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/tree"
	"github.com/cpmech/gosph/vecn"
	"gonum.org/v1/gonum/mat"
)

// ComputeGradients runs the kernel-weighted least-squares gradient pass
// GSPH's second-order (MUSCL) reconstruction needs: for every hydro
// particle, fits grad(rho), grad(p), and grad(v_k) (per velocity
// component) by solving the normal equations of a linear least-squares
// problem over the neighbor set, weighted by the kernel. Results are
// written into p.GradRho, p.GradP, p.GradVel and mirrored into the named
// auxiliary arrays ("grad_rho_x", "grad_p_x", "grad_v_x_y", with axis
// letters x, y, z) per
// the named-auxiliary-array convention the rest of the pipeline uses.
func ComputeGradients(st *particle.State, tr *tree.Tree, bufCap int) error {
	n := len(st.Particles)
	var firstErr error
	sph.ParallelFor(n, func(lo, hi int) {
		buf := make([]int, bufCap)
		for i := lo; i < hi; i++ {
			p := &st.Particles[i]
			if p.IsPointMass {
				continue
			}
			radius := p.Sml * st.Kernel.SupportRatio()
			nb, err := tr.Neighbors(i, radius, buf, false, nil)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			nbrs := buf[:nb]
			if len(nbrs) < vecn.D+1 {
				continue // under-determined; keep zero gradient
			}

			// normal matrix A = sum_j w_j (rij outer rij), rhs_rho = sum_j
			// w_j rij (rho_j-rho_i), similarly for p and each v component.
			A := la.MatAlloc(vecn.D, vecn.D)
			bRho := make([]float64, vecn.D)
			bP := make([]float64, vecn.D)
			bV := make([][]float64, vecn.D)
			for k := range bV {
				bV[k] = make([]float64, vecn.D)
			}

			densMin, densMax := p.Dens, p.Dens
			presMin, presMax := p.Pres, p.Pres
			for _, j := range nbrs {
				q := &st.Particles[j]
				rij := st.Periodic.CalcRij(q.Pos, p.Pos) // q - p, so drho = rho_j - rho_i along +rij
				r := rij.Norm()
				if r <= 0 {
					continue
				}
				w := st.Kernel.W(r, p.Sml)
				for a := 0; a < vecn.D; a++ {
					for b := 0; b < vecn.D; b++ {
						A[a][b] += w * rij[a] * rij[b]
					}
					bRho[a] += w * rij[a] * (q.Dens - p.Dens)
					bP[a] += w * rij[a] * (q.Pres - p.Pres)
					for k := 0; k < vecn.D; k++ {
						bV[k][a] += w * rij[a] * (q.Vel[k] - p.Vel[k])
					}
				}
				densMin, densMax = math.Min(densMin, q.Dens), math.Max(densMax, q.Dens)
				presMin, presMax = math.Min(presMin, q.Pres), math.Max(presMax, q.Pres)
			}
			p.DensMin, p.DensMax = densMin, densMax
			p.PresMin, p.PresMax = presMin, presMax

			gradRho, ok1 := solveNormalEqs(A, bRho)
			gradP, ok2 := solveNormalEqs(A, bP)
			if ok1 {
				p.GradRho = gradRho
			}
			if ok2 {
				p.GradP = gradP
			}
			for k := 0; k < vecn.D; k++ {
				if g, ok := solveNormalEqs(A, bV[k]); ok {
					p.GradVel[k] = g
				}
			}

			mirrorGradients(st, i, p)
		}
	})
	return firstErr
}

// solveNormalEqs solves A x = b for the D-dimensional least-squares
// gradient fit via gonum's dense solver.
func solveNormalEqs(A [][]float64, b []float64) (vecn.Vec, bool) {
	d := vecn.D
	dense := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			dense.Set(i, j, A[i][j])
		}
	}
	rhs := mat.NewVecDense(d, b)
	var xVec mat.VecDense
	if err := xVec.SolveVec(dense, rhs); err != nil {
		return vecn.Vec{}, false
	}
	var g vecn.Vec
	for i := 0; i < d; i++ {
		v := xVec.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return vecn.Vec{}, false
		}
		g[i] = v
	}
	return g, true
}

func mirrorGradients(st *particle.State, i int, p *particle.Particle) {
	for d := 0; d < vecn.D; d++ {
		st.NamedArray(axisName("grad_rho", d))[i] = p.GradRho[d]
		st.NamedArray(axisName("grad_p", d))[i] = p.GradP[d]
		for k := 0; k < vecn.D; k++ {
			st.NamedArray(axisName2("grad_v", k, d))[i] = p.GradVel[k][d]
		}
	}
}

func axisName(prefix string, d int) string {
	const axes = "xyz"
	if d < len(axes) {
		return prefix + "_" + string(axes[d])
	}
	return prefix
}

func axisName2(prefix string, k, d int) string {
	const axes = "xyz"
	if k < len(axes) && d < len(axes) {
		return prefix + "_" + string(axes[k]) + "_" + string(axes[d])
	}
	return prefix
}

// vanLeerLimit clips the linear extrapolation of a scalar field from i to
// the pair midpoint to [neighborMin, neighborMax], guarding against
// overshoot near extrema. It does not apply the van Leer harmonic-mean
// slope formula; the gradient itself is used unchanged inside the range.
func vanLeerLimit(valI, grad, half float64, neighborMin, neighborMax float64) float64 {
	extrap := valI + grad*half
	if extrap < neighborMin {
		return neighborMin
	}
	if extrap > neighborMax {
		return neighborMax
	}
	return extrap
}
