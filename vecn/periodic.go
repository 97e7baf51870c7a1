package vecn

// Periodic describes the simulation domain box and its per-axis
// periodicity. The canonical position of every particle lies in
// [RangeMin, RangeMax]; CalcRij applies the minimum-image convention on
// every axis flagged periodic.
type Periodic struct {
	RangeMin Vec
	RangeMax Vec
	IsPer    [D]bool
}

// length returns the box extent along axis i.
func (p Periodic) length(i int) float64 {
	return p.RangeMax[i] - p.RangeMin[i]
}

// CalcRij returns the minimum-image displacement a-b: for each axis
// flagged periodic, the component is wrapped into [-L/2, L/2] (a separation
// of exactly L/2 changes sign, so CalcRij(a,b) == -CalcRij(b,a) holds on the
// boundary too); non-periodic axes behave as plain subtraction.
func (p Periodic) CalcRij(a, b Vec) (r Vec) {
	for i := 0; i < D; i++ {
		d := a[i] - b[i]
		if p.IsPer[i] {
			L := p.length(i)
			if L > 0 {
				d -= L * round(d/L)
			}
		}
		r[i] = d
	}
	return
}

// Wrap folds a position back into [RangeMin, RangeMax] on every periodic axis.
func (p Periodic) Wrap(a Vec) Vec {
	for i := 0; i < D; i++ {
		if !p.IsPer[i] {
			continue
		}
		L := p.length(i)
		if L <= 0 {
			continue
		}
		for a[i] < p.RangeMin[i] {
			a[i] += L
		}
		for a[i] > p.RangeMax[i] {
			a[i] -= L
		}
	}
	return a
}

func round(x float64) float64 {
	if x >= 0 {
		return float64(int(x + 0.5))
	}
	return float64(int(x - 0.5))
}
