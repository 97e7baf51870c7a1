package preinteraction

import (
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/tree"
)

// Model is the pre-interaction role's capability: given the current tree
// (built over the particles' positions), determine each hydro particle's
// smoothing length and assemble density/pressure/grad-h/AV state.
type Model interface {
	Run(st *particle.State, tr *tree.Tree) error
}
