package cubing

import (
	"fmt"
	"io"
)

// PrintStats writes the terminal stats block described in spec.md §6: a
// per-phase wall-time breakdown, the exit code, and the cubification
// counters, plus the cube queue's final mean score if the strategy tracks
// one.
func (b *CubifyingSolverBase) PrintStats(w io.Writer) {
	total := b.TimeSearch + b.TimeCubify + b.TimeSearchCube + b.TimeEndSimplify
	pct := func(d float64) float64 {
		if total == 0 {
			return 0
		}
		return 100 * d / total.Seconds()
	}
	fmt.Fprintf(w, "| Search:       %9.2f s (%5.2f %%)\n", b.TimeSearch.Seconds(), pct(b.TimeSearch.Seconds()))
	fmt.Fprintf(w, "| Cubification: %9.2f s (%5.2f %%)\n", b.TimeCubify.Seconds(), pct(b.TimeCubify.Seconds()))
	fmt.Fprintf(w, "| Search(cube): %9.2f s (%5.2f %%)\n", b.TimeSearchCube.Seconds(), pct(b.TimeSearchCube.Seconds()))
	fmt.Fprintf(w, "| End simplify: %9.2f s (%5.2f %%)\n", b.TimeEndSimplify.Seconds(), pct(b.TimeEndSimplify.Seconds()))
	fmt.Fprintf(w, "| Exit:         %d\n", b.ExitCode)
	fmt.Fprintf(w, "cubifications         : %d\n", b.Cubifications)
	fmt.Fprintf(w, "cube refutations      : %d\n", b.CubeRefutations)
	if ms, ok := b.Strategy.(MeanScorer); ok {
		fmt.Fprintf(w, "final mean score      : %.4f\n", ms.MeanScore())
	}
}
