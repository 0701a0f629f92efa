// Package alns implements the Destroy and Repair Operators of spec.md
// §4.5/§4.6 — the two halves of one ALNS (adaptive large neighborhood
// search) iteration the orchestrator drives in its outer loop.
package alns

import (
	"golang.org/x/exp/rand"

	"github.com/cargostow/loadplan/pkg/domain"
)

// DestroyConfig selects how many (instance, box) entries the Destroy
// Operator removes per call. NumRemove, when positive, is an absolute
// count; otherwise PercentRemove (0,1] scales the total entry count,
// rounded to the nearest integer and floored at 1 whenever the state
// holds at least one box.
type DestroyConfig struct {
	NumRemove     int
	PercentRemove float64
}

// entry is one (instance_index, box_index) pair — a box currently
// assigned to a particular container instance.
type entry struct {
	instance int
	box      int
}

// Destroy implements spec.md §4.5: deep-copy state, sample entries
// uniformly without replacement, remove them, record the removed box
// indices, and mark the score cache dirty. The input state is never
// mutated; Destroy returns a fresh one.
func Destroy(state *domain.State, cfg DestroyConfig, rng *rand.Rand) *domain.State {
	out := state.Clone()

	var entries []entry
	for j, inst := range out.Assignment.Instances {
		for _, boxIdx := range inst.Boxes {
			entries = append(entries, entry{instance: j, box: boxIdx})
		}
	}

	count := resolveCount(cfg, len(entries))
	if count == 0 {
		out.Removed = nil
		return out
	}

	perm := rng.Perm(len(entries))
	chosen := make(map[entry]bool, count)
	for _, idx := range perm[:count] {
		chosen[entries[idx]] = true
	}

	removed := make([]int, 0, count)
	for j := range out.Assignment.Instances {
		inst := out.Assignment.Instances[j]
		kept := make([]int, 0, len(inst.Boxes))
		for _, boxIdx := range inst.Boxes {
			if chosen[entry{instance: j, box: boxIdx}] {
				removed = append(removed, boxIdx)
				continue
			}
			kept = append(kept, boxIdx)
		}
		out.Assignment.Instances[j] = domain.Instance{Boxes: kept}
	}

	out.Removed = removed
	out.MarkDirty()
	return out
}

func resolveCount(cfg DestroyConfig, total int) int {
	if total == 0 {
		return 0
	}
	var n int
	if cfg.NumRemove > 0 {
		n = cfg.NumRemove
	} else {
		n = int(cfg.PercentRemove*float64(total) + 0.5)
		if n < 1 {
			n = 1
		}
	}
	if n > total {
		n = total
	}
	return n
}
