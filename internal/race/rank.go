package race

import "github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"

// GapInfo reports one kart's standing relative to the leader and to the
// kart immediately ahead, supplementing spec.md §4.3's bare rank number
// with the leaderboard-interval display a complete rewrite would add.
// Gap is expressed in lap-equivalents: a full lap behind counts as 1.0,
// a fraction of the current lap is the checkpoint-progress fraction.
type GapInfo struct {
	Slot        int32
	Rank        int32
	LapsBehind  int32
	GapToLeader float64
	GapToAhead  float64
}

// Gaps computes leader and ahead-car intervals for every live kart, in
// rank order, grounded on a lap-then-progress ordering the same way the
// teacher's calculateIntervals ranks cars before computing deltas.
func (r *RaceState) Gaps() []GapInfo {
	order := make([]int32, r.CarCount)
	for i := range order {
		order[i] = int32(i)
	}
	// Karts already carry Rank from recomputeRanks; insertion-sort by it.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && r.Karts[order[j]].Rank < r.Karts[order[j-1]].Rank; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	progress := make([]float64, r.CarCount)
	for i := int32(0); i < r.CarCount; i++ {
		progress[i] = r.progressFraction(&r.Karts[i])
	}

	out := make([]GapInfo, len(order))
	if len(order) == 0 {
		return out
	}
	leaderLap := r.Karts[order[0]].Lap
	leaderProgress := progress[order[0]]

	for i, slot := range order {
		k := &r.Karts[slot]
		out[i] = GapInfo{
			Slot:        slot,
			Rank:        k.Rank,
			LapsBehind:  leaderLap - k.Lap,
			GapToLeader: float64(leaderLap-k.Lap) + (leaderProgress - progress[slot]),
		}
		if i > 0 {
			ahead := order[i-1]
			aheadK := &r.Karts[ahead]
			out[i].GapToAhead = float64(aheadK.Lap-k.Lap) + (progress[ahead] - progress[slot])
		}
	}
	return out
}

// progressFraction estimates how far around the current lap a kart has
// traveled, as (lastCheckpoint+1) / checkpointCount, which lies in
// [0,1] (1 once the last checkpoint has been crossed); it is not clamped.
// Ties within the same checkpoint interval are not sub-divided; the
// checkpoint grid is the finest progress resolution spec.md's data model
// provides.
func (r *RaceState) progressFraction(k *kart.Kart) float64 {
	if len(r.checkpoints) == 0 {
		return 0
	}
	step := 1.0 / float64(len(r.checkpoints))
	return float64(k.LastCheckpoint+1) * step
}
