package item

import (
	"math/rand"

	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"
)

// drawOrder is the fixed scan order spec.md §4.4 mandates for the
// cumulative-sum draw: BANANA, OIL, BOMB, GREEN_SHELL, RED_SHELL,
// MISSILE, MUSHROOM, SPEEDBOOST.
var drawOrder = [8]kart.ItemTag{
	kart.ItemBanana,
	kart.ItemOil,
	kart.ItemBomb,
	kart.ItemGreenShell,
	kart.ItemRedShell,
	kart.ItemMissile,
	kart.ItemMushroom,
	kart.ItemSpeedBoost,
}

// ProbabilityTable is an 8x8 table of draw weights indexed by
// rank-1 (clamped to [0,7]), columns in drawOrder.
type ProbabilityTable [8][8]int32

// DefaultProbabilityTable is a reasonable rank-scaled default: trailing
// karts draw more offensive/speed items, leading karts draw more
// defensive ones. Columns: BANANA, OIL, BOMB, GREEN, RED, MISSILE,
// MUSHROOM, BOOST.
var DefaultProbabilityTable = ProbabilityTable{
	{30, 30, 10, 10, 0, 0, 10, 10}, // rank 1
	{25, 25, 10, 15, 0, 5, 10, 10},
	{20, 20, 10, 20, 5, 5, 10, 10},
	{15, 15, 10, 20, 10, 10, 10, 10},
	{10, 10, 10, 20, 15, 10, 10, 15},
	{10, 5, 10, 15, 20, 15, 10, 15},
	{5, 5, 10, 15, 20, 20, 5, 20},
	{0, 0, 5, 10, 25, 30, 5, 25}, // rank 8 (last place)
}

// DrawItem performs the rank-indexed probability draw exactly as
// spec.md §4.4 and §8-scenario-3 specify: sum the row, draw uniform in
// [0, sum), scan cumulative sums in drawOrder, return the first tag whose
// cumulative sum exceeds the draw. A zero-sum row returns SPEEDBOOST.
func DrawItem(table ProbabilityTable, rank int32, rng *rand.Rand) kart.ItemTag {
	rowIdx := rank - 1
	if rowIdx < 0 {
		rowIdx = 0
	}
	if rowIdx > 7 {
		rowIdx = 7
	}
	row := table[rowIdx]

	var sum int32
	for _, w := range row {
		sum += w
	}
	if sum <= 0 {
		return kart.ItemSpeedBoost
	}

	draw := rng.Int31n(sum)
	var cumulative int32
	for i, w := range row {
		cumulative += w
		if draw < cumulative {
			return drawOrder[i]
		}
	}
	// Unreachable given draw < sum, but keep a defined fallback.
	return kart.ItemSpeedBoost
}
