package race

import (
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"
)

// ApplyCarUpdate overwrites a non-local slot's position, speed, angle,
// lap and inventory item directly, per spec.md §4.5's CAR_UPDATE receive
// rule. Called by netplay's receive loop; a no-op for the local slot or
// an out-of-range index (spec.md §7's "invalid input" sentinel).
func (r *RaceState) ApplyCarUpdate(slot int32, pos fixedmath.Vec2, speed fixedmath.Q16_8, angle fixedmath.Angle, lap int32, invItem kart.ItemTag) {
	if slot == r.PlayerIndex || slot < 0 || int(slot) >= MaxCars {
		return
	}
	k := &r.Karts[slot]
	k.SetPosition(pos)
	k.SetAngle(angle)
	k.SetSpeed(speed)
	k.Lap = lap
	k.Item = invItem
	if slot >= r.CarCount {
		r.CarCount = slot + 1
	}
}

// ApplyItemPlacement queues a received ITEM_PLACEMENT event so it takes
// effect at the start of the same tick's item-update stage, per spec.md
// §5's ordering guarantee. The item's behaviour follows its tag; speed is
// stored as received.
func (r *RaceState) ApplyItemPlacement(tag kart.ItemTag, pos fixedmath.Vec2, angle fixedmath.Angle, speed fixedmath.Q16_8) {
	r.pendingPlacements = append(r.pendingPlacements, netPlacement{tag: tag, pos: pos, angle: angle, speed: speed})
}

// ApplyBoxPickup queues a received BOX_PICKUP event for the same
// start-of-item-stage application as item placements.
func (r *RaceState) ApplyBoxPickup(index int32) {
	r.pendingPickups = append(r.pendingPickups, index)
}

func (r *RaceState) drainPendingPlacements() {
	for _, p := range r.pendingPlacements {
		r.Items.ReceivePlacement(p.tag, p.pos, p.angle, p.speed)
	}
	r.pendingPlacements = r.pendingPlacements[:0]
}

func (r *RaceState) drainPendingPickups() {
	for _, idx := range r.pendingPickups {
		r.Items.ReceiveBoxPickup(idx)
	}
	r.pendingPickups = r.pendingPickups[:0]
}
