package race

import (
	"sort"

	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/item"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/worldmap"
)

// Tick advances the race by one physics step, per spec.md §4.3's
// numbered pipeline: inputs -> local kart -> non-local karts -> walls ->
// items -> checkpoints -> ranks. It is a
// no-op when paused or not RUNNING (except for edge-triggered
// pauseToggle and the COUNTDOWN countdown, which still advance).
func (r *RaceState) Tick(input InputSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if input.PauseToggle && r.Phase == Running {
		r.PauseToggle()
	}

	switch r.Phase {
	case Countdown:
		r.countdownTicksLeft--
		if r.countdownTicksLeft <= 0 {
			r.Phase = Running
		}
		r.publishSnapshot()
		return
	case Running:
		// falls through to the physics pipeline below
	default:
		return
	}

	if r.Paused {
		r.publishSnapshot()
		return
	}

	r.applyLocalInput(input)

	for i := int32(0); i < r.CarCount; i++ {
		if i == r.PlayerIndex {
			continue
		}
		r.driveNonLocal(i)
	}

	var prevPos [MaxCars]fixedmath.Vec2
	for i := int32(0); i < r.CarCount; i++ {
		prevPos[i] = r.Karts[i].Position
		r.Karts[i].TickUpdate()
	}

	for i := int32(0); i < r.CarCount; i++ {
		r.resolveWallsAndBounds(&r.Karts[i], prevPos[i])
	}

	r.drainPendingPlacements()
	r.drainPendingPickups()

	liveKarts := make([]*kart.Kart, r.CarCount)
	for i := int32(0); i < r.CarCount; i++ {
		liveKarts[i] = &r.Karts[i]
	}
	r.Items.Tick(liveKarts, r.walls)

	if input.UseItem && r.Phase == Running {
		r.useLocalItem(input.FireForward)
	}
	r.tryPickupLocal()

	for i := int32(0); i < r.CarCount; i++ {
		r.advanceCheckpoints(i)
	}

	r.recomputeRanks()

	for i := int32(0); i < r.CarCount; i++ {
		if r.Karts[i].Lap >= r.TotalLaps {
			r.Phase = Finished
			break
		}
	}

	r.publishSnapshot()
}

func (r *RaceState) applyLocalInput(input InputSnapshot) {
	local := &r.Karts[r.PlayerIndex]

	steerLeft, steerRight := input.SteerLeft, input.SteerRight
	if r.Items.Effects.ConfusionActive {
		steerLeft, steerRight = steerRight, steerLeft
	}
	if steerLeft {
		local.Steer(-SteerRate)
	}
	if steerRight {
		local.Steer(SteerRate)
	}

	if input.Accelerate {
		local.Accelerate()
	} else if input.Brake {
		local.Brake()
	}
}

func (r *RaceState) driveNonLocal(slot int32) {
	if r.Mode != SinglePlayer {
		return // MultiPlayer slots are written by netplay's CAR_UPDATE receive path
	}
	bot := r.bots[slot]
	if bot == nil {
		return
	}
	k := &r.Karts[slot]
	leaderPos := r.leaderPosition()
	d := bot.Decide(k, r.checkpoints, leaderPos)

	if d.SteerLeft {
		k.Steer(-SteerRate)
	}
	if d.SteerRight {
		k.Steer(SteerRate)
	}
	if d.Accelerate {
		k.Accelerate()
	} else if d.Brake {
		k.Brake()
	}
	if d.UseItem && k.Item != kart.ItemNone {
		r.useItemFor(slot, d.FireForward)
	}
}

func (r *RaceState) leaderPosition() fixedmath.Vec2 {
	for i := int32(0); i < r.CarCount; i++ {
		if r.Karts[i].Rank == 1 {
			return r.Karts[i].Position
		}
	}
	return r.Karts[r.PlayerIndex].Position
}

func (r *RaceState) resolveWallsAndBounds(k *kart.Kart, prev fixedmath.Vec2) {
	velocity := k.Velocity()
	resolvedPos, resolvedVel := r.walls.ResolveWallCollision(prev, k.Position, velocity)
	resolvedPos = worldmap.ClampToWorld(resolvedPos, item.KartSize)
	k.SetPosition(resolvedPos)
	if resolvedVel != velocity {
		k.SetVelocity(resolvedVel)
	}
}

func (r *RaceState) advanceCheckpoints(slot int32) {
	if len(r.checkpoints) == 0 {
		return
	}
	k := &r.Karts[slot]
	next := k.LastCheckpoint + 1
	if int(next) >= len(r.checkpoints) {
		next = 0
	}
	if r.checkpoints[next].Contains(k.Position) {
		if int(next) == 0 && k.LastCheckpoint == int32(len(r.checkpoints)-1) {
			k.LapComplete(r.elapsedMs)
			k.LastCheckpoint = 0
		} else {
			k.LastCheckpoint = next
		}
	}
}

func (r *RaceState) recomputeRanks() {
	order := make([]int32, r.CarCount)
	for i := range order {
		order[i] = int32(i)
	}
	sort.Slice(order, func(a, b int) bool {
		ka, kb := &r.Karts[order[a]], &r.Karts[order[b]]
		if ka.Lap != kb.Lap {
			return ka.Lap > kb.Lap
		}
		if ka.LastCheckpoint != kb.LastCheckpoint {
			return ka.LastCheckpoint > kb.LastCheckpoint
		}
		return r.distanceToNextCheckpoint(ka) < r.distanceToNextCheckpoint(kb)
	})
	for rank, slot := range order {
		r.Karts[slot].Rank = int32(rank + 1)
	}
}

func (r *RaceState) distanceToNextCheckpoint(k *kart.Kart) fixedmath.Q16_8 {
	if len(r.checkpoints) == 0 {
		return 0
	}
	next := k.LastCheckpoint + 1
	if int(next) >= len(r.checkpoints) {
		next = 0
	}
	return fixedmath.Distance(k.Position, r.checkpoints[next].Center())
}

func (r *RaceState) useLocalItem(fireForward bool) {
	r.useItemFor(r.PlayerIndex, fireForward)
}

// useItemFor dispatches slot's held item. Hazards and self-effects fire
// on useItem alone; a projectile additionally requires fireForward, so
// a kart can hold a shell or missile without releasing it until the
// player (or bot) aims it forward. Per spec.md §6's input contract.
func (r *RaceState) useItemFor(slot int32, fireForward bool) {
	k := &r.Karts[slot]
	if item.IsProjectileTag(k.Item) && !fireForward {
		return
	}
	others := make([]item.RankedKart, r.CarCount)
	for i := int32(0); i < r.CarCount; i++ {
		others[i] = item.RankedKart{Index: i, Rank: r.Karts[i].Rank, Kart: &r.Karts[i]}
	}
	r.Items.UseItem(slot, k, k.Rank, others)
}

// tryPickupLocal checks the local kart against every active item box; on
// overlap the drawn tag fills the kart's inventory slot, per spec.md
// §4.4's "only the local player's pickup grants an inventory item."
func (r *RaceState) tryPickupLocal() {
	local := &r.Karts[r.PlayerIndex]
	if local.Item != kart.ItemNone {
		return
	}
	if _, tag, ok := r.Items.TryPickupBox(local.Position, local.Rank); ok {
		local.Item = tag
	}
}
