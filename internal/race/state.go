// Package race owns RaceState: the kart array, checkpoint list, item
// system, lap target and lifecycle state machine, and drives the
// per-tick pipeline spec.md §4.3 and §5 describe. It is the one place
// in the core that mutates shared, process-wide state; the renderer and
// the lobby/network layer only read it back through Snapshot.
package race

import (
	"fmt"
	"sync"

	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/botai"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/item"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/telemetry"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/worldmap"
)

// MaxCars is the fixed size of the kart array, per spec.md §3.
const MaxCars = 8

// RaceTickFreq is the physics clock rate TickDriver schedules Tick at.
const RaceTickFreq = 60

// CountdownTicks is how long the COUNTDOWN phase holds before RUNNING,
// expressed at RaceTickFreq (3 seconds).
const CountdownTicks = 3 * RaceTickFreq

// Mode selects whether non-local slots are bot- or network-driven.
type Mode int

const (
	SinglePlayer Mode = iota
	MultiPlayer
)

// Phase is RaceState's lifecycle state, per spec.md §4.3's state machine.
type Phase int

const (
	Uninitialized Phase = iota
	Ready
	Countdown
	Running
	Finished
)

func (p Phase) String() string {
	switch p {
	case Ready:
		return "READY"
	case Countdown:
		return "COUNTDOWN"
	case Running:
		return "RUNNING"
	case Finished:
		return "FINISHED"
	default:
		return "UNINITIALIZED"
	}
}

// RaceState is the singleton-per-race owned value spec.md §9 asks a
// rewrite to collect explicitly instead of scattering as globals.
type RaceState struct {
	Phase Phase
	Mode  Mode

	Karts    [MaxCars]kart.Kart
	CarCount int32
	// PlayerIndex is the slot local input controls.
	PlayerIndex int32

	TotalLaps int32
	Paused    bool

	mapID       worldmap.MapID
	checkpoints []worldmap.CheckpointBox
	walls       *worldmap.WallMap

	Items *item.System

	countdownTicksLeft int32
	elapsedMs          int64

	bots [MaxCars]*botai.Controller

	pendingPlacements []netPlacement
	pendingPickups    []int32

	snapshots *SnapshotPool

	// mu serializes TickDriver's two independent clocks: the physics
	// tick (Tick) and the chronometer (AdvanceElapsed) both write
	// RaceState fields (elapsedMs, Paused) from separate goroutines, per
	// spec.md §5's "lock, single-writer scheme, or strict interleaving"
	// shared-resource policy.
	mu sync.Mutex
}

type netPlacement struct {
	tag   kart.ItemTag
	pos   fixedmath.Vec2
	angle fixedmath.Angle
	speed fixedmath.Q16_8
}

// New constructs an uninitialized RaceState ready for Init.
func New() *RaceState {
	return &RaceState{Phase: Uninitialized, snapshots: NewSnapshotPool()}
}

// Init loads the chosen map, seeds kart spawns (peer N occupies spawn N),
// sets the lap target, and transitions to READY -> COUNTDOWN. playerIndex
// selects which slot local input drives. carCount is MaxCars in
// MultiPlayer (unconnected slots sit at spawn until packets arrive) or
// the number of active racers in SinglePlayer. seed drives the item
// system's PRNG and each bot controller's mistake generator.
//
// Init is the one fatal-capable entry point spec.md §7 names: an unknown
// map returns a non-nil error and leaves RaceState untouched.
func (r *RaceState) Init(mapID worldmap.MapID, mode Mode, carCount, playerIndex int32, names [MaxCars]string, seed int64) error {
	m, err := worldmap.LoadMap(mapID)
	if err != nil {
		return fmt.Errorf("race: init: %w", err)
	}

	if carCount < 1 {
		carCount = 1
	}
	if carCount > MaxCars {
		carCount = MaxCars
	}

	r.mapID = mapID
	r.checkpoints = m.Checkpoints
	r.walls = m.Walls
	r.Mode = mode
	r.CarCount = carCount
	r.PlayerIndex = playerIndex
	r.TotalLaps = m.LapCount
	r.Paused = false

	for i := int32(0); i < MaxCars; i++ {
		name := names[i]
		if name == "" {
			name = fmt.Sprintf("CPU-%d", i+1)
		}
		r.Karts[i].Init(m.SpawnPoints[i], name, fixedmath.IntToFixed(10), fixedmath.IntToFixed(1), fixedmath.FixedDiv(fixedmath.IntToFixed(49), fixedmath.IntToFixed(50)))
		r.bots[i] = nil
	}

	if mode == SinglePlayer {
		for i := int32(0); i < carCount; i++ {
			if i == playerIndex {
				continue
			}
			r.bots[i] = botai.NewController(seed+int64(i), botai.DefaultTuning())
		}
	}

	r.Items = item.NewSystem(m.ItemBoxSpawns, seed, playerIndex)
	r.pendingPlacements = nil
	r.pendingPickups = nil
	r.elapsedMs = 0

	r.Phase = Ready
	r.countdownTicksLeft = CountdownTicks
	r.Phase = Countdown

	telemetry.Log.Info().Str("map", mapID.String()).Int32("carCount", carCount).Msg("race initialized")
	return nil
}

// Reset re-seeds positions and returns to READY -> COUNTDOWN from any
// phase, per spec.md §4.3's Race_Reset.
func (r *RaceState) Reset() error {
	if r.mapID == worldmap.NoMap {
		return fmt.Errorf("race: reset called before init")
	}
	m, err := worldmap.LoadMap(r.mapID)
	if err != nil {
		return fmt.Errorf("race: reset: %w", err)
	}
	for i := int32(0); i < MaxCars; i++ {
		r.Karts[i].Reset(m.SpawnPoints[i])
	}
	r.Items.Reset(m.ItemBoxSpawns)
	r.pendingPlacements = nil
	r.pendingPickups = nil
	r.elapsedMs = 0
	r.Paused = false
	r.countdownTicksLeft = CountdownTicks
	r.Phase = Countdown
	return nil
}

// Stop cancels the race and returns to UNINITIALIZED.
func (r *RaceState) Stop() {
	r.Phase = Uninitialized
}

// PauseToggle flips paused; the tick stays scheduled but Tick becomes a
// no-op while paused, per spec.md §4.3.
func (r *RaceState) PauseToggle() {
	r.Paused = !r.Paused
}

// AdvanceElapsed is driven by TickDriver's independent 1000Hz
// chronometer, not the physics tick, so pausing physics alone does not
// freeze the displayed clock unless Paused is also set.
func (r *RaceState) AdvanceElapsed(ms int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Paused {
		return
	}
	r.elapsedMs += ms
}
