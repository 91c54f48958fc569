package race

import "sync/atomic"

// KartSnapshot is one racer's read-only render state.
type KartSnapshot struct {
	Name     string
	Position struct{ X, Y int32 } // Q16.8 raw, per spec.md §6 renderer contract
	Angle    int32
	Speed    int32
	Rank     int32
	Lap      int32
	Item     int32

	LastLapMs   int32
	BestLapMs   int32
	GapToLeader float64
	GapToAhead  float64
}

// TrackItemSnapshot is one live projectile or hazard's render state.
type TrackItemSnapshot struct {
	Position struct{ X, Y int32 }
	Angle    int32
	Tag      int32
	Active   bool
}

// ItemBoxSnapshot is one item-box spawn's render state.
type ItemBoxSnapshot struct {
	Position struct{ X, Y int32 }
	Active   bool
}

// EffectsSnapshot mirrors the local player's status effects.
type EffectsSnapshot struct {
	ConfusionActive  bool
	SpeedBoostActive bool
	OilSlowActive    bool
}

// Snapshot is the immutable state spec.md §6 says Race_GetState returns:
// the renderer must never mutate it, and never observes a torn read,
// since it only ever reads a fully-published buffer from SnapshotPool.
type Snapshot struct {
	Sequence uint64

	Karts     [MaxCars]KartSnapshot
	CarCount  int32
	Items     []TrackItemSnapshot
	Boxes     []ItemBoxSnapshot
	Effects   EffectsSnapshot

	Phase              Phase
	CountdownActive    bool
	CountdownSecsLeft  int32
	RaceFinished       bool
	ElapsedMs          int64
}

// SnapshotPool triple-buffers Snapshot so the physics tick (the sole
// producer) and the render callback (the sole consumer) never contend
// for a lock, grounded on the same acquire-write/publish/acquire-read
// scheme a fighting-game engine in the example pack uses for its own
// per-frame GameSnapshot.
type SnapshotPool struct {
	buffers  [3]Snapshot
	writeIdx uint32
	readIdx  uint32
	sequence uint64
}

// NewSnapshotPool builds an empty triple buffer.
func NewSnapshotPool() *SnapshotPool {
	return &SnapshotPool{}
}

func (p *SnapshotPool) acquireWrite() *Snapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.buffers[idx]
	snap.Items = snap.Items[:0]
	snap.Boxes = snap.Boxes[:0]
	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	return snap
}

func (p *SnapshotPool) publishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// Snapshot returns the most recently published buffer. Safe to call
// concurrently with the physics tick; it never observes a half-written
// buffer because readIdx only advances after a write is complete.
func (r *RaceState) Snapshot() *Snapshot {
	idx := atomic.LoadUint32(&r.snapshots.readIdx) % 3
	return &r.snapshots.buffers[idx]
}

// publishSnapshot fills the next write buffer from current state and
// publishes it, called once at the end of every Tick.
func (r *RaceState) publishSnapshot() {
	snap := r.snapshots.acquireWrite()
	snap.CarCount = r.CarCount
	snap.Phase = r.Phase
	snap.CountdownActive = r.Phase == Countdown
	snap.CountdownSecsLeft = r.countdownTicksLeft / RaceTickFreq
	snap.RaceFinished = r.Phase == Finished
	snap.ElapsedMs = r.elapsedMs
	snap.Effects = EffectsSnapshot{
		ConfusionActive:  r.Items.Effects.ConfusionActive,
		SpeedBoostActive: r.Items.Effects.SpeedBoostActive,
		OilSlowActive:    r.Items.Effects.OilSlowActive,
	}

	for i := int32(0); i < r.CarCount; i++ {
		k := &r.Karts[i]
		snap.Karts[i] = KartSnapshot{
			Name:      k.Name,
			Angle:     int32(k.Angle),
			Speed:     int32(k.Speed),
			Rank:      k.Rank,
			Lap:       k.Lap,
			Item:      int32(k.Item),
			LastLapMs: k.LastLapMs,
			BestLapMs: k.BestLapMs,
		}
		snap.Karts[i].Position.X = int32(k.Position.X)
		snap.Karts[i].Position.Y = int32(k.Position.Y)
	}

	for _, gap := range r.Gaps() {
		snap.Karts[gap.Slot].GapToLeader = gap.GapToLeader
		snap.Karts[gap.Slot].GapToAhead = gap.GapToAhead
	}

	for i := range r.Items.TrackItems {
		ti := &r.Items.TrackItems[i]
		if !ti.Active {
			continue
		}
		var ts TrackItemSnapshot
		ts.Position.X = int32(ti.Position.X)
		ts.Position.Y = int32(ti.Position.Y)
		ts.Angle = int32(ti.Angle)
		ts.Tag = int32(ti.Tag)
		ts.Active = true
		snap.Items = append(snap.Items, ts)
	}

	for i := range r.Items.Boxes {
		box := &r.Items.Boxes[i]
		var bs ItemBoxSnapshot
		bs.Position.X = int32(box.Position.X)
		bs.Position.Y = int32(box.Position.Y)
		bs.Active = box.Active
		snap.Boxes = append(snap.Boxes, bs)
	}

	r.snapshots.publishWrite()
}
