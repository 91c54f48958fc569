package worldmap

import (
	_ "embed"
	"fmt"

	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
	"gopkg.in/yaml.v3"
)

// MapID identifies one of the track maps the core ships with.
type MapID int

const (
	NoMap MapID = iota
	ScorchingSands
	AlpineRush
	NeonCircuit
)

func (m MapID) String() string {
	switch m {
	case ScorchingSands:
		return "ScorchingSands"
	case AlpineRush:
		return "AlpineRush"
	case NeonCircuit:
		return "NeonCircuit"
	default:
		return "NoMap"
	}
}

// CheckpointBox is an axis-aligned rectangle; crossing them in order
// advances a kart's lastCheckpoint, per spec.md §3.
type CheckpointBox struct {
	TopLeft     fixedmath.Vec2
	BottomRight fixedmath.Vec2
}

// Contains reports whether p falls within the checkpoint rectangle.
func (c CheckpointBox) Contains(p fixedmath.Vec2) bool {
	return p.X >= c.TopLeft.X && p.X <= c.BottomRight.X &&
		p.Y >= c.TopLeft.Y && p.Y <= c.BottomRight.Y
}

// Center returns the rectangle's midpoint, used for distance-to-next-
// checkpoint rank tie-breaking.
func (c CheckpointBox) Center() fixedmath.Vec2 {
	return fixedmath.Vec2{
		X: (c.TopLeft.X + c.BottomRight.X) / 2,
		Y: (c.TopLeft.Y + c.BottomRight.Y) / 2,
	}
}

// ItemBoxSpawnPoint is a fixed location where an item-box pickup can spawn.
type ItemBoxSpawnPoint struct {
	Position fixedmath.Vec2
}

// Map is everything Race_Init needs to seed a race: checkpoints, walls,
// spawn positions, lap count and item-box spawns.
type Map struct {
	ID            MapID
	Checkpoints   []CheckpointBox
	Walls         *WallMap
	SpawnPoints   [8]fixedmath.Vec2
	LapCount      int32
	ItemBoxSpawns []ItemBoxSpawnPoint
}

// yamlMap mirrors the on-disk map document shape; integer world units are
// converted to Q16.8 on load so the embedded data stays human-editable.
type yamlMap struct {
	LapCount int32 `yaml:"lap_count"`
	Spawns   []struct {
		X int32 `yaml:"x"`
		Y int32 `yaml:"y"`
	} `yaml:"spawns"`
	Checkpoints []struct {
		X1 int32 `yaml:"x1"`
		Y1 int32 `yaml:"y1"`
		X2 int32 `yaml:"x2"`
		Y2 int32 `yaml:"y2"`
	} `yaml:"checkpoints"`
	Walls []struct {
		X1 int32 `yaml:"x1"`
		Y1 int32 `yaml:"y1"`
		X2 int32 `yaml:"x2"`
		Y2 int32 `yaml:"y2"`
		NX int32 `yaml:"nx"`
		NY int32 `yaml:"ny"`
	} `yaml:"walls"`
	ItemBoxes []struct {
		X int32 `yaml:"x"`
		Y int32 `yaml:"y"`
	} `yaml:"item_boxes"`
}

//go:embed data/scorching_sands.yaml
var scorchingSandsYAML []byte

//go:embed data/alpine_rush.yaml
var alpineRushYAML []byte

//go:embed data/neon_circuit.yaml
var neonCircuitYAML []byte

// LoadMap decodes the embedded YAML for id and returns the assembled Map.
// An unknown id is the one fatal condition spec.md §7 calls out for
// Race_Init: it returns a non-nil error rather than a zero Map.
func LoadMap(id MapID) (*Map, error) {
	var raw []byte
	switch id {
	case ScorchingSands:
		raw = scorchingSandsYAML
	case AlpineRush:
		raw = alpineRushYAML
	case NeonCircuit:
		raw = neonCircuitYAML
	default:
		return nil, fmt.Errorf("worldmap: unknown map id %d", id)
	}

	var doc yamlMap
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("worldmap: parse map %s: %w", id, err)
	}

	m := &Map{ID: id, LapCount: doc.LapCount}

	for i, s := range doc.Spawns {
		if i >= len(m.SpawnPoints) {
			break
		}
		m.SpawnPoints[i] = fixedmath.Vec2{X: fixedmath.IntToFixed(s.X), Y: fixedmath.IntToFixed(s.Y)}
	}

	for _, c := range doc.Checkpoints {
		m.Checkpoints = append(m.Checkpoints, CheckpointBox{
			TopLeft:     fixedmath.Vec2{X: fixedmath.IntToFixed(c.X1), Y: fixedmath.IntToFixed(c.Y1)},
			BottomRight: fixedmath.Vec2{X: fixedmath.IntToFixed(c.X2), Y: fixedmath.IntToFixed(c.Y2)},
		})
	}

	var segments []WallSegment
	for _, w := range doc.Walls {
		normal := fixedmath.Vec2{X: fixedmath.IntToFixed(w.NX), Y: fixedmath.IntToFixed(w.NY)}.Normalize()
		segments = append(segments, WallSegment{
			A:      fixedmath.Vec2{X: fixedmath.IntToFixed(w.X1), Y: fixedmath.IntToFixed(w.Y1)},
			B:      fixedmath.Vec2{X: fixedmath.IntToFixed(w.X2), Y: fixedmath.IntToFixed(w.Y2)},
			Normal: normal,
		})
	}
	m.Walls = NewWallMap(segments)

	for _, b := range doc.ItemBoxes {
		m.ItemBoxSpawns = append(m.ItemBoxSpawns, ItemBoxSpawnPoint{
			Position: fixedmath.Vec2{X: fixedmath.IntToFixed(b.X), Y: fixedmath.IntToFixed(b.Y)},
		})
	}

	return m, nil
}
