package raceio

import (
	"os"
	"testing"

	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/race"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/worldmap"
)

func newTestRace(t *testing.T) *race.RaceState {
	t.Helper()
	r := race.New()
	var names [race.MaxCars]string
	names[0] = "Alice"
	names[1] = "Bob"
	if err := r.Init(worldmap.ScorchingSands, race.SinglePlayer, 2, 0, names, 7); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for r.Phase == race.Countdown {
		r.Tick(race.InputSnapshot{})
	}
	return r
}

func TestObserveRecordsLapOnIncrement(t *testing.T) {
	r := newTestRace(t)
	var names [race.MaxCars]string
	names[0], names[1] = "Alice", "Bob"
	rec := NewRecorder(names, r.CarCount)

	rec.Observe(r, 0)
	if len(rec.tracked[0].laps) != 0 {
		t.Fatalf("expected no laps recorded yet, got %d", len(rec.tracked[0].laps))
	}

	r.Karts[0].Lap = 1
	rec.Observe(r, 15000)
	if len(rec.tracked[0].laps) != 1 {
		t.Fatalf("expected one lap recorded after increment, got %d", len(rec.tracked[0].laps))
	}
	if rec.tracked[0].laps[0].LapMs != 15000 {
		t.Errorf("expected lap_ms 15000, got %d", rec.tracked[0].laps[0].LapMs)
	}
}

func TestStandingsOrderedByRank(t *testing.T) {
	r := newTestRace(t)
	var names [race.MaxCars]string
	names[0], names[1] = "Alice", "Bob"
	rec := NewRecorder(names, r.CarCount)

	standings := rec.Standings(r)
	if len(standings) != 2 {
		t.Fatalf("expected 2 standings, got %d", len(standings))
	}
	if standings[0].Rank > standings[1].Rank {
		t.Errorf("expected standings sorted by rank ascending, got %+v", standings)
	}
}

func TestWriteResultsProducesBothFiles(t *testing.T) {
	r := newTestRace(t)
	var names [race.MaxCars]string
	names[0], names[1] = "Alice", "Bob"
	rec := NewRecorder(names, r.CarCount)
	rec.Observe(r, 0)

	dir := t.TempDir()
	if err := rec.WriteResults(dir, r); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	for _, name := range []string{"standings.csv", "results.csv"} {
		if _, err := os.Stat(dir + "/" + name); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}
