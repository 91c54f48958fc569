// Command kartmania drives one local race to completion: it selects a
// map and mode, wires up a RaceState, a TickDriver, and (in multiplayer)
// a netplay.Peer, then runs until the race finishes and exports
// results. Grounded on the teacher's server/main.go's NewCarServer then
// grpcServer.Serve(lis), reworked from "serve gRPC forever" to "drive
// one local race to completion and exit".
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/netplay"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/race"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/raceio"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/telemetry"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/tickdriver"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/worldmap"
)

func mapByName(name string) worldmap.MapID {
	if name == "scorching-sands" {
		return worldmap.ScorchingSands
	}
	return worldmap.NoMap
}

func main() {
	mapName := flag.String("map", "scorching-sands", "map to race on")
	mode := flag.String("mode", "single", "single or multi")
	cars := flag.Int("cars", 4, "number of karts, including the local player")
	laps := flag.Int("laps", 3, "total laps")
	seed := flag.Int64("seed", time.Now().UnixNano(), "deterministic RNG seed")
	selfID := flag.Int("self-id", 0, "this peer's slot id (multiplayer only)")
	out := flag.String("out", "", "directory to write results.csv/standings.csv into; empty disables export")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		telemetry.Configure(os.Stderr, zerolog.DebugLevel)
	}

	m := mapByName(*mapName)
	if m == worldmap.NoMap {
		telemetry.Log.Fatal().Str("map", *mapName).Msg("unknown map")
	}

	raceMode := race.SinglePlayer
	if *mode == "multi" {
		raceMode = race.MultiPlayer
	}

	var names [race.MaxCars]string
	names[0] = "Player"
	for i := 1; i < *cars && i < race.MaxCars; i++ {
		names[i] = botNameFor(i)
	}

	r := race.New()
	if err := r.Init(m, raceMode, int32(*cars), int32(*selfID), names, *seed); err != nil {
		telemetry.Log.Fatal().Err(err).Msg("race init failed")
	}
	r.TotalLaps = int32(*laps)

	recorder := raceio.NewRecorder(names, r.CarCount)

	var peer *netplay.Peer
	if raceMode == race.MultiPlayer {
		p, err := netplay.NewPeer(byte(*selfID))
		if err != nil {
			telemetry.Log.Fatal().Err(err).Msg("netplay open failed")
		}
		peer = p
		defer peer.Close()
		if err := peer.JoinLobby(); err != nil {
			telemetry.Log.Warn().Err(err).Msg("lobby join broadcast failed")
		}
	}

	localInput := headlessInputStub()

	finished := make(chan struct{})
	driver := tickdriver.New(
		func() { physicsStep(r, localInput, peer, recorder) },
		func(elapsedMs int64) { r.AdvanceElapsed(1) },
	)
	driver.Init()

	go func() {
		for r.Snapshot().Phase != race.Finished {
			time.Sleep(10 * time.Millisecond)
		}
		close(finished)
	}()
	<-finished
	driver.Stop()

	telemetry.Log.Info().Msg("race finished")

	if *out != "" {
		if err := recorder.WriteResults(*out, r); err != nil {
			telemetry.Log.Error().Err(err).Msg("writing results failed")
		}
	}
}

func botNameFor(slot int) string {
	names := []string{"Rusty", "Volt", "Breeze", "Comet", "Dash", "Ember", "Glint"}
	return names[(slot-1)%len(names)]
}

// headlessInputStub produces a steady accelerate input, standing in for
// a real input device since cmd/kartmania has no renderer attached. A
// caller embedding this process wiring in a real client replaces this
// with a channel fed by actual controller state.
func headlessInputStub() race.InputSnapshot {
	return race.InputSnapshot{Accelerate: true}
}

func physicsStep(r *race.RaceState, input race.InputSnapshot, peer *netplay.Peer, rec *raceio.Recorder) {
	if peer != nil {
		peer.PumpRace(r)
	}
	r.Tick(input)
	if peer != nil {
		peer.BroadcastCarState(&r.Karts[r.PlayerIndex], r.Karts[r.PlayerIndex].Lap)
	}
	if r.Phase == race.Running {
		rec.Observe(r, r.Snapshot().ElapsedMs)
	}
}
