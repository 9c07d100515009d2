package main

import (
	"fmt"
	"os"

	"chart-challenge/src/config"
	"chart-challenge/src/generator"
	"chart-challenge/src/logger"
	"chart-challenge/src/models"
	"chart-challenge/src/round"
	"chart-challenge/src/storage"
	"chart-challenge/src/utils"
)

// Manual smoke harness: exercises the full generation and round flow
// against a real SQLite file and prints PASS/FAIL per scenario.
func main() {
	// 1. Parse command line flags
	configPath := "../../config/default.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// 2. Load config
	conf, err := config.NewConfig(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// 3. Setup Logger
	appLogger := logger.NewLogger("DEBUG", conf.Name+"-smoke")

	failed := 0
	check := func(name string, ok bool, detail string) {
		if ok {
			fmt.Printf("PASS  %s\n", name)
		} else {
			fmt.Printf("FAIL  %s: %s\n", name, detail)
			failed++
		}
	}

	// 4. Deterministic generation
	ds, err := generator.GenerateWithSeed(conf.Generation, 42)
	check("generate", err == nil, fmt.Sprintf("%v", err))

	if err == nil {
		base := ds[models.Res1m]
		expected := conf.Generation.DaysNeeded * utils.MinutesPerDay
		check("minute count", len(base) == expected,
			fmt.Sprintf("got %d, want %d", len(base), expected))

		first, _ := base.First()
		check("first open", first.Open == conf.Generation.StartPrice,
			fmt.Sprintf("got %v", first.Open))

		baseLast, _ := base.Last()
		for _, res := range models.AllResolutions {
			last, ok := ds[res].Last()
			check("last close "+string(res), ok && last.Close == baseLast.Close,
				fmt.Sprintf("got %v, want %v", last.Close, baseLast.Close))
		}
	}

	// 5. Invalid config rejected before any drawing
	_, err = generator.GenerateWithSeed(models.MGenerationConfig{DaysNeeded: -1}, 42)
	check("invalid config rejected", err != nil, "expected error")

	// 6. Round flow against SQLite
	store, err := storage.NewSQLiteStore(conf.MConfig, appLogger)
	check("sqlite open", err == nil, fmt.Sprintf("%v", err))
	if err == nil {
		defer store.Close()
		check("sqlite migrate", store.Initialize() == nil, "migration failed")

		rounds := round.NewManager(conf, appLogger, store)
		payload, err := rounds.StartRound("smoke-user", conf.Game.Difficulties[0].Name)
		check("start round", err == nil, fmt.Sprintf("%v", err))

		if err == nil {
			result, err := rounds.SubmitGuess(payload.RoundID, "smoke-user", 0, 1500)
			check("submit guess", err == nil, fmt.Sprintf("%v", err))
			if err == nil {
				fmt.Printf("      correct=%v score=%d answer=%s\n",
					result.Correct, result.Score, result.CorrectChoice)
			}

			stats, err := store.GetUserStats("smoke-user")
			check("user stats", err == nil && stats.RoundsPlayed >= 1,
				fmt.Sprintf("err=%v stats=%+v", err, stats))
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d scenario(s) failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("\nall scenarios passed")
}
