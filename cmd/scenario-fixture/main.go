// Command scenario-fixture prints the scripted analysis response as JSON so
// the map frontend can be developed without the server or a model key.
package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mr1hm/mycelium/internal/assembler"
	"github.com/mr1hm/mycelium/internal/gemini"
	"github.com/mr1hm/mycelium/internal/logging"
	"github.com/mr1hm/mycelium/internal/models"
	"github.com/mr1hm/mycelium/internal/scenario"
)

func main() {
	_ = godotenv.Load()

	path := flag.String("scenario", os.Getenv("SCENARIO_PATH"), "YAML scenario override")
	indent := flag.Bool("indent", true, "pretty-print output")
	flag.Parse()

	logging.SetupWriter(os.Stderr, os.Getenv("LOG_LEVEL"))

	table, err := scenario.Load(*path)
	if err != nil {
		logging.Fatalf("Failed to load scenario: %v", err)
	}

	resp := assembler.Build(table, gemini.Outcome{Status: models.AIStatusSkipped}, time.Now())

	enc := json.NewEncoder(os.Stdout)
	if *indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(resp); err != nil {
		logging.Fatalf("Failed to encode fixture: %v", err)
	}
	slog.Debug("fixture written", "scenario", *path)
}
