package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/tactics-engine/internal/clients/dnd5e"
	"github.com/KirkDiggler/tactics-engine/internal/config"
	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/scripts/core"
)

// scriptedSpells maps SRD spell keys onto the built-in scripts
var scriptedSpells = map[string]string{
	"fireball": core.FireballID,
	"bless":    core.BlessID,
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	class := flag.String("class", cfg.DND5E.ImportClass, "class whose spells are imported")
	out := flag.String("out", "", "output file, stdout when empty")
	flag.Parse()

	client, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    cfg.DND5E.BaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to create D&D 5e client: %v", err)
	}

	importer := dnd5e.NewImporter(&dnd5e.ImporterConfig{
		Client:  client,
		Scripts: scriptedSpells,
	})

	defs, err := importer.ImportClass(*class)
	if err != nil {
		log.Fatalf("Failed to import %s spells: %v", *class, err)
	}

	// Make sure the output loads before writing it
	rules := ability.NewRuleset()
	if err := rules.RegisterAll(*class, defs); err != nil {
		log.Printf("Some imported spells are invalid: %v", err)
	}

	data, err := json.MarshalIndent(defs, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode definitions: %v", err)
	}
	data = append(data, '\n')

	if *out == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatalf("Failed to write definitions: %v", err)
		}
		return
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", filepath.Dir(*out), err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %d %s spells to %s", len(defs), *class, *out)
}
