package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/onsideagency/touchline/internal/highlights"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	now := time.Now().Unix()

	// One player with a legacy flat-array document and one with the
	// partitioned shape, so both read paths get exercised.
	legacyDoc, _ := json.Marshal([]highlights.Clip{
		{ID: "seed-clip-1", Name: "Volley winner", VideoURL: "https://blob.example/seed1.mp4"},
		{ID: "seed-clip-2", Name: "Free kick", VideoURL: "https://blob.example/seed2.mp4"},
	})
	partitionedDoc, _ := json.Marshal(map[string][]highlights.Clip{
		"matchHighlights": {
			{ID: "seed-clip-3", Name: "Derby assist", VideoURL: "https://blob.example/seed3.mp4"},
		},
		"bestClips": {
			{ID: "seed-clip-4", Name: "Season opener goal", VideoURL: "https://blob.example/seed4.mp4"},
		},
	})

	seedPlayers := []struct {
		id, name, position, club string
		highlights               []byte
	}{
		{"seed-player-1", "Seeder Player A", "Striker", "Seeded FC", legacyDoc},
		{"seed-player-2", "Seeder Player B", "Midfielder", "Seeded FC", partitionedDoc},
		{"seed-player-3", "Seeder Player C", "Defender", "Example United", nil},
	}

	for _, p := range seedPlayers {
		_, err := db.Exec(`INSERT OR IGNORE INTO players (id, name, position, club, highlights, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, p.id, p.name, p.position, p.club, p.highlights, now, now)
		if err != nil {
			log.Fatalf("Failed to insert seed player %s: %s", p.name, err)
		}
	}
	log.Info("Ensured seed players exist.")

	const batchSize = 100
	const numFixtures = 1000

	log.Info("Preparing to insert dummy fixtures...", "total", numFixtures, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	opponents := []string{"Example United", "Sample Rovers", "Placeholder Athletic", "Demo Wanderers"}
	results := []string{"W", "D", "L"}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*10) // 10 columns per fixture

	for i := 0; i < numFixtures; i++ {
		fixtureTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		goalsFor := rand.Intn(5)
		goalsAgainst := rand.Intn(5)
		result := results[rand.Intn(len(results))]

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			seedPlayers[i%len(seedPlayers)].id,
			fixtureTime.Format("2006-01-02"),
			opponents[rand.Intn(len(opponents))],
			i%2 == 0,
			"League",
			goalsFor,
			goalsAgainst,
			result,
			fixtureTime.Unix(),
		)

		if (i+1)%batchSize == 0 || (i+1) == numFixtures {
			stmt := fmt.Sprintf(`
				INSERT INTO player_fixtures (id, player_id, fixture_date, opponent, home, competition,
					goals_for, goals_against, result, created_at)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*10)
			log.Info("Inserted batch", "completed", i+1, "total", numFixtures)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy fixtures.", "duration", duration)
}
