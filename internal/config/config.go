package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	// Optional vars fall back to a default instead of failing.
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: "./migrations",
		Port:          getEnv("PORT"),
		Slack: SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN"),
			ChannelID: getEnv("SLACK_CHANNEL_ID"),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT"),
			AccessKey: getEnv("MINIO_ACCESS_KEY"),
			SecretKey: getEnv("MINIO_SECRET_KEY"),
			Bucket:    getEnvOr("MINIO_BUCKET", "highlights"),
			UseSSL:    getEnvOr("MINIO_USE_SSL", "false") == "true",
		},
		TextGen: TextGenConfig{
			BaseURL: getEnv("TEXTGEN_BASE_URL"),
			APIKey:  getEnvOr("TEXTGEN_API_KEY", ""),
		},
		ProjectID: getEnv("GCP_PROJECT"),
	}
	return cfg
}
