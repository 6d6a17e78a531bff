package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	GameAddr string // TCP listen address for the game protocol
	HTTPAddr string // listen address for the admin API / websocket endpoint
}

// Load reads .env (if present) and the environment. All values have
// defaults; nothing here is fatal.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	return Config{
		GameAddr: getEnv("GAME_ADDR", ":4242"),
		HTTPAddr: getEnv("HTTP_ADDR", ":4000"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
