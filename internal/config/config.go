// Package config collects the assistant's environment configuration.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every runtime setting, loaded once at startup and passed
// explicitly to the components that need it.
type Config struct {
	// MCPBaseURL is the address of the recipe/shopping-list service.
	MCPBaseURL string
	// Model is the Gemini model name used for completions.
	Model string
	// MongoURI enables durable session history when non-empty.
	MongoURI string
	// MongoDB is the database name used with MongoURI.
	MongoDB string
	// PlansDir is where generated meal-plan documents are written.
	PlansDir string
	// MaxTurns bounds model/tool alternations within one user turn.
	MaxTurns int
	// Verbose enables per-tool-call tracing on the display.
	Verbose bool
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() Config {
	return Config{
		MCPBaseURL: getenv("MCP_BASE_URL", "http://localhost:8001"),
		Model:      getenv("MODEL", "gemini-2.5-flash"),
		MongoURI:   os.Getenv("MONGODB_URI"),
		MongoDB:    getenv("MONGODB_DB", "rohbot"),
		PlansDir:   getenv("PLANS_DIR", "plans"),
		MaxTurns:   getenvInt("MAX_TURNS", 50),
		Verbose:    getenvBool("VERBOSE"),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func getenvBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
