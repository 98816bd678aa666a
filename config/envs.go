package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is wrapped by every error Load returns.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application's configuration values.
type Config struct {
	HostIP           string // Host IP for the server
	RESTPort         int    // Port for the REST API
	GinMode          string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret        string // Secret key for JWT signing
	JWTIssuer        string // Issuer claim for JWTs
	JWTTTLMinutes    int    // Lifetime of issued tokens
	OperatorName     string // Name of the account allowed to drive generation
	OperatorPassword string // Password of that account
	RedisAddr        string // Address of the Redis server; empty disables event publishing
	RedisPassword    string // Password for Redis
	RedisDB          int    // Redis database index
	RedisChannel     string // Channel generation events are published on
	Maze             MazeConfig
}

// MazeConfig holds the parameters the first generation starts with.
type MazeConfig struct {
	Width         int
	Height        int
	OriginX       int
	OriginY       int
	StepBudget    int   // Walls removed per tick
	Seed          int64 // 0 seeds from the clock
	TickMS        int   // Milliseconds between ticks
	CellSize      int   // Pixel pitch between neighboring cells
	WallThickness int
	WindowWidth   int
	WindowHeight  int
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	cfg, err := Load(os.LookupEnv)
	if err != nil {
		log.Fatalf("[APP] [FATAL] %v", err)
	}
	return cfg
}

// Load builds a Config from lookup, applying defaults for unset keys.
func Load(lookup func(string) (string, bool)) (Config, error) {
	e := env{lookup: lookup}
	cfg := Config{
		HostIP:           e.getString("HOST_IP", "0.0.0.0"),
		RESTPort:         e.getInt("REST_PORT", 8080),
		GinMode:          e.getString("GIN_MODE", "release"),
		JWTSecret:        e.getString("JWT_SECRET", ""),
		JWTIssuer:        e.getString("JWT_ISSUER", "vinom-maze"),
		JWTTTLMinutes:    e.getInt("JWT_TTL_MINUTES", 60),
		OperatorName:     e.getString("OPERATOR_NAME", "operator"),
		OperatorPassword: e.getString("OPERATOR_PASSWORD", ""),
		RedisAddr:        e.getString("REDIS_ADDR", ""),
		RedisPassword:    e.getString("REDIS_PASSWORD", ""),
		RedisDB:          e.getInt("REDIS_DB", 0),
		RedisChannel:     e.getString("REDIS_CHANNEL", "vinom-maze:events"),
		Maze: MazeConfig{
			Width:         e.getInt("MAZE_WIDTH", 10),
			Height:        e.getInt("MAZE_HEIGHT", 10),
			OriginX:       e.getInt("MAZE_ORIGIN_X", 0),
			OriginY:       e.getInt("MAZE_ORIGIN_Y", 0),
			StepBudget:    e.getInt("MAZE_STEP_BUDGET", 1),
			Seed:          e.getInt64("MAZE_SEED", 0),
			TickMS:        e.getInt("MAZE_TICK_MS", 16),
			CellSize:      e.getInt("MAZE_CELL_SIZE", 20),
			WallThickness: e.getInt("MAZE_WALL_THICKNESS", 10),
			WindowWidth:   e.getInt("MAZE_WINDOW_WIDTH", 1190),
			WindowHeight:  e.getInt("MAZE_WINDOW_HEIGHT", 690),
		},
	}
	if e.err != nil {
		return Config{}, e.err
	}

	for _, check := range []struct {
		key   string
		value int
	}{
		{"REST_PORT", cfg.RESTPort},
		{"JWT_TTL_MINUTES", cfg.JWTTTLMinutes},
		{"MAZE_WIDTH", cfg.Maze.Width},
		{"MAZE_HEIGHT", cfg.Maze.Height},
		{"MAZE_STEP_BUDGET", cfg.Maze.StepBudget},
		{"MAZE_TICK_MS", cfg.Maze.TickMS},
		{"MAZE_CELL_SIZE", cfg.Maze.CellSize},
		{"MAZE_WALL_THICKNESS", cfg.Maze.WallThickness},
	} {
		if check.value <= 0 {
			return Config{}, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, check.key, check.value)
		}
	}
	return cfg, nil
}

// env reads typed values and keeps the first parse error.
type env struct {
	lookup func(string) (string, bool)
	err    error
}

// getString retrieves the value of an environment variable or returns a default value if not set.
func (e *env) getString(key, defaultValue string) string {
	if value, exists := e.lookup(key); exists {
		return value
	}
	return defaultValue
}

func (e *env) getInt(key string, defaultValue int) int {
	return int(e.getInt64(key, int64(defaultValue)))
}

func (e *env) getInt64(key string, defaultValue int64) int64 {
	valueStr, exists := e.lookup(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, err)
	}
	return value
}
