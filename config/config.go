// Package config resolves run settings from a .env file, NPCSTACK_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envDebug     = "NPCSTACK_DEBUG"
	envStrict    = "NPCSTACK_STRICT"
	envTPS       = "NPCSTACK_TPS"
	envPrefabs   = "NPCSTACK_PREFABS"
	envWatch     = "NPCSTACK_WATCH"
	envTelemetry = "NPCSTACK_TELEMETRY"

	MaxTPS = 240
)

type Config struct {
	Debug bool
	// Strict panics on invariant violations instead of logging them.
	Strict bool
	TPS    int
	// Prefabs is the directory checked for prefab overrides.
	Prefabs   string
	Watch     bool
	Telemetry bool
}

func Default() Config {
	return Config{TPS: 60, Prefabs: "prefabs"}
}

// Load reads ./.env, the environment and args.
func Load(args []string) (Config, error) {
	return LoadFile(".env", args)
}

// LoadFile is Load with an explicit .env path. A missing file is ignored.
// Variables already set in the process environment win over the file.
func LoadFile(envFile string, args []string) (Config, error) {
	env := map[string]string{}
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			env = fileEnv
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", envFile, err)
		}
	}
	for _, key := range []string{envDebug, envStrict, envTPS, envPrefabs, envWatch, envTelemetry} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return Parse(env, args)
}

// Parse builds a Config from env and then args.
func Parse(env map[string]string, args []string) (Config, error) {
	cfg := Default()

	var err error
	if cfg.Debug, err = envBool(env, envDebug, cfg.Debug); err != nil {
		return Config{}, err
	}
	if cfg.Strict, err = envBool(env, envStrict, cfg.Strict); err != nil {
		return Config{}, err
	}
	if cfg.Watch, err = envBool(env, envWatch, cfg.Watch); err != nil {
		return Config{}, err
	}
	if cfg.Telemetry, err = envBool(env, envTelemetry, cfg.Telemetry); err != nil {
		return Config{}, err
	}
	if v, ok := env[envTPS]; ok && strings.TrimSpace(v) != "" {
		tps, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", envTPS, err)
		}
		cfg.TPS = tps
	}
	if v, ok := env[envPrefabs]; ok {
		cfg.Prefabs = v
	}

	flags := flag.NewFlagSet("npcstack", flag.ContinueOnError)
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "draw proximity radii and log state changes")
	flags.BoolVar(&cfg.Strict, "strict", cfg.Strict, "panic on invariant violations")
	flags.IntVar(&cfg.TPS, "tps", cfg.TPS, "simulation ticks per second")
	flags.StringVar(&cfg.Prefabs, "prefabs", cfg.Prefabs, "prefab override directory (empty to use embedded prefabs only)")
	flags.BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload prefabs when they change on disk")
	flags.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "export navigation spans over OTLP/HTTP")
	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TPS < 1 || c.TPS > MaxTPS {
		return fmt.Errorf("config: tps must be in 1..%d, got %d", MaxTPS, c.TPS)
	}
	if c.Watch && c.Prefabs == "" {
		return fmt.Errorf("config: -watch needs a prefab directory")
	}
	return nil
}

func envBool(env map[string]string, key string, def bool) (bool, error) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}
