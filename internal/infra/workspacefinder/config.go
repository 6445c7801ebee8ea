package workspacefinder

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/config"
	"github.com/joho/godotenv"
)

// Environment variables that override sweep settings.
const (
	EnvSolver   = "AEROGRID_SOLVER"
	EnvLauncher = "AEROGRID_LAUNCHER"
	EnvProcs    = "AEROGRID_PROCS"
)

// LoadConfig loads aerogrid.yaml from the workspace root, applies defaults,
// then applies overrides from <root>/.env and the process environment (the
// process environment wins).
func LoadConfig(root string) (domain.Config, error) {
	cfg, err := config.LoadConfig(filepath.Join(root, ConfigFileName))
	if err != nil {
		return cfg, err
	}

	envPath := filepath.Join(root, ".env")
	dotenv, err := godotenv.Read(envPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: envPath,
			Err:  err,
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	return ApplyEnv(cfg, lookup)
}

// ApplyEnv overrides sweep settings from lookup.
func ApplyEnv(cfg domain.Config, lookup func(string) (string, bool)) (domain.Config, error) {
	if v, ok := lookup(EnvSolver); ok && strings.TrimSpace(v) != "" {
		cfg.Sweep.Solver = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLauncher); ok {
		cfg.Sweep.Launcher = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvProcs); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.env",
				Kind: domain.KindInvalidConfig,
				Err:  errors.New(EnvProcs + " must be a positive integer, got " + strconv.Quote(v)),
			}
		}
		cfg.Sweep.Procs = n
	}
	return cfg, nil
}
