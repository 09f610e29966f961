package cmd

import (
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptix/internal/ageclass"
	"github.com/abhisek/adaptix/internal/config"
	"github.com/abhisek/adaptix/internal/difficulty"
	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/logger"
	"github.com/abhisek/adaptix/internal/personalization"
	"github.com/abhisek/adaptix/internal/store"
	"github.com/abhisek/adaptix/internal/templates"
)

var rootCmd = &cobra.Command{
	Use:   "adaptix",
	Short: "Adaptive learning engine for math practice",
	Long:  "Adaptix tracks per-session performance, infers the learner's age bracket and trends, and generates difficulty-adapted math problems and recommendations.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ADAPTIX_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Learner id (overrides ADAPTIX_USER env var)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then ADAPTIX_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// env bundles everything a command needs: config, logger, the open
// store, and the orchestrator wired over it.
type env struct {
	cfg   config.Config
	log   *logger.Logger
	st    *store.Store
	orch  *personalization.Orchestrator
	track *store.SessionRepo
}

func (e *env) close() {
	if err := e.st.Close(); err != nil {
		e.log.Warn("close store: %v", err)
	}
}

// buildEnv opens the store and wires the engine components together.
func buildEnv(cmd *cobra.Command) (*env, error) {
	cfg := config.Load()
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		cfg.UserID = u
	}
	log := logger.New(os.Stderr, logger.ParseLevel(cfg.LogLevel))

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	catalog, err := templates.Load()
	if err != nil {
		st.Close()
		return nil, err
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sessions := store.NewSessionRepo(st)
	orch := personalization.New(
		cfg.UserID,
		sessions,
		store.NewRecommendationRepo(st),
		ageclass.NewDetector(store.NewAgeResultRepo(st)),
		difficulty.NewController(learner.DifficultyEasy),
		templates.NewEngine(catalog, rand.New(rand.NewSource(seed))),
		rand.New(rand.NewSource(seed+1)),
	)

	return &env{cfg: cfg, log: log, st: st, orch: orch, track: sessions}, nil
}
