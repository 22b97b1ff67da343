package root

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yourname/moveup/internal"
	"github.com/yourname/moveup/internal/backend"
	"github.com/yourname/moveup/internal/config"
	"github.com/yourname/moveup/internal/health"
	"github.com/yourname/moveup/internal/session"
	"github.com/yourname/moveup/internal/storage"
)

const Version = "0.1.0"

// app holds the wired components shared by every command. It is built once
// in the root PersistentPreRunE.
type app struct {
	cfg      *config.Config
	logger   internal.Logger
	client   *backend.Client
	samples  storage.SampleRepository
	provider health.Provider
	state    *session.State
}

var a *app

var rootCmd = &cobra.Command{
	Use:           "moveup",
	Short:         "MoveUp companion: sync health data, track clans and rewards",
	Long:          "moveup is a companion client for the MoveUp fitness platform: it uploads daily health metrics, manages clan membership and challenges, and converts activity points into tokens.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
}

func setup(cmd *cobra.Command) error {
	cfg := config.Load()
	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	for _, p := range []string{cfg.SamplesFile, cfg.SessionFile, cfg.SQLitePath} {
		if dir := filepath.Dir(p); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
	}

	samples, err := storage.NewSampleRepository(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to init sample storage: %w", err)
	}

	provider := health.NewStoreProvider(samples, logger)
	if err := provider.RequestAuthorization(cmd.Context()); err != nil {
		return fmt.Errorf("health data access not granted: %w", err)
	}

	client := backend.New(cfg.BaseURL, nil, logger)
	sessions := storage.NewFileSessionStorage(cfg.SessionFile, logger)
	state := session.New(client, provider, sessions, logger)

	a = &app{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		samples:  samples,
		provider: provider,
		state:    state,
	}
	return nil
}

func teardown() {
	if a != nil && a.samples != nil {
		if err := a.samples.Close(); err != nil {
			a.logger.Errorf("failed to close sample storage: %v", err)
		}
	}
}

// requireSession restores persisted identity and fails the command when the
// user is not logged in.
func requireSession(cmd *cobra.Command) error {
	if a.state.Restore(cmd.Context()) {
		return nil
	}
	return fmt.Errorf("not logged in; run 'moveup login' first")
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newSyncCmd(),
		newRecordCmd(),
		newClanCmd(),
		newChallengeCmd(),
		newRewardsCmd(),
		newConvertCmd(),
		newBenchmarkCmd(),
		newInsightsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
