package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cicadas-dev/chorus/internal/git"
	"github.com/cicadas-dev/chorus/internal/models"
	"github.com/cicadas-dev/chorus/internal/output"
	"github.com/cicadas-dev/chorus/internal/packet"
	"github.com/cicadas-dev/chorus/internal/review"
	"github.com/cicadas-dev/chorus/internal/store"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui         *output.UI
	eventStore store.Store

	verbose bool
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "chorus",
	Short: "File-backed review and merge workflow for task branches",
	Long: `chorus tracks branch reviews as plain markdown packets inside the repo.
Create a packet for a task branch, have a human approve or reject it,
and merge only once the packet carries an approval.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	// Bare `chorus` lists packets when run inside a repo, help otherwise.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if _, _, err := getService(); err != nil {
			return cmd.Help()
		}
		return listRun()
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would happen without making changes")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/chorus/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "chorus")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CHORUS")
	viper.AutomaticEnv()

	// Defaults via viper.SetDefault(). Paths are relative to the repo root.
	viper.SetDefault("reviews_dir", filepath.Join(".chorus", "reviews"))
	viper.SetDefault("history_db", filepath.Join(".chorus", "history.db"))
	viper.SetDefault("branch.task_prefix", review.DefaultTaskPrefix)
	viper.SetDefault("branch.base_prefix", review.DefaultBasePrefix)

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
	ui.DryRun = dryRun

	// The event store is opened lazily so display commands work without
	// touching the database.
}

// branchLabel names a branch for user-facing messages. An empty branch means
// "whatever is checked out", which only gets resolved once the service runs.
func branchLabel(branch string) string {
	if branch == "" {
		return "current branch"
	}
	return fmt.Sprintf("%q", branch)
}

// getService builds a review service rooted at the enclosing repository.
func getService() (*review.Service, string, error) {
	gc := git.NewClient()
	root, err := gc.RepoRoot(".")
	if err != nil {
		return nil, "", fmt.Errorf("not inside a git repository: %w", err)
	}

	packets := packet.NewStore(filepath.Join(root, viper.GetString("reviews_dir")))
	svc := review.NewService(gc, packets, root, review.DefaultConfig())
	return svc, root, nil
}

// getEventStore returns the shared audit store, initializing it on first call.
func getEventStore(root string) (store.Store, error) {
	if eventStore != nil {
		return eventStore, nil
	}

	dbPath := filepath.Join(root, viper.GetString("history_db"))
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err := s.Migrate(context.Background()); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("migrate history database: %w", err)
	}

	eventStore = s
	return eventStore, nil
}

// recordEvent appends to the audit trail. Best-effort: a failure warns but
// never fails the workflow operation that triggered it.
func recordEvent(root string, e *models.ReviewEvent) {
	s, err := getEventStore(root)
	if err != nil {
		ui.Warning("history not recorded: %v", err)
		return
	}
	if err := s.RecordEvent(context.Background(), e); err != nil {
		ui.Warning("history not recorded: %v", err)
	}
}
