package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"trajlens/internal/audit"
	"trajlens/internal/classify"
	"trajlens/internal/config"
	"trajlens/internal/instance"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Shared state built by the root command
	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "trajlens",
	Short: "Offline analyzer for recorded SWE-agent trajectories",
	Long: `trajlens classifies the steps of recorded SWE-agent trajectories:
which steps create reproduction or test code, which steps search and
navigate the codebase, and how often each tool is invoked.

Trajectories are .traj files (JSON or JSONL), one per instance, stored
under the configured search roots.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env files may carry TRAJLENS_* overrides for the config load
		_ = godotenv.Load()

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the configuration file")
}

// buildRoots converts the configured search roots for the resolver.
func buildRoots() []instance.Root {
	roots := make([]instance.Root, 0, len(cfg.Roots))
	for _, root := range cfg.Roots {
		roots = append(roots, instance.Root{Label: root.Label, Path: root.Path})
	}
	return roots
}

func buildResolver() *instance.Resolver {
	return instance.NewResolver(buildRoots())
}

func buildAnalyzer() *classify.Analyzer {
	return classify.NewAnalyzer(buildResolver(), audit.NewWriter(cfg.Audit.Dir), logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
