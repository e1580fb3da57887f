package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/storygraph/internal/config"
	"github.com/agenthands/storygraph/internal/logging"
)

var (
	configPath string
	logLevel   string

	logger = zap.NewNop().Sugar()
)

// RootCmd is the storygraph command line entry point.
var RootCmd = &cobra.Command{
	Use:   "storygraph",
	Short: "Build and inspect IP asset network views offline",
	Long: `storygraph works on IP asset snapshots without running the HTTP server.

Examples:
  storygraph view --mode community --input assets.ndjson
  storygraph merge --dir pages --output assets.json
  storygraph convert --input assets.json --output assets.ndjson
  storygraph import --input assets.ndjson`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		base, err := logging.New(config.LogConfig{Level: logLevel})
		if err != nil {
			return err
		}
		logger = base.Sugar()
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (defaults, then CONFIG_PATH)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level written to stderr")

	RootCmd.AddCommand(ViewCmd, ConvertCmd, MergeCmd, ImportCmd)
}

func Execute() error {
	return RootCmd.Execute()
}

// loadConfig resolves configuration the same way the server does, with an
// explicit --config taking precedence over CONFIG_PATH.
func loadConfig(getenv func(string) string) (*config.Config, error) {
	if configPath == "" {
		return config.FromEnvironment(getenv)
	}
	return config.FromEnvironment(func(key string) string {
		if key == "CONFIG_PATH" {
			return configPath
		}
		return getenv(key)
	})
}
