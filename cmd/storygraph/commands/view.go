package commands

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/agenthands/storygraph/internal/core"
	"github.com/agenthands/storygraph/internal/core/community"
	"github.com/agenthands/storygraph/internal/core/model"
	"github.com/agenthands/storygraph/internal/source"
)

var (
	viewMode   string
	viewInput  string
	viewPretty bool
)

var ViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print a network view of an NDJSON asset snapshot",
	Args:  cobra.NoArgs,
	RunE:  runView,
}

func init() {
	ViewCmd.Flags().StringVar(&viewMode, "mode", model.ModeCommunity, "community, optimized or full")
	ViewCmd.Flags().StringVar(&viewInput, "input", "assets.ndjson", "NDJSON asset snapshot")
	ViewCmd.Flags().BoolVar(&viewPretty, "pretty", false, "indent the JSON output")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		return err
	}

	src := source.NewNDJSONSource(viewInput, logger, nil)
	network := core.NewNetwork(src, community.NewLabeler(cfg.Collections), logger, nil)

	ctx := cmd.Context()
	var v model.View
	switch viewMode {
	case model.ModeCommunity:
		v, err = network.CommunityView(ctx)
	case model.ModeOptimized:
		v, err = network.OptimizedView(ctx)
	case model.ModeFull:
		v, err = network.FullView(ctx)
	default:
		return errors.Newf("unknown mode %q", viewMode)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if viewPretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
