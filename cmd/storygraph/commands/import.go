package commands

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/agenthands/storygraph/internal/driver"
	"github.com/agenthands/storygraph/internal/source"
)

var importInput string

var ImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load an NDJSON asset snapshot into Memgraph",
	Args:  cobra.NoArgs,
	RunE:  runImport,
}

func init() {
	ImportCmd.Flags().StringVar(&importInput, "input", "assets.ndjson", "NDJSON asset snapshot")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	f, err := os.Open(importInput)
	if err != nil {
		return errors.Wrapf(err, "open %s", importInput)
	}
	defer f.Close()

	assets, err := source.ReadIPAssets(ctx, f, func(line int, err error) {
		logger.Warnw("Skipping malformed asset record", "path", importInput, "line", line, "error", err)
	})
	if err != nil {
		return err
	}

	d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
	if err != nil {
		return err
	}
	defer d.Close(ctx)

	n, err := source.ImportAssets(ctx, d, assets, logger)
	if err != nil {
		return err
	}
	total, err := source.CountAssets(ctx, d)
	if err != nil {
		return err
	}
	cmd.Printf("Imported %d assets into %s (%d total)\n", n, cfg.Memgraph.URI, total)
	return nil
}
