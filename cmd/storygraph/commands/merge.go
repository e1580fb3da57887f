package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

const pagePrefix = "assets-page-"

var (
	mergeDir    string
	mergeOutput string
)

var MergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge paginated indexer responses into one JSON array",
	Args:  cobra.NoArgs,
	RunE:  runMerge,
}

func init() {
	MergeCmd.Flags().StringVar(&mergeDir, "dir", "pages", "directory of assets-page-* responses")
	MergeCmd.Flags().StringVar(&mergeOutput, "output", "assets.json", "JSON file to write")
}

func runMerge(cmd *cobra.Command, args []string) error {
	n, err := MergePages(mergeDir, mergeOutput)
	if err != nil {
		return err
	}
	cmd.Printf("Wrote %s (%d items)\n", mergeOutput, n)
	return nil
}

type page struct {
	Data struct {
		Data []json.RawMessage `json:"data"`
	} `json:"data"`
}

// MergePages concatenates the data.data arrays of every assets-page-* file
// in dir, in file name order.
func MergePages(dir, output string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrapf(err, "read %s", dir)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), pagePrefix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	all := []json.RawMessage{}
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return 0, errors.Wrapf(err, "read %s", name)
		}
		var p page
		if err := json.Unmarshal(raw, &p); err != nil {
			return 0, errors.Wrapf(err, "parse %s", name)
		}
		all = append(all, p.Data.Data...)
	}

	out, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return 0, errors.Wrap(err, "encode merged assets")
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return 0, errors.Wrapf(err, "write %s", output)
	}
	return len(all), nil
}
