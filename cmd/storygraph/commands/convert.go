package commands

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var (
	convertInput  string
	convertOutput string
)

var ConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a JSON array of assets to NDJSON",
	Args:  cobra.NoArgs,
	RunE:  runConvert,
}

func init() {
	ConvertCmd.Flags().StringVar(&convertInput, "input", "assets.json", "JSON array of raw asset records")
	ConvertCmd.Flags().StringVar(&convertOutput, "output", "assets.ndjson", "NDJSON file to write")
}

func runConvert(cmd *cobra.Command, args []string) error {
	n, err := ConvertFile(convertInput, convertOutput)
	if err != nil {
		return err
	}
	cmd.Printf("Wrote %s (%d records)\n", convertOutput, n)
	return nil
}

// ConvertFile rewrites a JSON array as one compact JSON value per line.
// Records are copied verbatim; no field is interpreted.
func ConvertFile(input, output string) (int, error) {
	raw, err := os.ReadFile(input)
	if err != nil {
		return 0, errors.Wrapf(err, "read %s", input)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, errors.Wrapf(err, "parse %s as a JSON array", input)
	}

	f, err := os.Create(output)
	if err != nil {
		return 0, errors.Wrapf(err, "create %s", output)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var line bytes.Buffer
	for i, item := range items {
		line.Reset()
		if err := json.Compact(&line, item); err != nil {
			return i, errors.Wrapf(err, "record %d", i)
		}
		line.WriteByte('\n')
		if _, err := w.Write(line.Bytes()); err != nil {
			return i, errors.Wrapf(err, "write %s", output)
		}
	}
	if err := w.Flush(); err != nil {
		return 0, errors.Wrapf(err, "write %s", output)
	}
	return len(items), nil
}
