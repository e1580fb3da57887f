package semantic

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/agenthands/storygraph/internal/core/model"
	"github.com/agenthands/storygraph/internal/metrics"
	"github.com/agenthands/storygraph/internal/source"
)

// LoadVectors reads up to limit embedding rows from an NDJSON file and stops
// reading once limit is reached. A non-positive limit reads the whole file.
// Rows without an id or embedding are skipped as malformed.
func LoadVectors(ctx context.Context, path string, limit int, logger *zap.SugaredLogger, m *metrics.Collector) ([]model.VectorRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, source.Unavailable(err, "open vectors file %s", path)
	}
	defer f.Close()

	malformed := func(line int, err error) {
		logger.Warnw("Skipping malformed vector record", "path", path, "line", line, "error", err)
		m.MalformedRecord("vectors")
	}

	records := []model.VectorRecord{}
	err = source.ScanNDJSON(ctx, f, func(line int, v model.VectorRecord) error {
		switch {
		case v.ID == "":
			malformed(line, errors.New("vector record has no id"))
		case len(v.Embedding) == 0:
			malformed(line, errors.Newf("vector %s has no embedding", v.ID))
		default:
			records = append(records, v)
		}
		if limit > 0 && len(records) >= limit {
			return source.ErrStopScan
		}
		return nil
	}, malformed)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, source.Unavailable(err, "read vectors file %s", path)
	}
	return records, nil
}
