package source

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/agenthands/storygraph/internal/core/common"
	"github.com/agenthands/storygraph/internal/core/extraction"
	"github.com/agenthands/storygraph/internal/core/model"
	"github.com/agenthands/storygraph/internal/metrics"
)

const (
	// longer lines are dropped as malformed
	maxLineSize = 16 << 20

	readBufferSize = 64 * 1024

	// cancellation is checked once per this many lines
	ctxCheckInterval = 1024
)

var (
	// ErrLineTooLong is reported to the malformed callback for dropped lines.
	ErrLineTooLong = errors.New("ndjson line exceeds size limit")
	// ErrStopScan may be returned by a visit callback to end the scan early.
	ErrStopScan = errors.New("stop scan")
)

// ScanNDJSON decodes every non-blank line of r as a T. Lines that fail to
// decode or exceed the size limit are reported to malformed with their
// 1-based line number and skipped. Only read failures and cancellation are
// returned; a visit returning ErrStopScan ends the scan without error.
func ScanNDJSON[T any](ctx context.Context, r io.Reader, visit func(line int, v T) error, malformed func(line int, err error)) error {
	return scanNDJSON(ctx, r, maxLineSize, visit, malformed)
}

func scanNDJSON[T any](ctx context.Context, r io.Reader, limit int, visit func(line int, v T) error, malformed func(line int, err error)) error {
	br := bufio.NewReaderSize(r, readBufferSize)

	var (
		buf  []byte
		over bool
		line int
	)
	for {
		frag, err := br.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			if !over && len(buf)+len(frag) <= limit {
				buf = append(buf, frag...)
			} else {
				buf, over = buf[:0], true
			}
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrapf(err, "read line %d", line+1)
		}
		eof := err != nil

		if len(frag) > 0 || len(buf) > 0 || over {
			line++
			if line%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}

			raw := frag
			if len(buf) > 0 {
				buf = append(buf, frag...)
				raw = buf
			}
			switch {
			case over || len(raw) > limit:
				malformed(line, errors.Wrapf(ErrLineTooLong, "limit %d bytes", limit))
			case len(bytes.TrimSpace(raw)) == 0:
			default:
				v, err := common.DecodeLine[T](raw)
				if err != nil {
					malformed(line, err)
				} else if err := visit(line, v); err != nil {
					if errors.Is(err, ErrStopScan) {
						return nil
					}
					return err
				}
			}
			buf, over = buf[:0], false
		}
		if eof {
			return nil
		}
	}
}

// ReadIPAssets decodes raw indexer records from NDJSON. Malformed lines are
// passed to malformed, which may be nil.
func ReadIPAssets(ctx context.Context, r io.Reader, malformed func(line int, err error)) ([]model.IPAsset, error) {
	if malformed == nil {
		malformed = func(int, error) {}
	}
	var out []model.IPAsset
	err := ScanNDJSON(ctx, r, func(_ int, a model.IPAsset) error {
		out = append(out, a)
		return nil
	}, malformed)
	return out, err
}

// NDJSONSource reads an asset snapshot from a newline-delimited JSON file.
type NDJSONSource struct {
	Path    string
	Logger  *zap.SugaredLogger
	Metrics *metrics.Collector
}

func NewNDJSONSource(path string, logger *zap.SugaredLogger, m *metrics.Collector) *NDJSONSource {
	return &NDJSONSource{Path: path, Logger: logger, Metrics: m}
}

func (s *NDJSONSource) Name() string {
	return "ndjson"
}

// Load reads the whole file. A missing or unreadable file is
// ErrInputUnavailable; malformed and duplicate records are skipped.
func (s *NDJSONSource) Load(ctx context.Context) ([]model.AssetRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, Unavailable(err, "open assets file %s", s.Path)
	}
	defer f.Close()

	seen := make(map[string]struct{})
	records := []model.AssetRecord{}

	malformed := func(line int, err error) {
		s.Logger.Warnw("Skipping malformed asset record", "path", s.Path, "line", line, "error", err)
		s.Metrics.MalformedRecord(s.Name())
	}

	err = ScanNDJSON(ctx, f, func(line int, raw model.IPAsset) error {
		rec, err := extraction.FromIPAsset(raw)
		if err != nil {
			malformed(line, err)
			return nil
		}
		if _, dup := seen[rec.ID]; dup {
			malformed(line, errors.Newf("duplicate asset id %s", rec.ID))
			return nil
		}
		seen[rec.ID] = struct{}{}
		records = append(records, rec)
		return nil
	}, malformed)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, Unavailable(err, "read assets file %s", s.Path)
	}

	s.Logger.Debugw("Loaded assets", "path", s.Path, "count", len(records))
	return records, nil
}
