package source

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/agenthands/storygraph/internal/core/extraction"
	"github.com/agenthands/storygraph/internal/core/model"
	"github.com/agenthands/storygraph/internal/driver"
	"github.com/agenthands/storygraph/internal/metrics"
)

// GraphSource reads an asset snapshot from the graph store.
type GraphSource struct {
	Driver  driver.GraphDriver
	Limit   int
	Logger  *zap.SugaredLogger
	Metrics *metrics.Collector
}

func NewGraphSource(d driver.GraphDriver, limit int, logger *zap.SugaredLogger, m *metrics.Collector) *GraphSource {
	if limit <= 0 {
		limit = driver.DefaultAssetLimit
	}
	return &GraphSource{Driver: d, Limit: limit, Logger: logger, Metrics: m}
}

func (s *GraphSource) Name() string {
	return "memgraph"
}

// Load runs a single bounded query. Query failures are ErrInputUnavailable;
// rows that cannot be normalized are skipped.
func (s *GraphSource) Load(ctx context.Context) ([]model.AssetRecord, error) {
	result, err := s.Driver.ExecuteQuery(ctx, driver.ListAssetsQuery, map[string]interface{}{
		"limit": s.Limit,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, Unavailable(err, "list assets")
	}

	seen := make(map[string]struct{}, len(result.Records))
	records := make([]model.AssetRecord, 0, len(result.Records))
	for i, row := range result.Records {
		rec, err := extraction.FromProps(row.AsMap())
		if err == nil {
			if _, dup := seen[rec.ID]; dup {
				err = errors.Newf("duplicate asset id %s", rec.ID)
			}
		}
		if err != nil {
			s.Logger.Warnw("Skipping malformed asset row", "line", i+1, "error", err)
			s.Metrics.MalformedRecord(s.Name())
			continue
		}
		seen[rec.ID] = struct{}{}
		records = append(records, rec)
	}

	if len(result.Records) >= s.Limit {
		s.warnTruncated(ctx)
	}
	s.Logger.Debugw("Loaded assets", "count", len(records))
	return records, nil
}

func (s *GraphSource) warnTruncated(ctx context.Context) {
	total, err := CountAssets(ctx, s.Driver)
	if err != nil {
		s.Logger.Warnw("Asset snapshot hit the row limit", "limit", s.Limit, "error", err)
		return
	}
	if total > s.Limit {
		s.Logger.Warnw("Asset snapshot truncated", "limit", s.Limit, "total", total)
	}
}

// CountAssets returns the number of asset nodes in the graph store.
func CountAssets(ctx context.Context, d driver.GraphDriver) (int, error) {
	result, err := d.ExecuteQuery(ctx, driver.CountAssetsQuery, nil)
	if err != nil {
		return 0, errors.Wrap(err, "count assets")
	}
	if len(result.Records) == 0 {
		return 0, nil
	}
	count, ok := result.Records[0].AsMap()["count"].(int64)
	if !ok {
		return 0, errors.New("count assets: unexpected result type")
	}
	return int(count), nil
}

// ImportAssets upserts raw indexer records into the graph store and returns
// how many were written. Records without an id are skipped.
func ImportAssets(ctx context.Context, d driver.GraphDriver, assets []model.IPAsset, logger *zap.SugaredLogger) (int, error) {
	if err := d.BuildIndices(ctx); err != nil {
		return 0, errors.Wrap(err, "build indices")
	}

	written := 0
	for i, raw := range assets {
		rec, err := extraction.FromIPAsset(raw)
		if err != nil {
			logger.Warnw("Skipping asset without id", "line", i+1, "error", err)
			continue
		}
		if _, err := d.ExecuteQuery(ctx, driver.SaveIPAssetQuery, assetParams(rec, raw)); err != nil {
			return written, errors.Wrapf(err, "save asset %s", rec.ID)
		}
		written++
	}
	logger.Infow("Imported assets", "count", written)
	return written, nil
}

func assetParams(rec model.AssetRecord, raw model.IPAsset) map[string]interface{} {
	md := model.NFTMetadata{}
	if raw.NFTMetadata != nil {
		md = *raw.NFTMetadata
	}
	tokenContract := ""
	if rec.GroupKey != model.UnknownGroup {
		tokenContract = rec.GroupKey
	}
	return map[string]interface{}{
		"ipId":            rec.ID,
		"descendantCount": rec.DescendantCount,
		"ancestorCount":   raw.AncestorCount,
		"parentCount":     rec.ParentCount,
		"childrenCount":   rec.ChildrenCount,
		"rootCount":       raw.RootCount,
		"rootIpIds":       rec.ParentIDs,
		"isGroup":         rec.IsGroupAggregate,
		"blockNumber":     raw.BlockNumber,
		"blockTimestamp":  raw.BlockTimestamp,
		"transactionHash": raw.TransactionHash,
		"tokenContract":   tokenContract,
		"tokenId":         md.TokenID,
		"chainId":         md.ChainID,
		"name":            md.Name,
		"imageUrl":        md.ImageURL,
	}
}
