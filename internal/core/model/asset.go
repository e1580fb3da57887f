package model

// UnknownGroup is the grouping key for assets without a token contract.
const UnknownGroup = "unknown"

// NFTMetadata mirrors the nftMetadata object of the indexer's asset payload.
type NFTMetadata struct {
	Name          string `json:"name"`
	ChainID       string `json:"chainId"`
	TokenContract string `json:"tokenContract"`
	TokenID       string `json:"tokenId"`
	TokenURI      string `json:"tokenUri"`
	ImageURL      string `json:"imageUrl"`
}

// IPAsset is one raw record as written by the indexer snapshot (one NDJSON line).
type IPAsset struct {
	ID                      string       `json:"id"`
	IPID                    string       `json:"ipId"`
	DescendantCount         int          `json:"descendantCount"`
	AncestorCount           int          `json:"ancestorCount"`
	RootIPIDs               []string     `json:"rootIpIds"`
	BlockNumber             string       `json:"blockNumber,omitempty"`
	BlockTimestamp          string       `json:"blockTimestamp,omitempty"`
	ChildrenCount           int          `json:"childrenCount"`
	ParentCount             int          `json:"parentCount"`
	IsGroup                 bool         `json:"isGroup"`
	TransactionHash         string       `json:"transactionHash,omitempty"`
	NFTMetadata             *NFTMetadata `json:"nftMetadata,omitempty"`
	LatestArbitrationPolicy string       `json:"latestArbitrationPolicy,omitempty"`
	RootCount               int          `json:"rootCount"`
}

// AssetRecord is the normalized per-asset shape every view is built from.
type AssetRecord struct {
	ID               string   `json:"id"`
	GroupKey         string   `json:"groupKey"`
	DisplayName      string   `json:"displayName,omitempty"`
	ImageURL         string   `json:"imageUrl,omitempty"`
	ParentIDs        []string `json:"parentIds"`
	ChildrenCount    int      `json:"childrenCount"`
	DescendantCount  int      `json:"descendantCount"`
	ParentCount      int      `json:"parentCount"`
	IsGroupAggregate bool     `json:"isGroupAggregate"`
}

// IsRoot reports whether the asset has no parent links and no registered parents.
func (a AssetRecord) IsRoot() bool {
	return len(a.ParentIDs) == 0 && a.ParentCount == 0
}

// AssetDetail is a single asset with the facts of the group it belongs to.
type AssetDetail struct {
	Asset          AssetRecord `json:"asset"`
	GroupSize      int         `json:"groupSize"`
	Tier           string      `json:"tier"`
	HasConnections bool        `json:"hasConnections"`
}
