package driver

// IndexQueries create the lookup indices used by ListAssetsQuery and imports.
var IndexQueries = []string{
	"CREATE INDEX ON :IPAsset(ipId);",
	"CREATE INDEX ON :IPAsset(tokenContract);",
}

const (
	// DefaultAssetLimit bounds a single asset snapshot.
	DefaultAssetLimit = 35000

	SaveIPAssetQuery = `
		MERGE (a:IPAsset {ipId: $ipId})
		SET a.descendantCount = $descendantCount,
			a.ancestorCount = $ancestorCount,
			a.parentCount = $parentCount,
			a.childrenCount = $childrenCount,
			a.rootCount = $rootCount,
			a.rootIpIds = $rootIpIds,
			a.isGroup = $isGroup,
			a.blockNumber = $blockNumber,
			a.blockTimestamp = $blockTimestamp,
			a.transactionHash = $transactionHash,
			a.tokenContract = $tokenContract,
			a.tokenId = $tokenId,
			a.chainId = $chainId,
			a.name = $name,
			a.imageUrl = $imageUrl
		RETURN a.ipId AS ipId
	`

	ListAssetsQuery = `
		MATCH (a:IPAsset)
		RETURN a.ipId AS ipId,
			a.tokenContract AS tokenContract,
			a.name AS name,
			a.imageUrl AS imageUrl,
			a.rootIpIds AS rootIpIds,
			a.descendantCount AS descendantCount,
			a.childrenCount AS childrenCount,
			a.parentCount AS parentCount,
			a.isGroup AS isGroup
		ORDER BY a.descendantCount DESC, a.childrenCount DESC
		LIMIT $limit
	`

	CountAssetsQuery = `
		MATCH (a:IPAsset)
		RETURN count(a) AS count
	`
)
