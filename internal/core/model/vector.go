package model

// VectorMetadata is the subset of NFT metadata joined onto embedding rows.
type VectorMetadata struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// VectorRecord is one embedding row of the semantic index.
type VectorRecord struct {
	ID              string          `json:"id"`
	Embedding       []float32       `json:"embedding"`
	DescriptionText string          `json:"descriptionText"`
	NFTMetadata     *VectorMetadata `json:"nftMetadata,omitempty"`
}

// Label returns the display name, falling back to the id.
func (v VectorRecord) Label() string {
	if v.NFTMetadata != nil && v.NFTMetadata.Name != "" {
		return v.NFTMetadata.Name
	}
	return v.ID
}

func (v VectorRecord) ImageURL() string {
	if v.NFTMetadata == nil {
		return ""
	}
	return v.NFTMetadata.ImageURL
}

type SemanticNode struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type SemanticLink struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Similarity float64 `json:"similarity"`
}

// SemanticGraph is a similarity map: assets linked by embedding proximity.
type SemanticGraph struct {
	Nodes []SemanticNode `json:"nodes"`
	Links []SemanticLink `json:"links"`
}

type SearchResult struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Description string  `json:"description"`
	Similarity  float64 `json:"similarity"`
}
