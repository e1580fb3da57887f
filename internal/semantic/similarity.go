package semantic

import (
	"math"

	"github.com/agenthands/storygraph/internal/core/model"
)

// MaxLinks bounds the number of links a similarity graph carries.
const MaxLinks = 7500

// Cosine returns the cosine similarity of a and b. Vectors of different
// length, empty vectors and zero vectors compare as 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Graph links every pair of records whose similarity exceeds threshold.
// Pairs are scanned in input order and scanning stops at MaxLinks.
func Graph(records []model.VectorRecord, threshold float64) model.SemanticGraph {
	g := model.SemanticGraph{
		Nodes: make([]model.SemanticNode, 0, len(records)),
		Links: []model.SemanticLink{},
	}
	for _, r := range records {
		g.Nodes = append(g.Nodes, model.SemanticNode{
			ID:          r.ID,
			Label:       r.Label(),
			Description: r.DescriptionText,
			ImageURL:    r.ImageURL(),
		})
	}

	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			if len(g.Links) >= MaxLinks {
				return g
			}
			sim := Cosine(records[i].Embedding, records[j].Embedding)
			if sim > threshold {
				g.Links = append(g.Links, model.SemanticLink{
					Source:     records[i].ID,
					Target:     records[j].ID,
					Similarity: sim,
				})
			}
		}
	}
	return g
}

// Rank scores every record against query and returns the best limit
// results, most similar first. Ties keep input order.
func Rank(records []model.VectorRecord, query []float32, limit int, skipID string) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(records))
	for _, r := range records {
		if skipID != "" && r.ID == skipID {
			continue
		}
		results = append(results, model.SearchResult{
			ID:          r.ID,
			Label:       r.Label(),
			ImageURL:    r.ImageURL(),
			Description: r.DescriptionText,
			Similarity:  Cosine(query, r.Embedding),
		})
	}
	sortBySimilarity(results)
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
