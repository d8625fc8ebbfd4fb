package query

import (
	"math"
	"sort"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// topFragments is the number of highest-scoring fragments included in
// the grounding prompt.
const topFragments = 3

// ScoredFragment pairs a fragment with its cosine similarity to the
// query. It exists only within a single ranking call.
type ScoredFragment struct {
	Fragment model.Fragment
	Score    float64
}

// Rank orders fragments by descending cosine similarity to the query
// vector. The sort is stable, so equal scores keep their input order.
// A zero-magnitude vector or a dimensionality mismatch yields
// ErrInvalidVector, never a NaN score.
func Rank(queryVec []float32, fragments []model.Fragment) ([]ScoredFragment, error) {
	queryNorm := norm(queryVec)
	if queryNorm == 0 {
		return nil, goerr.Wrap(model.ErrInvalidVector, "query vector has zero magnitude")
	}

	scored := make([]ScoredFragment, 0, len(fragments))
	for i, fragment := range fragments {
		emb := []float32(fragment.Embedding)
		if len(emb) != len(queryVec) {
			return nil, goerr.Wrap(model.ErrInvalidVector, "embedding dimensionality mismatch",
				goerr.V("fragment", i), goerr.V("want", len(queryVec)), goerr.V("got", len(emb)))
		}

		fragNorm := norm(emb)
		if fragNorm == 0 {
			return nil, goerr.Wrap(model.ErrInvalidVector, "fragment embedding has zero magnitude",
				goerr.V("fragment", i))
		}

		scored = append(scored, ScoredFragment{
			Fragment: fragment,
			Score:    dot(queryVec, emb) / (queryNorm * fragNorm),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored, nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// topTexts returns the raw text of the k best fragments in rank order.
// With fewer than k fragments, all of them are used.
func topTexts(scored []ScoredFragment, k int) []string {
	if len(scored) < k {
		k = len(scored)
	}

	texts := make([]string, 0, k)
	for _, s := range scored[:k] {
		texts = append(texts, s.Fragment.RawText)
	}
	return texts
}
