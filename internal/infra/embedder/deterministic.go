package embedder

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
)

// DeterministicEmbedder avoids network calls by hashing words into buckets.
// Texts sharing vocabulary land close together, which keeps retrieval
// meaningful offline.
type DeterministicEmbedder struct {
	dim int
}

// NewDeterministicEmbedder constructs the embedder.
func NewDeterministicEmbedder(dim int) *DeterministicEmbedder {
	if dim <= 0 {
		dim = 64
	}
	return &DeterministicEmbedder{dim: dim}
}

// Embed returns one unit-length bag-of-words vector per text.
func (e *DeterministicEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector := make([]float32, e.dim)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,;:!?\"'()")
			if word == "" {
				continue
			}
			hash := fnv.New64a()
			_, _ = hash.Write([]byte(word))
			vector[hash.Sum64()%uint64(e.dim)]++
		}
		normalize(vector)
		vectors[i] = vector
	}
	return vectors, nil
}

func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
}

var _ hotelpref.Embedder = (*DeterministicEmbedder)(nil)
