package vectorindex

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
)

// MemoryIndex keeps chunks in process memory and ranks by L2 distance.
type MemoryIndex struct {
	mu          sync.RWMutex
	collections map[string]map[string]hotelpref.IndexedChunk
}

// NewMemoryIndex constructs an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{collections: make(map[string]map[string]hotelpref.IndexedChunk)}
}

// Upsert implements hotelpref.VectorIndex.
func (i *MemoryIndex) Upsert(_ context.Context, collection string, chunks []hotelpref.IndexedChunk) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	bucket, ok := i.collections[collection]
	if !ok {
		bucket = make(map[string]hotelpref.IndexedChunk)
		i.collections[collection] = bucket
	}
	for _, chunk := range chunks {
		vec := make([]float32, len(chunk.Embedding))
		copy(vec, chunk.Embedding)
		chunk.Embedding = vec
		bucket[chunk.ID] = chunk
	}
	return nil
}

// Query implements hotelpref.VectorIndex.
func (i *MemoryIndex) Query(_ context.Context, collection string, embedding []float32, n int) ([]hotelpref.Match, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	bucket := i.collections[collection]
	matches := make([]hotelpref.Match, 0, len(bucket))
	for _, chunk := range bucket {
		matches = append(matches, hotelpref.Match{
			ID:       chunk.ID,
			Text:     chunk.Text,
			Distance: l2Distance(embedding, chunk.Embedding),
		})
	}
	sort.Slice(matches, func(a, b int) bool {
		if matches[a].Distance == matches[b].Distance {
			return matches[a].ID < matches[b].ID
		}
		return matches[a].Distance < matches[b].Distance
	})
	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}
	return matches, nil
}

// Vectors of different length compare as infinitely far apart.
func l2Distance(a, b []float32) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

var _ hotelpref.VectorIndex = (*MemoryIndex)(nil)
