package vectorindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
)

func TestMemoryIndexRanksByDistance(t *testing.T) {
	ctx := context.Background()
	index := NewMemoryIndex()
	require.NoError(t, index.Upsert(ctx, "prefs", []hotelpref.IndexedChunk{
		{Chunk: hotelpref.Chunk{ID: "pref_chunk_1", Text: "far"}, Embedding: []float32{10, 10}},
		{Chunk: hotelpref.Chunk{ID: "pref_chunk_2", Text: "near"}, Embedding: []float32{1, 1}},
		{Chunk: hotelpref.Chunk{ID: "pref_chunk_3", Text: "middle"}, Embedding: []float32{3, 4}},
	}))

	matches, err := index.Query(ctx, "prefs", []float32{0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, "near", matches[0].Text)
	require.Equal(t, "middle", matches[1].Text)
	require.InDelta(t, 5.0, matches[1].Distance, 1e-9)
}

func TestMemoryIndexUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	index := NewMemoryIndex()
	require.NoError(t, index.Upsert(ctx, "prefs", []hotelpref.IndexedChunk{
		{Chunk: hotelpref.Chunk{ID: "pref_chunk_1", Text: "old"}, Embedding: []float32{1}},
	}))
	require.NoError(t, index.Upsert(ctx, "prefs", []hotelpref.IndexedChunk{
		{Chunk: hotelpref.Chunk{ID: "pref_chunk_1", Text: "new"}, Embedding: []float32{1}},
	}))

	matches, err := index.Query(ctx, "prefs", []float32{1}, 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "new", matches[0].Text)

	matches, err = index.Query(ctx, "other", []float32{1}, 5)
	require.NoError(t, err)
	require.Empty(t, matches)
}
