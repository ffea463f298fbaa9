package vectorindex

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
)

// PostgresIndex stores preference chunks in a pgvector column.
//
//	CREATE TABLE preference_chunks (
//	    collection  TEXT NOT NULL,
//	    id          TEXT NOT NULL,
//	    chunk_index INT  NOT NULL,
//	    content     TEXT NOT NULL,
//	    token_count INT  NOT NULL,
//	    embedding   VECTOR NOT NULL,
//	    PRIMARY KEY (collection, id)
//	);
type PostgresIndex struct {
	pool *pgxpool.Pool
}

// NewPostgresIndex constructs the index.
func NewPostgresIndex(pool *pgxpool.Pool) *PostgresIndex {
	return &PostgresIndex{pool: pool}
}

// Upsert replaces chunks with the same id in one batch.
func (i *PostgresIndex) Upsert(ctx context.Context, collection string, chunks []hotelpref.IndexedChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, chunk := range chunks {
		batch.Queue(`
			INSERT INTO preference_chunks (collection, id, chunk_index, content, token_count, embedding)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (collection, id) DO UPDATE
			SET chunk_index = EXCLUDED.chunk_index,
			    content = EXCLUDED.content,
			    token_count = EXCLUDED.token_count,
			    embedding = EXCLUDED.embedding
		`, collection, chunk.ID, chunk.Index, chunk.Text, chunk.TokenCount, pgvector.NewVector(chunk.Embedding))
	}
	return i.pool.SendBatch(ctx, batch).Close()
}

// Query returns the n nearest chunks by L2 distance.
func (i *PostgresIndex) Query(ctx context.Context, collection string, embedding []float32, n int) ([]hotelpref.Match, error) {
	rows, err := i.pool.Query(ctx, `
		SELECT id, content, embedding <-> $1 AS distance
		FROM preference_chunks
		WHERE collection = $2
		ORDER BY embedding <-> $1
		LIMIT $3
	`, pgvector.NewVector(embedding), collection, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []hotelpref.Match
	for rows.Next() {
		var m hotelpref.Match
		if err := rows.Scan(&m.ID, &m.Text, &m.Distance); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ hotelpref.VectorIndex = (*PostgresIndex)(nil)
