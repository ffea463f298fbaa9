package holidayrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/holiday"
)

// PostgresRepository reads holidays_table through database/sql and lib/pq.
type PostgresRepository struct {
	db *sql.DB
}

// Open connects to Postgres with a libpq-style DSN and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open holiday database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping holiday database: %w", err)
	}
	return db, nil
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListFrom implements holiday.Repository.
func (r *PostgresRepository) ListFrom(ctx context.Context, employeeID int64, from time.Time) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT holidays
		FROM holidays_table
		WHERE employee_id = $1 AND holidays >= $2
		ORDER BY holidays ASC
	`, employeeID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, rows.Err()
}

var _ holiday.Repository = (*PostgresRepository)(nil)
