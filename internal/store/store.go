// Package store persists proof-of-reserves epochs to PostgreSQL.
package store

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rawblock/revelio-por/pkg/models"
)

// PostgresStore wraps a pgx connection pool, same shape as the teacher's
// store: Connect/InitSchema/Close plus a small set of domain methods.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect initializes the connection pool to PostgreSQL using pgx.
func Connect(connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping failed: %v", err)
	}

	log.Println("Successfully connected to PostgreSQL for the PoR engine")
	return &PostgresStore{pool: pool}, nil
}

// Close gracefully closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema loads and executes schema.sql.
func (s *PostgresStore) InitSchema() error {
	schemaBytes, err := os.ReadFile("internal/store/schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema file: %v", err)
	}

	_, err = s.pool.Exec(context.Background(), string(schemaBytes))
	if err != nil {
		return fmt.Errorf("failed to execute schema migrations: %v", err)
	}

	log.Println("PoR epoch schema initialized")
	return nil
}

// SaveEpoch persists a completed epoch, upserting on ID: saving a record
// whose ID already exists updates that row instead of adding a second one.
func (s *PostgresStore) SaveEpoch(ctx context.Context, rec models.EpochRecord) error {
	sql := `
		INSERT INTO por_epochs (id, kind, anon_size, own_size, verified, prove_millis, verify_millis, bundle_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET verified = EXCLUDED.verified,
		    prove_millis = EXCLUDED.prove_millis,
		    verify_millis = EXCLUDED.verify_millis,
		    bundle_json = EXCLUDED.bundle_json;
	`
	_, err := s.pool.Exec(ctx, sql,
		rec.ID, rec.Kind, rec.AnonSize, rec.OwnSize, rec.Verified,
		rec.ProveMillis, rec.VerifyMillis, rec.BundleJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert por_epochs: %v", err)
	}
	return nil
}

// GetEpoch fetches a persisted epoch by ID.
func (s *PostgresStore) GetEpoch(ctx context.Context, id uuid.UUID) (models.EpochRecord, error) {
	sql := `
		SELECT id, kind, anon_size, own_size, verified, prove_millis, verify_millis, bundle_json, created_at
		FROM por_epochs
		WHERE id = $1;
	`
	var rec models.EpochRecord
	err := s.pool.QueryRow(ctx, sql, id).Scan(
		&rec.ID, &rec.Kind, &rec.AnonSize, &rec.OwnSize, &rec.Verified,
		&rec.ProveMillis, &rec.VerifyMillis, &rec.BundleJSON, &rec.CreatedAt,
	)
	if err != nil {
		return models.EpochRecord{}, fmt.Errorf("failed to fetch epoch %s: %v", id, err)
	}
	return rec, nil
}

// GetPool exposes the connection pool for callers that need raw access
// (e.g. a future migration tool).
func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}
