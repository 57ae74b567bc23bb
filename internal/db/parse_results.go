package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveParseResult stores a parse result and returns its ID. A result whose content hash is
// already stored replaces the stored result and keeps the existing ID.
func (db *DB) SaveParseResult(ctx context.Context, rec *ParseResult) (uuid.UUID, error) {
	if rec.ContentHash == "" {
		return uuid.Nil, fmt.Errorf("content hash is required")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal parse result: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO parse_results (id, content_hash, source_name, result)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (content_hash) DO UPDATE SET source_name = EXCLUDED.source_name, result = EXCLUDED.result
		 RETURNING id, created_at`,
		rec.ID, rec.ContentHash, rec.SourceName, resultJSON,
	).Scan(&id, &rec.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save parse result: %w", err)
	}
	rec.ID = id
	return id, nil
}

// GetParseResult retrieves a parse result by ID. It returns nil, nil when no row matches.
func (db *DB) GetParseResult(ctx context.Context, id uuid.UUID) (*ParseResult, error) {
	var rec ParseResult
	var resultJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, content_hash, source_name, result, created_at FROM parse_results WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.ContentHash, &rec.SourceName, &resultJSON, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get parse result %s: %w", id, err)
	}

	if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parse result %s: %w", id, err)
	}
	return &rec, nil
}

// GetParseResultByHash retrieves the parse result stored for a content hash, or nil, nil.
func (db *DB) GetParseResultByHash(ctx context.Context, contentHash string) (*ParseResult, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT id FROM parse_results WHERE content_hash = $1`,
		contentHash,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up parse result by hash: %w", err)
	}
	return db.GetParseResult(ctx, id)
}
