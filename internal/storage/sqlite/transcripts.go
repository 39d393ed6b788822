package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Reon1917/AU-GURU/internal/core"
)

// TranscriptsRepo is the append-only audit journal of exchanges.
type TranscriptsRepo struct {
	db *sql.DB
}

func NewTranscriptsRepo(db *sql.DB) *TranscriptsRepo {
	return &TranscriptsRepo{db: db}
}

func (r *TranscriptsRepo) Append(ctx context.Context, sessionID string, msg core.Message, categories []core.Category) error {
	cats := make([]string, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, string(c))
	}

	query := `INSERT INTO transcripts (session_id, role, content, categories) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, sessionID, msg.Role, msg.Content, strings.Join(cats, ",")); err != nil {
		return fmt.Errorf("failed to insert transcript entry: %w", err)
	}
	return nil
}

// Recent returns the latest entries in chronological order.
func (r *TranscriptsRepo) Recent(ctx context.Context, limit int) ([]core.TranscriptEntry, error) {
	query := `SELECT id, session_id, role, content, categories, created_at FROM transcripts ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcripts: %w", err)
	}
	defer rows.Close()

	var entries []core.TranscriptEntry
	for rows.Next() {
		var e core.TranscriptEntry
		var content, categories sql.NullString

		if err := rows.Scan(&e.ID, &e.SessionID, &e.Role, &content, &categories, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transcript entry: %w", err)
		}
		e.Content = content.String
		e.Categories = categories.String
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse back to chronological order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
