package transcriptcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"parakeet-stt/internal/transcript"
)

// Entry is a cached transcript row.
type Entry struct {
	Key        string
	SHA256     string
	Model      string
	SourcePath string
	SourceSize int64
	Result     transcript.Result
	CreatedAt  time.Time
	LastHitAt  time.Time
	Hits       int
}

// Key derives the cache key for audio content transcribed by model.
func Key(sha256Hex, model string) string {
	return strings.ToLower(strings.TrimSpace(sha256Hex)) + ":" + strings.TrimSpace(model)
}

// Get returns the cached transcript for key. The boolean is false on a miss.
// A hit bumps the hit counter.
func (s *Store) Get(ctx context.Context, key string) (transcript.Result, bool, error) {
	ctx = ensureContext(ctx)
	var (
		text      string
		sentences string
	)
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			"SELECT text, sentences_json FROM transcripts WHERE cache_key = ?", key,
		).Scan(&text, &sentences)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return transcript.Result{}, false, nil
	}
	if err != nil {
		return transcript.Result{}, false, fmt.Errorf("lookup transcript: %w", err)
	}

	result := transcript.Result{Text: text}
	if err := json.Unmarshal([]byte(sentences), &result.Sentences); err != nil {
		return transcript.Result{}, false, fmt.Errorf("decode cached sentences: %w", err)
	}

	if _, err := s.execWithRetry(ctx,
		"UPDATE transcripts SET hits = hits + 1, last_hit_at = ? WHERE cache_key = ?",
		formatTime(time.Now()), key,
	); err != nil {
		return result, true, fmt.Errorf("record cache hit: %w", err)
	}
	return result, true, nil
}

// Put stores or replaces an entry. Key is derived from SHA256 and Model when empty.
func (s *Store) Put(ctx context.Context, entry Entry) error {
	if strings.TrimSpace(entry.SHA256) == "" || strings.TrimSpace(entry.Model) == "" {
		return errors.New("cache entry requires sha256 and model")
	}
	if entry.Key == "" {
		entry.Key = Key(entry.SHA256, entry.Model)
	}
	sentences := entry.Result.Sentences
	if sentences == nil {
		sentences = []transcript.Sentence{}
	}
	encoded, err := json.Marshal(sentences)
	if err != nil {
		return fmt.Errorf("encode sentences: %w", err)
	}
	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err = s.execWithRetry(ctx,
		`INSERT INTO transcripts (cache_key, sha256, model, source_path, source_size, text, sentences_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		   source_path = excluded.source_path,
		   source_size = excluded.source_size,
		   text = excluded.text,
		   sentences_json = excluded.sentences_json,
		   created_at = excluded.created_at`,
		entry.Key, strings.ToLower(entry.SHA256), entry.Model, entry.SourcePath, entry.SourceSize,
		entry.Result.Text, string(encoded), formatTime(created),
	)
	if err != nil {
		return fmt.Errorf("store transcript: %w", err)
	}
	return nil
}

// List returns every entry, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT cache_key, sha256, model, source_path, source_size, text, created_at,
		        COALESCE(last_hit_at, ''), hits
		 FROM transcripts ORDER BY created_at DESC, cache_key`)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry   Entry
			created string
			lastHit string
		)
		if err := rows.Scan(&entry.Key, &entry.SHA256, &entry.Model, &entry.SourcePath,
			&entry.SourceSize, &entry.Result.Text, &created, &lastHit, &entry.Hits); err != nil {
			return nil, fmt.Errorf("scan transcript: %w", err)
		}
		entry.CreatedAt = parseTime(created)
		entry.LastHitAt = parseTime(lastHit)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcripts: %w", err)
	}
	return entries, nil
}

// Clear deletes all entries and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, "DELETE FROM transcripts")
	if err != nil {
		return 0, fmt.Errorf("clear transcripts: %w", err)
	}
	return res.RowsAffected()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
