package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/moodcast/backend/internal/domain"
)

// PgxIface is the subset of *pgxpool.Pool used by the repository
type PgxIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresRepository implements domain.MoodRepository
type PostgresRepository struct {
	pool PgxIface
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool PgxIface) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const schema = `
	CREATE TABLE IF NOT EXISTS mood_entries (
		id           TEXT PRIMARY KEY,
		date         DATE NOT NULL,
		mood_score   INTEGER NOT NULL,
		mood         TEXT NOT NULL DEFAULT '',
		notes        TEXT NOT NULL DEFAULT '',
		temperature  DOUBLE PRECISION,
		weathercode  INTEGER,
		weather_time TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS mood_entries_date_idx ON mood_entries (date);
`

// EnsureSchema creates the mood_entries table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// SaveMood persists a mood entry to PostgreSQL
func (r *PostgresRepository) SaveMood(ctx context.Context, entry domain.MoodEntry) error {
	query := `
		INSERT INTO mood_entries (
			id, date, mood_score, mood, notes, temperature, weathercode, weather_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	day, err := entry.Day()
	if err != nil {
		return fmt.Errorf("postgres: invalid mood date %q: %w", entry.Date, err)
	}

	var (
		temp *float64
		code *int
		wt   *string
	)
	if entry.Weather != nil {
		temp, code, wt = &entry.Weather.Temperature, &entry.Weather.WeatherCode, &entry.Weather.Time
	}

	_, err = r.pool.Exec(ctx, query,
		entry.ID, day, entry.MoodScore, entry.Mood, entry.Notes, temp, code, wt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save mood entry: %w", err)
	}

	return nil
}

const selectColumns = `
	SELECT id, date, mood_score, mood, notes, temperature, weathercode, weather_time
	FROM mood_entries
`

// ListMoods retrieves the mood history from PostgreSQL
func (r *PostgresRepository) ListMoods(ctx context.Context) ([]domain.MoodEntry, error) {
	rows, err := r.pool.Query(ctx, selectColumns+` ORDER BY date ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query mood entries: %w", err)
	}
	defer rows.Close()

	results := make([]domain.MoodEntry, 0)
	for rows.Next() {
		e, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate mood entries: %w", err)
	}

	return results, nil
}

// GetMoodByDate retrieves the latest entry recorded on date
func (r *PostgresRepository) GetMoodByDate(ctx context.Context, date string) (domain.MoodEntry, error) {
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return domain.MoodEntry{}, fmt.Errorf("postgres: invalid mood date %q: %w", date, err)
	}

	row := r.pool.QueryRow(ctx, selectColumns+` WHERE date = $1 ORDER BY created_at DESC LIMIT 1`, day)
	e, err := scanMood(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MoodEntry{}, domain.ErrNotFound
	}
	return e, err
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

func scanMood(row pgx.Row) (domain.MoodEntry, error) {
	var (
		e    domain.MoodEntry
		day  time.Time
		temp *float64
		code *int
		wt   *string
	)
	if err := row.Scan(&e.ID, &day, &e.MoodScore, &e.Mood, &e.Notes, &temp, &code, &wt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e, err
		}
		return e, fmt.Errorf("postgres: failed to scan mood row: %w", err)
	}

	e.Date = day.Format(domain.DateLayout)
	if temp != nil && code != nil {
		e.Weather = &domain.WeatherEntry{Temperature: *temp, WeatherCode: *code}
		if wt != nil {
			e.Weather.Time = *wt
		}
	}
	return e, nil
}
