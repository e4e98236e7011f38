// Package postgres provides pgx-backed catalog persistence.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/exerciseresolver/internal/domain"
)

const uniqueViolation = "23505"

// Repository persists the exercise catalog in Postgres. The unique index on
// slug is what enforces catalog-wide slug uniqueness; concurrent creates for
// the same slug surface as domain.ErrDuplicateSlug.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the exercises table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS exercises (
        id SERIAL PRIMARY KEY,
        slug TEXT NOT NULL UNIQUE,
        name TEXT NOT NULL,
        category TEXT NOT NULL,
        video_id TEXT,
        thumbnail_url TEXT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`
	_, err := r.pool.Exec(ctx, ddl)
	return err
}

// ListExercises returns the full catalog ordered by slug.
func (r *Repository) ListExercises(ctx context.Context) ([]domain.CanonicalExercise, error) {
	const query = `SELECT id, slug, name, category, video_id, thumbnail_url, created_at, updated_at
        FROM exercises ORDER BY slug`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]domain.CanonicalExercise, 0)
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	return exercises, rows.Err()
}

// GetExercise returns the entry with the given id.
func (r *Repository) GetExercise(ctx context.Context, id int) (*domain.CanonicalExercise, error) {
	const query = `SELECT id, slug, name, category, video_id, thumbnail_url, created_at, updated_at
        FROM exercises WHERE id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	exercise, err := scanExercise(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExerciseNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// CreateExercise inserts a new entry and returns it with its assigned id.
func (r *Repository) CreateExercise(ctx context.Context, fields domain.NewExercise) (*domain.CanonicalExercise, error) {
	const query = `INSERT INTO exercises (slug, name, category)
        VALUES ($1, $2, $3)
        RETURNING id, slug, name, category, video_id, thumbnail_url, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, fields.Slug, fields.Name, string(fields.Category))
	exercise, err := scanExercise(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateSlug, fields.Slug)
		}
		return nil, err
	}
	return &exercise, nil
}

// UpdateExercise applies the non-nil patch fields and returns the row.
func (r *Repository) UpdateExercise(ctx context.Context, id int, patch domain.ExercisePatch) (*domain.CanonicalExercise, error) {
	const query = `UPDATE exercises SET
        name = COALESCE($2, name),
        video_id = COALESCE($3, video_id),
        thumbnail_url = COALESCE($4, thumbnail_url),
        updated_at = NOW()
        WHERE id=$1
        RETURNING id, slug, name, category, video_id, thumbnail_url, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, id, patch.Name, patch.VideoID, patch.ThumbnailURL)
	exercise, err := scanExercise(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExerciseNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func scanExercise(row pgx.Row) (domain.CanonicalExercise, error) {
	var exercise domain.CanonicalExercise
	var category string
	var videoID, thumbnailURL *string
	if err := row.Scan(&exercise.ID, &exercise.Slug, &exercise.Name, &category, &videoID, &thumbnailURL, &exercise.CreatedAt, &exercise.UpdatedAt); err != nil {
		return domain.CanonicalExercise{}, err
	}
	exercise.Category = domain.Category(category)
	if videoID != nil {
		exercise.VideoID = *videoID
	}
	if thumbnailURL != nil {
		exercise.ThumbnailURL = *thumbnailURL
	}
	return exercise, nil
}

var _ domain.Store = (*Repository)(nil)
