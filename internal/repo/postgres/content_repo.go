package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boliek/contentsafety/internal/domain/enums"
	"github.com/boliek/contentsafety/internal/domain/model"
)

var ErrContentNotFound = errors.New("content not found")

type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

func (r *ContentRepo) GetByID(ctx context.Context, contentID int64) (model.Content, error) {
	if r.pool == nil {
		return model.Content{}, fmt.Errorf("postgres pool is nil")
	}
	if contentID <= 0 {
		return model.Content{}, fmt.Errorf("invalid content id")
	}

	var (
		content model.Content
		status  string
	)
	err := r.pool.QueryRow(ctx, `
SELECT content_id, url, display_status, pinner_id
FROM contents
WHERE content_id = $1
LIMIT 1
`, contentID).Scan(&content.ContentID, &content.URL, &status, &content.PinnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Content{}, ErrContentNotFound
		}
		return model.Content{}, fmt.Errorf("query content by id: %w", err)
	}

	content.DisplayStatus, err = enums.ParseDisplayStatus(status)
	if err != nil {
		return model.Content{}, fmt.Errorf("decode content row: %w", err)
	}

	return content, nil
}

func (r *ContentRepo) List(ctx context.Context) ([]model.Content, error) {
	return r.list(ctx, `
SELECT content_id, url, display_status, pinner_id
FROM contents
ORDER BY content_id
`)
}

// ListVisible returns only content a pinner board may show.
func (r *ContentRepo) ListVisible(ctx context.Context) ([]model.Content, error) {
	return r.list(ctx, `
SELECT content_id, url, display_status, pinner_id
FROM contents
WHERE display_status = $1
ORDER BY content_id
`, string(enums.DisplayStatusGood))
}

func (r *ContentRepo) Create(ctx context.Context, url string, status enums.DisplayStatus, pinnerID int64) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if url == "" || pinnerID <= 0 {
		return 0, fmt.Errorf("invalid content payload")
	}

	var id int64
	if err := r.pool.QueryRow(ctx, `
INSERT INTO contents (url, display_status, pinner_id)
VALUES ($1, $2, $3)
RETURNING content_id
`, url, string(status), pinnerID).Scan(&id); err != nil {
		return 0, fmt.Errorf("create content: %w", err)
	}

	return id, nil
}

// ResetAll restores every content row to the given display status. Complaint
// rows are untouched and each row is updated independently of the others.
func (r *ContentRepo) ResetAll(ctx context.Context, status enums.DisplayStatus) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE contents
SET display_status = $1
`, string(status))
	if err != nil {
		return 0, fmt.Errorf("reset content display status: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *ContentRepo) list(ctx context.Context, query string, args ...any) ([]model.Content, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	defer rows.Close()

	var contents []model.Content
	for rows.Next() {
		var (
			content model.Content
			status  string
		)
		if err := rows.Scan(&content.ContentID, &content.URL, &status, &content.PinnerID); err != nil {
			return nil, fmt.Errorf("scan content row: %w", err)
		}
		content.DisplayStatus, err = enums.ParseDisplayStatus(status)
		if err != nil {
			return nil, fmt.Errorf("decode content row: %w", err)
		}
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content rows: %w", err)
	}

	return contents, nil
}
