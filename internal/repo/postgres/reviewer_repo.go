package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boliek/contentsafety/internal/domain/model"
)

var ErrReviewerNotFound = errors.New("reviewer not found")

type ReviewerRepo struct {
	pool *pgxpool.Pool
}

func NewReviewerRepo(pool *pgxpool.Pool) *ReviewerRepo {
	return &ReviewerRepo{pool: pool}
}

func (r *ReviewerRepo) GetByEmail(ctx context.Context, email string) (model.Reviewer, error) {
	if r.pool == nil {
		return model.Reviewer{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(email) == "" {
		return model.Reviewer{}, fmt.Errorf("reviewer email is required")
	}

	var reviewer model.Reviewer
	err := r.pool.QueryRow(ctx, `
SELECT reviewer_id, name, email
FROM reviewers
WHERE email = $1
LIMIT 1
`, strings.TrimSpace(email)).Scan(&reviewer.ReviewerID, &reviewer.Name, &reviewer.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Reviewer{}, ErrReviewerNotFound
		}
		return model.Reviewer{}, fmt.Errorf("query reviewer by email: %w", err)
	}

	return reviewer, nil
}

func (r *ReviewerRepo) List(ctx context.Context) ([]model.Reviewer, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT reviewer_id, name, email
FROM reviewers
ORDER BY reviewer_id
`)
	if err != nil {
		return nil, fmt.Errorf("list reviewers: %w", err)
	}
	defer rows.Close()

	var reviewers []model.Reviewer
	for rows.Next() {
		var reviewer model.Reviewer
		if err := rows.Scan(&reviewer.ReviewerID, &reviewer.Name, &reviewer.Email); err != nil {
			return nil, fmt.Errorf("scan reviewer row: %w", err)
		}
		reviewers = append(reviewers, reviewer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviewer rows: %w", err)
	}

	return reviewers, nil
}

func (r *ReviewerRepo) Create(ctx context.Context, name, email string) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(email) == "" {
		return 0, fmt.Errorf("reviewer email is required")
	}

	var id int64
	if err := r.pool.QueryRow(ctx, `
INSERT INTO reviewers (name, email)
VALUES ($1, $2)
RETURNING reviewer_id
`, strings.TrimSpace(name), strings.TrimSpace(email)).Scan(&id); err != nil {
		return 0, fmt.Errorf("create reviewer: %w", err)
	}

	return id, nil
}
