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

var ErrPinnerNotFound = errors.New("pinner not found")

type PinnerRepo struct {
	pool *pgxpool.Pool
}

func NewPinnerRepo(pool *pgxpool.Pool) *PinnerRepo {
	return &PinnerRepo{pool: pool}
}

// GetByEmail assumes a one-to-one mapping between pinners and emails.
func (r *PinnerRepo) GetByEmail(ctx context.Context, email string) (model.Pinner, error) {
	if r.pool == nil {
		return model.Pinner{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(email) == "" {
		return model.Pinner{}, fmt.Errorf("pinner email is required")
	}

	var pinner model.Pinner
	err := r.pool.QueryRow(ctx, `
SELECT pinner_id, name, email
FROM pinners
WHERE email = $1
LIMIT 1
`, strings.TrimSpace(email)).Scan(&pinner.PinnerID, &pinner.Name, &pinner.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Pinner{}, ErrPinnerNotFound
		}
		return model.Pinner{}, fmt.Errorf("query pinner by email: %w", err)
	}

	return pinner, nil
}

func (r *PinnerRepo) List(ctx context.Context) ([]model.Pinner, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT pinner_id, name, email
FROM pinners
ORDER BY pinner_id
`)
	if err != nil {
		return nil, fmt.Errorf("list pinners: %w", err)
	}
	defer rows.Close()

	var pinners []model.Pinner
	for rows.Next() {
		var pinner model.Pinner
		if err := rows.Scan(&pinner.PinnerID, &pinner.Name, &pinner.Email); err != nil {
			return nil, fmt.Errorf("scan pinner row: %w", err)
		}
		pinners = append(pinners, pinner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pinner rows: %w", err)
	}

	return pinners, nil
}

func (r *PinnerRepo) Create(ctx context.Context, name, email string) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(email) == "" {
		return 0, fmt.Errorf("pinner email is required")
	}

	var id int64
	if err := r.pool.QueryRow(ctx, `
INSERT INTO pinners (name, email)
VALUES ($1, $2)
RETURNING pinner_id
`, strings.TrimSpace(name), strings.TrimSpace(email)).Scan(&id); err != nil {
		return 0, fmt.Errorf("create pinner: %w", err)
	}

	return id, nil
}
