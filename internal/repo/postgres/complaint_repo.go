package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boliek/contentsafety/internal/domain/enums"
	"github.com/boliek/contentsafety/internal/domain/model"
)

var ErrComplaintNotFound = errors.New("complaint not found")

type ComplaintRepo struct {
	pool *pgxpool.Pool
}

func NewComplaintRepo(pool *pgxpool.Pool) *ComplaintRepo {
	return &ComplaintRepo{pool: pool}
}

func (r *ComplaintRepo) Create(ctx context.Context, complaint model.Complaint) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if complaint.ContentID <= 0 || complaint.PinnerID <= 0 {
		return 0, fmt.Errorf("invalid complaint payload")
	}

	var id int64
	if err := r.pool.QueryRow(ctx, `
INSERT INTO complaints (
	complaint_timestamp,
	complaint_type,
	process_status,
	display_status,
	pinner_id,
	content_id
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING complaint_id
`,
		complaint.ComplaintTimestamp,
		string(complaint.ComplaintType),
		string(complaint.ProcessStatus),
		string(complaint.DisplayStatus),
		complaint.PinnerID,
		complaint.ContentID,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("create complaint: %w", err)
	}

	return id, nil
}

func (r *ComplaintRepo) GetByID(ctx context.Context, complaintID int64) (model.Complaint, error) {
	if r.pool == nil {
		return model.Complaint{}, fmt.Errorf("postgres pool is nil")
	}
	if complaintID <= 0 {
		return model.Complaint{}, fmt.Errorf("invalid complaint id")
	}

	row := r.pool.QueryRow(ctx, `
SELECT complaint_id, complaint_timestamp, complaint_type, process_status, display_status,
       review_timestamp, pinner_id, reviewer_id, content_id
FROM complaints
WHERE complaint_id = $1
LIMIT 1
`, complaintID)

	complaint, err := scanComplaint(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Complaint{}, ErrComplaintNotFound
		}
		return model.Complaint{}, fmt.Errorf("query complaint by id: %w", err)
	}

	return complaint, nil
}

func (r *ComplaintRepo) List(ctx context.Context) ([]model.Complaint, error) {
	return r.list(ctx, `
SELECT complaint_id, complaint_timestamp, complaint_type, process_status, display_status,
       review_timestamp, pinner_id, reviewer_id, content_id
FROM complaints
ORDER BY complaint_id
`)
}

func (r *ComplaintRepo) ListByContent(ctx context.Context, contentID int64) ([]model.Complaint, error) {
	if contentID <= 0 {
		return nil, fmt.Errorf("invalid content id")
	}

	return r.list(ctx, `
SELECT complaint_id, complaint_timestamp, complaint_type, process_status, display_status,
       review_timestamp, pinner_id, reviewer_id, content_id
FROM complaints
WHERE content_id = $1
ORDER BY complaint_id
`, contentID)
}

// HasOpenForContent reports whether any complaint for the content is still in
// the filed state, meaning a review task is already outstanding.
func (r *ComplaintRepo) HasOpenForContent(ctx context.Context, contentID int64) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}
	if contentID <= 0 {
		return false, fmt.Errorf("invalid content id")
	}

	var open bool
	if err := r.pool.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1
	FROM complaints
	WHERE content_id = $1 AND process_status = $2
)
`, contentID, string(enums.ProcessStatusComplaint)).Scan(&open); err != nil {
		return false, fmt.Errorf("check open complaints: %w", err)
	}

	return open, nil
}

// ResolveAllForContent closes every complaint filed against the content in a
// single transaction, stamping them with the same reviewer and timestamp. When
// upheldStatus is non-nil the content row and the complaint history take that
// display status as well. Re-running against an already resolved set rewrites
// the same terminal values, so redelivered review tasks are harmless.
func (r *ComplaintRepo) ResolveAllForContent(
	ctx context.Context,
	contentID, reviewerID int64,
	reviewedAt time.Time,
	upheldStatus *enums.DisplayStatus,
) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if contentID <= 0 || reviewerID <= 0 {
		return fmt.Errorf("invalid resolution payload")
	}

	return WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
UPDATE complaints
SET
	process_status = $2,
	reviewer_id = $3,
	review_timestamp = $4
WHERE content_id = $1
`, contentID, string(enums.ProcessStatusDone), reviewerID, reviewedAt); err != nil {
			return fmt.Errorf("resolve complaints for content: %w", err)
		}

		if upheldStatus == nil {
			return nil
		}

		if _, err := tx.Exec(ctx, `
UPDATE complaints
SET display_status = $2
WHERE content_id = $1
`, contentID, string(*upheldStatus)); err != nil {
			return fmt.Errorf("propagate display status to complaints: %w", err)
		}

		if _, err := tx.Exec(ctx, `
UPDATE contents
SET display_status = $2
WHERE content_id = $1
`, contentID, string(*upheldStatus)); err != nil {
			return fmt.Errorf("update content display status: %w", err)
		}

		return nil
	})
}

func (r *ComplaintRepo) list(ctx context.Context, query string, args ...any) ([]model.Complaint, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer rows.Close()

	var complaints []model.Complaint
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan complaint row: %w", err)
		}
		complaints = append(complaints, complaint)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate complaint rows: %w", err)
	}

	return complaints, nil
}

func scanComplaint(row pgx.Row) (model.Complaint, error) {
	var (
		complaint     model.Complaint
		complaintType string
		processStatus string
		displayStatus string
	)

	if err := row.Scan(
		&complaint.ComplaintID,
		&complaint.ComplaintTimestamp,
		&complaintType,
		&processStatus,
		&displayStatus,
		&complaint.ReviewTimestamp,
		&complaint.PinnerID,
		&complaint.ReviewerID,
		&complaint.ContentID,
	); err != nil {
		return model.Complaint{}, err
	}

	var err error
	if complaint.ComplaintType, err = enums.ParseComplaintType(complaintType); err != nil {
		return model.Complaint{}, fmt.Errorf("decode complaint row: %w", err)
	}
	if complaint.ProcessStatus, err = enums.ParseProcessStatus(processStatus); err != nil {
		return model.Complaint{}, fmt.Errorf("decode complaint row: %w", err)
	}
	if complaint.DisplayStatus, err = enums.ParseDisplayStatus(displayStatus); err != nil {
		return model.Complaint{}, fmt.Errorf("decode complaint row: %w", err)
	}

	return complaint, nil
}
