// Package intake handles new safety complaints: it persists the complaint,
// applies the one-pending-task-per-content dedup guard, and conditionally
// publishes a review task.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/boliek/contentsafety/internal/domain/enums"
	"github.com/boliek/contentsafety/internal/domain/model"
)

// ErrValidation marks complaint filings rejected before any write happened.
var ErrValidation = errors.New("invalid complaint filing")

type DispatchStatus string

const (
	// DispatchPublished: a review task was published for this complaint.
	DispatchPublished DispatchStatus = "dispatched"
	// DispatchDuplicate: an unresolved complaint already holds a task for
	// this content, so no new task was published.
	DispatchDuplicate DispatchStatus = "duplicate"
	// DispatchFailed: the queue publish failed. The complaint row exists and
	// can be picked up by a reconciliation sweep.
	DispatchFailed DispatchStatus = "publish_failed"
)

type PinnerStore interface {
	GetByEmail(ctx context.Context, email string) (model.Pinner, error)
}

type ComplaintStore interface {
	Create(ctx context.Context, complaint model.Complaint) (int64, error)
	HasOpenForContent(ctx context.Context, contentID int64) (bool, error)
}

type TaskPublisher interface {
	Publish(ctx context.Context, payload any) (string, error)
}

type Filing struct {
	PinnerEmail   string
	ContentID     int64
	DisplayStatus enums.DisplayStatus
	ComplaintType enums.ComplaintType
}

type FilingResult struct {
	ComplaintID int64
	Dispatch    DispatchStatus
	MessageID   string
}

type Service struct {
	pinners    PinnerStore
	complaints ComplaintStore
	publisher  TaskPublisher
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(pinners PinnerStore, complaints ComplaintStore, publisher TaskPublisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		pinners:    pinners,
		complaints: complaints,
		publisher:  publisher,
		now:        time.Now,
		logger:     logger,
	}
}

// FileComplaint records the complaint unconditionally and publishes a review
// task unless one is already outstanding for the content. A failed publish is
// reported in the result, never as an error: the complaint row is durable
// either way.
func (s *Service) FileComplaint(ctx context.Context, filing Filing) (FilingResult, error) {
	if s.pinners == nil || s.complaints == nil || s.publisher == nil {
		return FilingResult{}, fmt.Errorf("intake service dependencies are not configured")
	}
	if strings.TrimSpace(filing.PinnerEmail) == "" {
		return FilingResult{}, fmt.Errorf("pinner email is required: %w", ErrValidation)
	}
	if filing.ContentID <= 0 {
		return FilingResult{}, fmt.Errorf("invalid content id: %w", ErrValidation)
	}

	pinner, err := s.pinners.GetByEmail(ctx, filing.PinnerEmail)
	if err != nil {
		return FilingResult{}, err
	}

	taskOutstanding, err := s.complaints.HasOpenForContent(ctx, filing.ContentID)
	if err != nil {
		return FilingResult{}, err
	}

	complaint := model.Complaint{
		ComplaintTimestamp: s.now(),
		ComplaintType:      filing.ComplaintType,
		ProcessStatus:      enums.ProcessStatusComplaint,
		DisplayStatus:      filing.DisplayStatus,
		PinnerID:           pinner.PinnerID,
		ContentID:          filing.ContentID,
	}

	complaintID, err := s.complaints.Create(ctx, complaint)
	if err != nil {
		return FilingResult{}, err
	}

	if taskOutstanding {
		return FilingResult{ComplaintID: complaintID, Dispatch: DispatchDuplicate}, nil
	}

	task := model.ReviewTask{
		ComplaintID:        complaintID,
		ContentID:          complaint.ContentID,
		PinnerID:           complaint.PinnerID,
		DisplayStatus:      complaint.DisplayStatus,
		ComplaintType:      complaint.ComplaintType,
		ComplaintTimestamp: complaint.ComplaintTimestamp,
	}

	messageID, err := s.publisher.Publish(ctx, task)
	if err != nil {
		s.logger.Error("publish review task failed",
			zap.Error(err),
			zap.Int64("complaint_id", complaintID),
			zap.Int64("content_id", complaint.ContentID),
		)
		return FilingResult{ComplaintID: complaintID, Dispatch: DispatchFailed}, nil
	}

	return FilingResult{ComplaintID: complaintID, Dispatch: DispatchPublished, MessageID: messageID}, nil
}
