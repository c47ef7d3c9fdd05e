// Package catalog serves the read side of the safety workflow: pinner,
// reviewer and content listings, the complaint dashboard, and the admin
// content reset.
package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/boliek/contentsafety/internal/domain/enums"
	"github.com/boliek/contentsafety/internal/domain/model"
)

type PinnerStore interface {
	List(ctx context.Context) ([]model.Pinner, error)
}

type ReviewerStore interface {
	List(ctx context.Context) ([]model.Reviewer, error)
}

type ContentStore interface {
	GetByID(ctx context.Context, contentID int64) (model.Content, error)
	List(ctx context.Context) ([]model.Content, error)
	ListVisible(ctx context.Context) ([]model.Content, error)
	ResetAll(ctx context.Context, status enums.DisplayStatus) (int64, error)
}

type ComplaintStore interface {
	List(ctx context.Context) ([]model.Complaint, error)
	ListByContent(ctx context.Context, contentID int64) ([]model.Complaint, error)
}

// ComplaintBoard groups every complaint by its position in the workflow.
type ComplaintBoard struct {
	Open     []model.Complaint
	InReview []model.Complaint
	Done     []model.Complaint
}

type Service struct {
	pinners    PinnerStore
	reviewers  ReviewerStore
	contents   ContentStore
	complaints ComplaintStore
	logger     *zap.Logger
}

func NewService(
	pinners PinnerStore,
	reviewers ReviewerStore,
	contents ContentStore,
	complaints ComplaintStore,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		pinners:    pinners,
		reviewers:  reviewers,
		contents:   contents,
		complaints: complaints,
		logger:     logger,
	}
}

func (s *Service) ListPinners(ctx context.Context) ([]model.Pinner, error) {
	if s.pinners == nil {
		return nil, fmt.Errorf("pinner store is not configured")
	}
	return s.pinners.List(ctx)
}

func (s *Service) ListReviewers(ctx context.Context) ([]model.Reviewer, error) {
	if s.reviewers == nil {
		return nil, fmt.Errorf("reviewer store is not configured")
	}
	return s.reviewers.List(ctx)
}

func (s *Service) GetContent(ctx context.Context, contentID int64) (model.Content, error) {
	if s.contents == nil {
		return model.Content{}, fmt.Errorf("content store is not configured")
	}
	if contentID <= 0 {
		return model.Content{}, fmt.Errorf("invalid content id")
	}
	return s.contents.GetByID(ctx, contentID)
}

func (s *Service) ListContent(ctx context.Context) ([]model.Content, error) {
	if s.contents == nil {
		return nil, fmt.Errorf("content store is not configured")
	}
	return s.contents.List(ctx)
}

// ListVisibleContent is the pinner-facing board: only content still in good
// standing appears.
func (s *Service) ListVisibleContent(ctx context.Context) ([]model.Content, error) {
	if s.contents == nil {
		return nil, fmt.Errorf("content store is not configured")
	}
	return s.contents.ListVisible(ctx)
}

func (s *Service) ListComplaints(ctx context.Context) ([]model.Complaint, error) {
	if s.complaints == nil {
		return nil, fmt.Errorf("complaint store is not configured")
	}
	return s.complaints.List(ctx)
}

func (s *Service) ListComplaintsForContent(ctx context.Context, contentID int64) ([]model.Complaint, error) {
	if s.complaints == nil {
		return nil, fmt.Errorf("complaint store is not configured")
	}
	if contentID <= 0 {
		return nil, fmt.Errorf("invalid content id")
	}
	return s.complaints.ListByContent(ctx, contentID)
}

// ComplaintDashboard groups every complaint by process status for the
// manager view.
func (s *Service) ComplaintDashboard(ctx context.Context) (ComplaintBoard, error) {
	if s.complaints == nil {
		return ComplaintBoard{}, fmt.Errorf("complaint store is not configured")
	}

	complaints, err := s.complaints.List(ctx)
	if err != nil {
		return ComplaintBoard{}, fmt.Errorf("list complaints: %w", err)
	}

	var board ComplaintBoard
	for _, complaint := range complaints {
		switch complaint.ProcessStatus {
		case enums.ProcessStatusComplaint:
			board.Open = append(board.Open, complaint)
		case enums.ProcessStatusReview:
			board.InReview = append(board.InReview, complaint)
		case enums.ProcessStatusDone:
			board.Done = append(board.Done, complaint)
		default:
			s.logger.Warn("complaint with unknown process status skipped",
				zap.Int64("complaint_id", complaint.ComplaintID),
				zap.String("process_status", string(complaint.ProcessStatus)),
			)
		}
	}

	return board, nil
}

// ResetAllContent restores every content row to good standing. Complaint
// history is left untouched.
func (s *Service) ResetAllContent(ctx context.Context) (int64, error) {
	if s.contents == nil {
		return 0, fmt.Errorf("content store is not configured")
	}

	affected, err := s.contents.ResetAll(ctx, enums.DisplayStatusGood)
	if err != nil {
		return 0, fmt.Errorf("reset content display status: %w", err)
	}

	s.logger.Info("content display status reset", zap.Int64("rows", affected))
	return affected, nil
}
