// Package review hands queued review tasks to reviewers and applies their
// verdicts. A single verdict resolves every complaint outstanding against the
// content, since at most one task is ever in flight per content item.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/boliek/contentsafety/internal/domain/enums"
	"github.com/boliek/contentsafety/internal/domain/model"
	pgrepo "github.com/boliek/contentsafety/internal/repo/postgres"
	"github.com/boliek/contentsafety/internal/repo/redisq"
)

const (
	defaultVisibilityTimeout = 10 * time.Minute
	signedURLTTL             = 5 * time.Minute
)

// ErrValidation marks resolve requests rejected before any write happened.
var ErrValidation = errors.New("invalid review request")

// ErrContentGone is returned when a task references content that no longer
// exists. The pending review still carries the receipt handle so the caller
// can decide to acknowledge and drop the task.
var ErrContentGone = errors.New("content for review task no longer exists")

type TaskQueue interface {
	Receive(ctx context.Context, visibility time.Duration) (redisq.Message, error)
	Delete(ctx context.Context, receiptHandle string) error
}

type ComplaintStore interface {
	GetByID(ctx context.Context, complaintID int64) (model.Complaint, error)
	ResolveAllForContent(ctx context.Context, contentID, reviewerID int64, reviewedAt time.Time, upheldStatus *enums.DisplayStatus) error
}

type ContentStore interface {
	GetByID(ctx context.Context, contentID int64) (model.Content, error)
}

type ReviewerStore interface {
	GetByEmail(ctx context.Context, email string) (model.Reviewer, error)
}

type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// PendingReview is one received task resolved into display data. The receipt
// handle must travel with the reviewer's session unchanged: it is the only
// capability that can acknowledge the queue message.
type PendingReview struct {
	Task          model.ReviewTask
	Content       model.Content
	ContentURL    string
	MessageID     string
	ReceiptHandle string
}

type Dependencies struct {
	Queue      TaskQueue
	Complaints ComplaintStore
	Contents   ContentStore
	Reviewers  ReviewerStore
	Logger     *zap.Logger
}

type Config struct {
	VisibilityTimeout time.Duration
}

type Service struct {
	queue      TaskQueue
	complaints ComplaintStore
	contents   ContentStore
	reviewers  ReviewerStore
	signer     URLSigner
	visibility time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(deps Dependencies, cfg Config) *Service {
	visibility := cfg.VisibilityTimeout
	if visibility <= 0 {
		visibility = defaultVisibilityTimeout
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		queue:      deps.Queue,
		complaints: deps.Complaints,
		contents:   deps.Contents,
		reviewers:  deps.Reviewers,
		visibility: visibility,
		now:        time.Now,
		logger:     logger,
	}
}

// AttachSigner enables presigning for content rows that store a bare object
// key instead of an absolute URL.
func (s *Service) AttachSigner(signer URLSigner) {
	s.signer = signer
}

// FetchNextReview pulls at most one task from the queue. A nil result with a
// nil error means the queue is empty; a transport failure is always surfaced
// as an error so callers never mistake it for "no work".
func (s *Service) FetchNextReview(ctx context.Context) (*PendingReview, error) {
	if s.queue == nil || s.contents == nil {
		return nil, fmt.Errorf("review service dependencies are not configured")
	}

	msg, err := s.queue.Receive(ctx, s.visibility)
	if err != nil {
		if errors.Is(err, redisq.ErrEmpty) {
			return nil, nil
		}
		return nil, fmt.Errorf("receive review task: %w", err)
	}

	var task model.ReviewTask
	if err := json.Unmarshal(msg.Body, &task); err != nil {
		return nil, fmt.Errorf("decode review task %s: %w", msg.MessageID, err)
	}

	pending := &PendingReview{
		Task:          task,
		MessageID:     msg.MessageID,
		ReceiptHandle: msg.ReceiptHandle,
	}

	content, err := s.contents.GetByID(ctx, task.ContentID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrContentNotFound) {
			return pending, ErrContentGone
		}
		return nil, err
	}

	pending.Content = content
	pending.ContentURL, err = s.displayURL(ctx, content.URL)
	if err != nil {
		return nil, err
	}

	return pending, nil
}

// ResolveComplaint applies the verdict to every complaint that shares the
// referenced complaint's content and acknowledges the queue message. A
// missing complaint is a logged no-op that still acks: a late redelivery may
// race a resolution that already happened.
func (s *Service) ResolveComplaint(
	ctx context.Context,
	complaintID int64,
	reviewerEmail string,
	verdict enums.Verdict,
	receiptHandle string,
) error {
	if s.queue == nil || s.complaints == nil || s.reviewers == nil {
		return fmt.Errorf("review service dependencies are not configured")
	}
	if complaintID <= 0 {
		return fmt.Errorf("invalid complaint id: %w", ErrValidation)
	}
	if strings.TrimSpace(reviewerEmail) == "" {
		return fmt.Errorf("reviewer email is required: %w", ErrValidation)
	}
	if receiptHandle == "" {
		return fmt.Errorf("receipt handle is required: %w", ErrValidation)
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrComplaintNotFound) {
			s.logger.Warn("resolve skipped, complaint no longer exists",
				zap.Int64("complaint_id", complaintID),
			)
			return s.ack(ctx, receiptHandle)
		}
		return err
	}

	reviewer, err := s.reviewers.GetByEmail(ctx, reviewerEmail)
	if err != nil {
		return err
	}

	var upheldStatus *enums.DisplayStatus
	if verdict == enums.VerdictUpheld {
		status := enums.DisplayStatus(complaint.ComplaintType)
		upheldStatus = &status
	}

	if err := s.complaints.ResolveAllForContent(ctx, complaint.ContentID, reviewer.ReviewerID, s.now(), upheldStatus); err != nil {
		return err
	}

	return s.ack(ctx, receiptHandle)
}

// DropTask acknowledges a task without resolving anything. Used when the
// referenced content is gone and there is nothing left to review.
func (s *Service) DropTask(ctx context.Context, receiptHandle string) error {
	if s.queue == nil {
		return fmt.Errorf("review service dependencies are not configured")
	}
	if receiptHandle == "" {
		return fmt.Errorf("receipt handle is required")
	}
	return s.ack(ctx, receiptHandle)
}

// ack failure is surfaced but the resolution is already durable: the message
// will be redelivered and re-resolution converges on the same terminal state.
func (s *Service) ack(ctx context.Context, receiptHandle string) error {
	if err := s.queue.Delete(ctx, receiptHandle); err != nil {
		return fmt.Errorf("acknowledge review task: %w", err)
	}
	return nil
}

func (s *Service) displayURL(ctx context.Context, url string) (string, error) {
	if s.signer == nil || strings.Contains(url, "://") {
		return url, nil
	}

	signed, err := s.signer.PresignGet(ctx, url, signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("sign content url: %w", err)
	}
	return signed, nil
}
