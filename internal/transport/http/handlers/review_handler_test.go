package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boliek/contentsafety/internal/domain/enums"
	"github.com/boliek/contentsafety/internal/domain/model"
	pgrepo "github.com/boliek/contentsafety/internal/repo/postgres"
	"github.com/boliek/contentsafety/internal/repo/redisq"
	reviewsvc "github.com/boliek/contentsafety/internal/services/review"
	"github.com/boliek/contentsafety/internal/transport/http/dto"
)

type stubTaskQueue struct {
	messages []redisq.Message
	deleted  []string
}

func (q *stubTaskQueue) Receive(context.Context, time.Duration) (redisq.Message, error) {
	if len(q.messages) == 0 {
		return redisq.Message{}, redisq.ErrEmpty
	}
	msg := q.messages[0]
	q.messages = q.messages[1:]
	return msg, nil
}

func (q *stubTaskQueue) Delete(_ context.Context, receiptHandle string) error {
	q.deleted = append(q.deleted, receiptHandle)
	return nil
}

type stubReviewStores struct {
	complaints map[int64]model.Complaint
	contents   map[int64]model.Content
	reviewers  map[string]model.Reviewer
	resolved   int
}

func (s *stubReviewStores) GetByID(_ context.Context, complaintID int64) (model.Complaint, error) {
	complaint, ok := s.complaints[complaintID]
	if !ok {
		return model.Complaint{}, pgrepo.ErrComplaintNotFound
	}
	return complaint, nil
}

func (s *stubReviewStores) ResolveAllForContent(context.Context, int64, int64, time.Time, *enums.DisplayStatus) error {
	s.resolved++
	return nil
}

type stubContentStore struct{ stores *stubReviewStores }

func (s stubContentStore) GetByID(_ context.Context, contentID int64) (model.Content, error) {
	content, ok := s.stores.contents[contentID]
	if !ok {
		return model.Content{}, pgrepo.ErrContentNotFound
	}
	return content, nil
}

type stubReviewerStore struct{ stores *stubReviewStores }

func (s stubReviewerStore) GetByEmail(_ context.Context, email string) (model.Reviewer, error) {
	reviewer, ok := s.stores.reviewers[email]
	if !ok {
		return model.Reviewer{}, pgrepo.ErrReviewerNotFound
	}
	return reviewer, nil
}

func taskMessage(t *testing.T, task model.ReviewTask, receipt string) redisq.Message {
	t.Helper()
	body, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal task: %v", err)
	}
	return redisq.Message{MessageID: "msg-" + receipt, ReceiptHandle: receipt, Body: body}
}

func newReviewHandler(queue *stubTaskQueue, stores *stubReviewStores) *ReviewHandler {
	service := reviewsvc.NewService(reviewsvc.Dependencies{
		Queue:      queue,
		Complaints: stores,
		Contents:   stubContentStore{stores: stores},
		Reviewers:  stubReviewerStore{stores: stores},
	}, reviewsvc.Config{})
	return NewReviewHandler(service, nil)
}

func TestNextReviewEndpoint(t *testing.T) {
	stores := &stubReviewStores{
		contents: map[int64]model.Content{
			11: {ContentID: 11, URL: "https://cdn.example.com/gerbil1.jpg", DisplayStatus: enums.DisplayStatusGood},
		},
	}
	queue := &stubTaskQueue{messages: []redisq.Message{
		taskMessage(t, model.ReviewTask{ComplaintID: 1, ContentID: 11, ComplaintType: enums.ComplaintTypeObjectionable}, "r1"),
	}}
	handler := newReviewHandler(queue, stores)

	rec := httptest.NewRecorder()
	handler.Next(rec, httptest.NewRequest(http.MethodGet, "/reviews/next", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d, body %s", rec.Code, rec.Body.String())
	}

	var resp dto.NextReviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Review == nil {
		t.Fatalf("expected a pending review")
	}
	if resp.Review.ComplaintID != 1 || resp.Review.ContentID != 11 {
		t.Fatalf("unexpected review payload: %+v", resp.Review)
	}
	if resp.Review.ReceiptHandle != "r1" {
		t.Fatalf("receipt handle missing from payload: %+v", resp.Review)
	}
}

func TestNextReviewEndpointEmptyQueue(t *testing.T) {
	handler := newReviewHandler(&stubTaskQueue{}, &stubReviewStores{})

	rec := httptest.NewRecorder()
	handler.Next(rec, httptest.NewRequest(http.MethodGet, "/reviews/next", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var resp dto.NextReviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Review != nil {
		t.Fatalf("expected empty review, got %+v", resp.Review)
	}
}

func TestNextReviewEndpointDropsOrphanedTask(t *testing.T) {
	queue := &stubTaskQueue{messages: []redisq.Message{
		taskMessage(t, model.ReviewTask{ComplaintID: 9, ContentID: 404}, "r-orphan"),
	}}
	handler := newReviewHandler(queue, &stubReviewStores{})

	rec := httptest.NewRecorder()
	handler.Next(rec, httptest.NewRequest(http.MethodGet, "/reviews/next", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if len(queue.deleted) != 1 || queue.deleted[0] != "r-orphan" {
		t.Fatalf("expected orphaned task to be acknowledged, deleted %v", queue.deleted)
	}
}

func TestResolveEndpoint(t *testing.T) {
	stores := &stubReviewStores{
		complaints: map[int64]model.Complaint{
			1: {ComplaintID: 1, ContentID: 11, ComplaintType: enums.ComplaintTypeObjectionable, ProcessStatus: enums.ProcessStatusComplaint},
		},
		reviewers: map[string]model.Reviewer{
			"alice@example.com": {ReviewerID: 1, Email: "alice@example.com"},
		},
	}
	queue := &stubTaskQueue{}
	handler := newReviewHandler(queue, stores)

	body, _ := json.Marshal(dto.ResolveComplaintRequest{
		ComplaintID:   1,
		ReviewerEmail: "alice@example.com",
		Verdict:       string(enums.VerdictUpheld),
		ReceiptHandle: "r1",
	})
	rec := httptest.NewRecorder()
	handler.Resolve(rec, httptest.NewRequest(http.MethodPost, "/reviews/resolve", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d, body %s", rec.Code, rec.Body.String())
	}
	if stores.resolved != 1 {
		t.Fatalf("expected one resolution, got %d", stores.resolved)
	}
	if len(queue.deleted) != 1 {
		t.Fatalf("expected message to be acknowledged")
	}
}

func TestResolveEndpointUnknownReviewer(t *testing.T) {
	stores := &stubReviewStores{
		complaints: map[int64]model.Complaint{
			1: {ComplaintID: 1, ContentID: 11, ProcessStatus: enums.ProcessStatusComplaint},
		},
	}
	handler := newReviewHandler(&stubTaskQueue{}, stores)

	body, _ := json.Marshal(dto.ResolveComplaintRequest{
		ComplaintID:   1,
		ReviewerEmail: "ghost@example.com",
		Verdict:       string(enums.VerdictUpheld),
		ReceiptHandle: "r1",
	})
	rec := httptest.NewRecorder()
	handler.Resolve(rec, httptest.NewRequest(http.MethodPost, "/reviews/resolve", bytes.NewReader(body)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusNotFound)
	}
}

func TestResolveEndpointRejectsBadVerdict(t *testing.T) {
	handler := newReviewHandler(&stubTaskQueue{}, &stubReviewStores{})

	body, _ := json.Marshal(dto.ResolveComplaintRequest{
		ComplaintID:   1,
		ReviewerEmail: "alice@example.com",
		Verdict:       "maybe",
		ReceiptHandle: "r1",
	})
	rec := httptest.NewRecorder()
	handler.Resolve(rec, httptest.NewRequest(http.MethodPost, "/reviews/resolve", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}
