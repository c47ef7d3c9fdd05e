package catalog

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/boliek/contentsafety/internal/domain/enums"
	"github.com/boliek/contentsafety/internal/domain/model"
	pgrepo "github.com/boliek/contentsafety/internal/repo/postgres"
)

type memoryContentStore struct {
	contents map[int64]model.Content
}

func (s *memoryContentStore) GetByID(_ context.Context, contentID int64) (model.Content, error) {
	content, ok := s.contents[contentID]
	if !ok {
		return model.Content{}, pgrepo.ErrContentNotFound
	}
	return content, nil
}

func (s *memoryContentStore) List(_ context.Context) ([]model.Content, error) {
	out := make([]model.Content, 0, len(s.contents))
	for _, content := range s.contents {
		out = append(out, content)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContentID < out[j].ContentID })
	return out, nil
}

func (s *memoryContentStore) ListVisible(ctx context.Context) ([]model.Content, error) {
	all, _ := s.List(ctx)
	var visible []model.Content
	for _, content := range all {
		if content.DisplayStatus == enums.DisplayStatusGood {
			visible = append(visible, content)
		}
	}
	return visible, nil
}

func (s *memoryContentStore) ResetAll(_ context.Context, status enums.DisplayStatus) (int64, error) {
	var affected int64
	for id, content := range s.contents {
		if content.DisplayStatus == status {
			continue
		}
		content.DisplayStatus = status
		s.contents[id] = content
		affected++
	}
	return affected, nil
}

type memoryComplaintLister struct {
	complaints []model.Complaint
}

func (s *memoryComplaintLister) List(_ context.Context) ([]model.Complaint, error) {
	return s.complaints, nil
}

func (s *memoryComplaintLister) ListByContent(_ context.Context, contentID int64) ([]model.Complaint, error) {
	var out []model.Complaint
	for _, c := range s.complaints {
		if c.ContentID == contentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestListVisibleContentHidesFlaggedRows(t *testing.T) {
	contents := &memoryContentStore{contents: map[int64]model.Content{
		1: {ContentID: 1, URL: "cat1.jpg", DisplayStatus: enums.DisplayStatusGood, PinnerID: 1},
		2: {ContentID: 2, URL: "dog1.jpg", DisplayStatus: enums.DisplayStatusObjectionable, PinnerID: 2},
		3: {ContentID: 3, URL: "bird1.jpg", DisplayStatus: enums.DisplayStatusCopyright, PinnerID: 1},
		4: {ContentID: 4, URL: "fish1.jpg", DisplayStatus: enums.DisplayStatusGood, PinnerID: 3},
	}}
	service := NewService(nil, nil, contents, nil, nil)

	visible, err := service.ListVisibleContent(context.Background())
	if err != nil {
		t.Fatalf("list visible content: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible rows, got %d", len(visible))
	}
	for _, content := range visible {
		if content.DisplayStatus != enums.DisplayStatusGood {
			t.Fatalf("flagged content leaked into visible listing: %+v", content)
		}
	}
}

func TestComplaintDashboardGroupsByProcessStatus(t *testing.T) {
	filed := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	complaints := &memoryComplaintLister{complaints: []model.Complaint{
		{ComplaintID: 1, ContentID: 1, ProcessStatus: enums.ProcessStatusComplaint, ComplaintTimestamp: filed},
		{ComplaintID: 2, ContentID: 1, ProcessStatus: enums.ProcessStatusDone, ComplaintTimestamp: filed},
		{ComplaintID: 3, ContentID: 2, ProcessStatus: enums.ProcessStatusComplaint, ComplaintTimestamp: filed},
		{ComplaintID: 4, ContentID: 3, ProcessStatus: enums.ProcessStatusReview, ComplaintTimestamp: filed},
	}}
	service := NewService(nil, nil, nil, complaints, nil)

	board, err := service.ComplaintDashboard(context.Background())
	if err != nil {
		t.Fatalf("complaint dashboard: %v", err)
	}

	if len(board.Open) != 2 {
		t.Fatalf("expected 2 open complaints, got %d", len(board.Open))
	}
	if len(board.InReview) != 1 {
		t.Fatalf("expected 1 complaint in review, got %d", len(board.InReview))
	}
	if len(board.Done) != 1 {
		t.Fatalf("expected 1 done complaint, got %d", len(board.Done))
	}
	if board.Done[0].ComplaintID != 2 {
		t.Fatalf("wrong complaint in done bucket: %d", board.Done[0].ComplaintID)
	}
}

func TestResetAllContentRestoresGoodStanding(t *testing.T) {
	contents := &memoryContentStore{contents: map[int64]model.Content{
		1: {ContentID: 1, DisplayStatus: enums.DisplayStatusObjectionable},
		2: {ContentID: 2, DisplayStatus: enums.DisplayStatusGood},
		3: {ContentID: 3, DisplayStatus: enums.DisplayStatusCopyright},
	}}
	service := NewService(nil, nil, contents, nil, nil)

	affected, err := service.ResetAllContent(context.Background())
	if err != nil {
		t.Fatalf("reset content: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 rows reset, got %d", affected)
	}
	for id, content := range contents.contents {
		if content.DisplayStatus != enums.DisplayStatusGood {
			t.Fatalf("content %d not reset: %s", id, content.DisplayStatus)
		}
	}
}

func TestListComplaintsForContentFilters(t *testing.T) {
	complaints := &memoryComplaintLister{complaints: []model.Complaint{
		{ComplaintID: 1, ContentID: 5, ProcessStatus: enums.ProcessStatusComplaint},
		{ComplaintID: 2, ContentID: 6, ProcessStatus: enums.ProcessStatusComplaint},
		{ComplaintID: 3, ContentID: 5, ProcessStatus: enums.ProcessStatusDone},
	}}
	service := NewService(nil, nil, nil, complaints, nil)

	got, err := service.ListComplaintsForContent(context.Background(), 5)
	if err != nil {
		t.Fatalf("list complaints for content: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 complaints for content 5, got %d", len(got))
	}

	if _, err := service.ListComplaintsForContent(context.Background(), 0); err == nil {
		t.Fatalf("expected error for invalid content id")
	}
}
