package dto

import "time"

type FileComplaintRequest struct {
	PinnerEmail   string `json:"pinner_email"`
	ContentID     int64  `json:"content_id"`
	DisplayStatus string `json:"display_status"`
	ComplaintType string `json:"complaint_type"`
}

type FileComplaintResponse struct {
	ComplaintID int64  `json:"complaint_id"`
	Dispatch    string `json:"dispatch"`
	MessageID   string `json:"message_id,omitempty"`
}

type ComplaintResponse struct {
	ComplaintID        int64      `json:"complaint_id"`
	ContentID          int64      `json:"content_id"`
	PinnerID           int64      `json:"pinner_id"`
	ComplaintType      string     `json:"complaint_type"`
	ProcessStatus      string     `json:"process_status"`
	DisplayStatus      string     `json:"display_status"`
	ComplaintTimestamp time.Time  `json:"complaint_timestamp"`
	ReviewTimestamp    *time.Time `json:"review_timestamp,omitempty"`
	ReviewerID         *int64     `json:"reviewer_id,omitempty"`
}

type ComplaintsResponse struct {
	Items []ComplaintResponse `json:"items"`
}

type ComplaintDashboardResponse struct {
	Open     []ComplaintResponse `json:"open"`
	InReview []ComplaintResponse `json:"in_review"`
	Done     []ComplaintResponse `json:"done"`
}
