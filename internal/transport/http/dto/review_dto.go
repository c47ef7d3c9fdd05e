package dto

import "time"

type PendingReviewResponse struct {
	ComplaintID        int64     `json:"complaint_id"`
	ContentID          int64     `json:"content_id"`
	PinnerID           int64     `json:"pinner_id"`
	ComplaintType      string    `json:"complaint_type"`
	ComplaintTimestamp time.Time `json:"complaint_timestamp"`
	ContentURL         string    `json:"content_url"`
	ContentStatus      string    `json:"content_status"`
	MessageID          string    `json:"message_id"`
	ReceiptHandle      string    `json:"receipt_handle"`
}

type NextReviewResponse struct {
	Review *PendingReviewResponse `json:"review"`
}

type ResolveComplaintRequest struct {
	ComplaintID   int64  `json:"complaint_id"`
	ReviewerEmail string `json:"reviewer_email"`
	Verdict       string `json:"verdict"`
	ReceiptHandle string `json:"receipt_handle"`
}

type ResolveComplaintResponse struct {
	OK bool `json:"ok"`
}
