package model

import (
	"time"

	"github.com/boliek/contentsafety/internal/domain/enums"
)

// ReviewTask is the queue payload handed to reviewers. It mirrors the
// complaint that triggered it and is never persisted in the record store.
type ReviewTask struct {
	ComplaintID        int64               `json:"complaint_id"`
	ContentID          int64               `json:"content_id"`
	PinnerID           int64               `json:"pinner_id"`
	DisplayStatus      enums.DisplayStatus `json:"display_status"`
	ComplaintType      enums.ComplaintType `json:"complaint_type"`
	ComplaintTimestamp time.Time           `json:"complaint_timestamp"`
}
