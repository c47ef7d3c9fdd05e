package model

import (
	"time"

	"github.com/boliek/contentsafety/internal/domain/enums"
)

// Complaint keeps its own display_status: a copy of the content's visibility
// at filing time, rewritten to the post-resolution value when upheld.
type Complaint struct {
	ComplaintID        int64               `json:"complaint_id"`
	ComplaintTimestamp time.Time           `json:"complaint_timestamp"`
	ComplaintType      enums.ComplaintType `json:"complaint_type"`
	ProcessStatus      enums.ProcessStatus `json:"process_status"`
	DisplayStatus      enums.DisplayStatus `json:"display_status"`
	ReviewTimestamp    *time.Time          `json:"review_timestamp,omitempty"`
	PinnerID           int64               `json:"pinner_id"`
	ReviewerID         *int64              `json:"reviewer_id,omitempty"`
	ContentID          int64               `json:"content_id"`
}
