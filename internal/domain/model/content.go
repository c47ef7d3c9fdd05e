package model

import (
	"github.com/boliek/contentsafety/internal/domain/enums"
)

type Content struct {
	ContentID     int64               `json:"content_id"`
	URL           string              `json:"url"`
	DisplayStatus enums.DisplayStatus `json:"display_status"`
	PinnerID      int64               `json:"pinner_id"`
}
