package dto

type PinnerResponse struct {
	PinnerID int64  `json:"pinner_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type PinnersResponse struct {
	Items []PinnerResponse `json:"items"`
}

type ReviewerResponse struct {
	ReviewerID int64  `json:"reviewer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

type ReviewersResponse struct {
	Items []ReviewerResponse `json:"items"`
}

type ContentResponse struct {
	ContentID     int64  `json:"content_id"`
	URL           string `json:"url"`
	DisplayStatus string `json:"display_status"`
	PinnerID      int64  `json:"pinner_id"`
}

type ContentListResponse struct {
	Items []ContentResponse `json:"items"`
}

type ResetContentResponse struct {
	OK        bool  `json:"ok"`
	RowsReset int64 `json:"rows_reset"`
}
