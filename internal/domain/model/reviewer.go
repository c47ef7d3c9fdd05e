package model

type Reviewer struct {
	ReviewerID int64  `json:"reviewer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}
