package model

type Pinner struct {
	PinnerID int64  `json:"pinner_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}
