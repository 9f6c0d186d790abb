package entity

type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
