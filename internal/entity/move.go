package entity

type Move struct {
	Mark  string `json:"mark"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Agent bool   `json:"agent,omitempty"`
}
