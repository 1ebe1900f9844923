package entity

// Score - outcome counters over every recorded match.
type Score struct {
	X    int64 `json:"x"`
	O    int64 `json:"o"`
	Draw int64 `json:"draw"`
}

func (that Score) Total() int64 {
	return that.X + that.O + that.Draw
}
