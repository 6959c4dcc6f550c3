package domain

// Pagination carries paging params for list reads.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Clamp keeps paging params within sane bounds.
func (p Pagination) Clamp() Pagination {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 100
	}
	return p
}
