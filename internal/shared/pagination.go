package shared

// PageRequest is the query/filter pagination contract shared by every
// list endpoint. Page is zero-based, matching the API responses.
type PageRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Sanitize clamps pagination parameters to safe values.
func (p *PageRequest) Sanitize() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
}

// Offset translates the zero-based page index into a row offset.
func (p PageRequest) Offset() int {
	return p.Page * p.Limit
}
