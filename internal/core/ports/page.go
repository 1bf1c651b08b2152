package ports

// PageInput carries 1-based pagination parameters.
type PageInput struct {
	Page  int
	Limit int
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Normalize applies the default limit, caps the maximum, and floors the page
// at 1.
func (p PageInput) Normalize() PageInput {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// Paged is one page of results plus pagination metadata.
type Paged[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPaged assembles a Paged from a repository page and the normalized input.
func NewPaged[T any](items []T, total int64, p PageInput) Paged[T] {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Paged[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}
}
