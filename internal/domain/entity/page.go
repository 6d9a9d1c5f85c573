package entity

type Page[T any] struct {
	Items      []T
	TotalCount int
	Page       int
	Limit      int
	TotalPages int
}

// NewPage собирает страницу, totalPages = ceil(totalCount/limit).
func NewPage[T any](items []T, totalCount, page, limit int) Page[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}

	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
