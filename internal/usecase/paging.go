package usecase

import "strings"

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// Page is a normalized page request: Number >= 1, Size in [1, maxPageSize].
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// NormalizePage clamps raw paging inputs instead of rejecting them:
// non-positive page -> 1, non-positive size -> 25, oversized -> 100.
func NormalizePage(page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return Page{Number: page, Size: size}
}

// SortTerm is one ORDER BY term with an already-whitelisted column name.
type SortTerm struct {
	Column string
	Desc   bool
}

type Sort struct {
	Terms []SortTerm
}

// OrderBy renders the clause body ("name ASC, id ASC"). Columns only ever
// come from a SortSpec whitelist, never from request input.
func (s Sort) OrderBy() string {
	var b strings.Builder
	for i, t := range s.Terms {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.Column)
		if t.Desc {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
	}
	return b.String()
}

// SortSpec is the fixed sortable-key enum of one entity.
type SortSpec struct {
	// Keys maps the public sortBy token to a column.
	Keys map[string]string
	// DefaultKey is used when sortBy is missing or unrecognized.
	DefaultKey string
	// DefaultDesc makes the default ordering descending when no direction
	// was asked for (the order listing wants newest-first by default).
	DefaultDesc bool
	// TieBreaks keep pagination stable when primary sort values collide.
	TieBreaks []SortTerm
}

// Resolve maps (sortBy, sortOrder) onto a concrete ordering. Unknown keys
// fall back to the default column, never an error. Only an exact
// case-insensitive "desc" selects descending; when no direction token is
// given the entity's default direction applies.
func (sp SortSpec) Resolve(sortBy, sortOrder string) Sort {
	col, ok := sp.Keys[sortBy]
	if !ok {
		col = sp.Keys[sp.DefaultKey]
	}

	desc := strings.EqualFold(strings.TrimSpace(sortOrder), "desc")
	if strings.TrimSpace(sortOrder) == "" && !ok {
		desc = sp.DefaultDesc
	}

	terms := []SortTerm{{Column: col, Desc: desc}}
	for _, tb := range sp.TieBreaks {
		if tb.Column == col {
			continue
		}
		terms = append(terms, tb)
	}
	return Sort{Terms: terms}
}

var (
	customerSort = SortSpec{
		Keys:       map[string]string{"name": "name", "email": "email", "birthDate": "birth_date"},
		DefaultKey: "name",
		TieBreaks:  []SortTerm{{Column: "id"}},
	}
	productSort = SortSpec{
		Keys:       map[string]string{"title": "title", "slug": "slug", "price": "price"},
		DefaultKey: "title",
		TieBreaks:  []SortTerm{{Column: "id"}},
	}
	orderSort = SortSpec{
		Keys:        map[string]string{"total": "total", "createdAt": "o.created_at", "updatedAt": "o.updated_at"},
		DefaultKey:  "createdAt",
		DefaultDesc: true,
		TieBreaks:   []SortTerm{{Column: "o.created_at", Desc: true}, {Column: "o.id", Desc: true}},
	}
)
