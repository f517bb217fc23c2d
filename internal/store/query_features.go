package store

import (
	"net/url"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Pagination defaults applied when the page/limit parameters are absent or
// not positive integers.
const (
	defaultPage  = 1
	defaultLimit = 100
)

// defaultSortColumn orders listings newest-first when no sort is requested.
const defaultSortColumn = "created_at"

// Reserved query parameters consumed by the feature builder itself; every
// other parameter is interpreted as a field filter.
var reservedParams = map[string]struct{}{
	"page":   {},
	"sort":   {},
	"limit":  {},
	"fields": {},
}

// comparison suffix operators accepted inside filter keys, e.g. price[gte].
var comparisonOps = map[string]func(column string, value any) sq.Sqlizer{
	"gte": func(c string, v any) sq.Sqlizer { return sq.GtOrEq{c: v} },
	"gt":  func(c string, v any) sq.Sqlizer { return sq.Gt{c: v} },
	"lte": func(c string, v any) sq.Sqlizer { return sq.LtOrEq{c: v} },
	"lt":  func(c string, v any) sq.Sqlizer { return sq.Lt{c: v} },
}

// ResourceColumns is the per-resource column allow-list consulted by the
// feature builder. Only listed columns may appear in filters, sorts, and
// projections; everything else in a request is silently dropped, which is
// what keeps caller-supplied field names out of generated SQL.
type ResourceColumns struct {
	names    []string
	internal map[string]struct{}
}

// NewResourceColumns declares the selectable columns of a resource in their
// canonical order. Columns named in internal are still selectable on
// explicit request but are excluded from the default projection (version
// metadata and the like).
func NewResourceColumns(names []string, internal ...string) ResourceColumns {
	set := make(map[string]struct{}, len(internal))
	for _, name := range internal {
		set[name] = struct{}{}
	}
	return ResourceColumns{names: names, internal: set}
}

// Known reports whether name is a declared column of the resource.
func (c ResourceColumns) Known(name string) bool {
	for _, n := range c.names {
		if n == name {
			return true
		}
	}
	return false
}

// Defaults returns the default projection: every declared column except the
// internal ones.
func (c ResourceColumns) Defaults() []string {
	out := make([]string, 0, len(c.names))
	for _, n := range c.names {
		if _, isInternal := c.internal[n]; !isInternal {
			out = append(out, n)
		}
	}
	return out
}

// QueryFeatures translates declarative listing parameters into a squirrel
// SELECT. The four steps are applied in a fixed order — Filter, Sort,
// LimitFields, Paginate — each returning the receiver so call sites chain
// them; the caller then executes the SQL produced by ToSQL.
type QueryFeatures struct {
	builder  sq.SelectBuilder
	params   url.Values
	cols     ResourceColumns
	selected []string
}

// NewQueryFeatures wraps a base query (typically sq.Select().From(table),
// possibly with fixed predicates already applied) together with the raw
// request parameters and the resource's column allow-list.
func NewQueryFeatures(base sq.SelectBuilder, params url.Values, cols ResourceColumns) *QueryFeatures {
	return &QueryFeatures{
		builder:  base,
		params:   params,
		cols:     cols,
		selected: cols.Defaults(),
	}
}

// Filter applies field-comparison predicates. A bare key is an equality
// filter; a key with a gte/gt/lte/lt suffix (e.g. "price[gte]") becomes the
// corresponding comparison. Unknown columns and unknown operators are
// dropped.
func (f *QueryFeatures) Filter() *QueryFeatures {
	for key := range f.params {
		if _, reserved := reservedParams[key]; reserved {
			continue
		}

		column, op := splitFilterKey(key)
		if !f.cols.Known(column) {
			continue
		}

		value := f.params.Get(key)
		if op == "" {
			f.builder = f.builder.Where(sq.Eq{column: value})
			continue
		}
		if pred, ok := comparisonOps[op]; ok {
			f.builder = f.builder.Where(pred(column, value))
		}
	}

	return f
}

// Sort orders the result by the comma-separated "sort" parameter; a leading
// minus selects descending order. Without a usable sort the listing falls
// back to newest-first.
func (f *QueryFeatures) Sort() *QueryFeatures {
	var orderings []string
	for _, field := range strings.Split(f.params.Get("sort"), ",") {
		field = strings.TrimSpace(field)
		direction := " ASC"
		if strings.HasPrefix(field, "-") {
			field = field[1:]
			direction = " DESC"
		}
		if !f.cols.Known(field) {
			continue
		}
		orderings = append(orderings, field+direction)
	}

	if len(orderings) == 0 {
		orderings = []string{defaultSortColumn + " DESC"}
	}

	f.builder = f.builder.OrderBy(orderings...)
	return f
}

// LimitFields narrows the projection to the comma-separated "fields"
// allow-list, keeping the resource's canonical column order. Without a
// usable list the default projection applies (all columns minus internal
// metadata).
func (f *QueryFeatures) LimitFields() *QueryFeatures {
	requested := make(map[string]struct{})
	for _, field := range strings.Split(f.params.Get("fields"), ",") {
		field = strings.TrimSpace(field)
		if f.cols.Known(field) {
			requested[field] = struct{}{}
		}
	}

	if len(requested) > 0 {
		selected := make([]string, 0, len(requested))
		for _, name := range f.cols.names {
			if _, ok := requested[name]; ok {
				selected = append(selected, name)
			}
		}
		f.selected = selected
	}

	f.builder = f.builder.Columns(f.selected...)
	return f
}

// Paginate applies LIMIT/OFFSET from the "page" and "limit" parameters,
// both coerced to positive integers with defaults (page 1, limit 100).
// The offset is (page-1)*limit.
func (f *QueryFeatures) Paginate() *QueryFeatures {
	page := positiveInt(f.params.Get("page"), defaultPage)
	limit := positiveInt(f.params.Get("limit"), defaultLimit)

	f.builder = f.builder.
		Limit(limit).
		Offset((page - 1) * limit)

	return f
}

// SelectedColumns returns the projection decided by LimitFields, in the
// resource's canonical order. Callers use it to bind scan destinations.
func (f *QueryFeatures) SelectedColumns() []string {
	return f.selected
}

// ToSQL renders the accumulated query with PostgreSQL placeholders.
func (f *QueryFeatures) ToSQL() (string, []any, error) {
	return f.builder.PlaceholderFormat(sq.Dollar).ToSql()
}

// splitFilterKey parses "price[gte]" into ("price", "gte") and a plain key
// into (key, "").
func splitFilterKey(key string) (column, op string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

// positiveInt parses s as a positive integer, falling back to def.
func positiveInt(s string, def uint64) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return def
	}
	return n
}
