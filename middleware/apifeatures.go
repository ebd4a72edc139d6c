package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// CompareOp is a comparison operator recognised in query-string filters
type CompareOp int

const (
	OpEq CompareOp = iota
	OpGt
	OpGte
	OpLt
	OpLte
	OpIn
)

var compareOps = map[string]CompareOp{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
	"in":  OpIn,
}

var sqlOps = map[CompareOp]string{
	OpEq:  "=",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// Condition is one parsed filter clause, e.g. rating[gte]=4
type Condition struct {
	Column string
	Op     CompareOp
	Value  interface{}   // scalar ops
	Values []interface{} // OpIn
}

const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 100
)

// QueryFeatures carries the filter, projection, ordering and paging window
// parsed from a listing request's query string.
type QueryFeatures struct {
	Conditions []Condition
	Selects    []string
	Order      string
	Page       int
	Limit      int
}

// reserved query keys that never become filter conditions
var reservedKeys = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// ParseQuery translates a flat query map into QueryFeatures. Column names are
// validated against the caller's whitelist because they end up in SQL; unknown
// columns and operators are ignored rather than erroring.
func ParseQuery(query map[string]string, columns map[string]bool) *QueryFeatures {
	f := &QueryFeatures{
		Order: "created_at DESC",
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	for key, value := range query {
		if reservedKeys[key] {
			continue
		}
		column, op := parseFilterKey(key)
		if !columns[column] {
			continue
		}
		if op == OpIn {
			var values []interface{}
			for _, part := range strings.Split(value, ",") {
				values = append(values, coerceValue(part))
			}
			f.Conditions = append(f.Conditions, Condition{Column: column, Op: OpIn, Values: values})
			continue
		}
		f.Conditions = append(f.Conditions, Condition{Column: column, Op: op, Value: coerceValue(value)})
	}

	if raw := query["select"]; raw != "" {
		seen := map[string]bool{"id": true}
		selects := []string{"id"}
		for _, field := range strings.Split(raw, ",") {
			field = strings.TrimSpace(field)
			if columns[field] && !seen[field] {
				selects = append(selects, field)
				seen[field] = true
			}
		}
		f.Selects = selects
	}

	if raw := query["sort"]; raw != "" {
		var order []string
		for _, field := range strings.Split(raw, ",") {
			field = strings.TrimSpace(field)
			direction := "ASC"
			if strings.HasPrefix(field, "-") {
				field = field[1:]
				direction = "DESC"
			}
			if columns[field] {
				order = append(order, field+" "+direction)
			}
		}
		if len(order) > 0 {
			f.Order = strings.Join(order, ", ")
		}
	}

	if page, err := strconv.Atoi(query["page"]); err == nil && page >= 1 {
		f.Page = page
	}
	if limit, err := strconv.Atoi(query["limit"]); err == nil && limit >= 1 {
		if limit > MaxLimit {
			limit = MaxLimit
		}
		f.Limit = limit
	}

	return f
}

// parseFilterKey splits "rating[gte]" into column and operator. A bare key or
// an unrecognised suffix means plain equality.
func parseFilterKey(key string) (string, CompareOp) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, OpEq
	}
	op, ok := compareOps[key[open+1:len(key)-1]]
	if !ok {
		return key, OpEq
	}
	return key[:open], op
}

// coerceValue turns numeric-looking strings into numbers so typed columns
// compare correctly
func coerceValue(raw string) interface{} {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if fl, err := strconv.ParseFloat(raw, 64); err == nil {
		return fl
	}
	return raw
}

// Filter applies only the filter conditions; used for both the page query and
// the total count so pagination matches what the caller will actually see.
func (f *QueryFeatures) Filter(db *gorm.DB) *gorm.DB {
	for _, cond := range f.Conditions {
		if cond.Op == OpIn {
			db = db.Where(fmt.Sprintf("%s IN ?", cond.Column), cond.Values)
			continue
		}
		db = db.Where(fmt.Sprintf("%s %s ?", cond.Column, sqlOps[cond.Op]), cond.Value)
	}
	return db
}

// Window applies projection, ordering and the page window on top of Filter
func (f *QueryFeatures) Window(db *gorm.DB) *gorm.DB {
	db = f.Filter(db)
	if len(f.Selects) > 0 {
		db = db.Select(f.Selects)
	}
	return db.Order(f.Order).Offset((f.Page - 1) * f.Limit).Limit(f.Limit)
}

// PageRef points at an adjacent page in a listing response
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination describes adjacent pages; next/prev are present only when pages
// exist in that direction
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Paginate builds the pagination descriptor from the filtered total
func (f *QueryFeatures) Paginate(total int64) Pagination {
	var p Pagination
	if int64(f.Page*f.Limit) < total {
		p.Next = &PageRef{Page: f.Page + 1, Limit: f.Limit}
	}
	if f.Page > 1 {
		p.Prev = &PageRef{Page: f.Page - 1, Limit: f.Limit}
	}
	return p
}
