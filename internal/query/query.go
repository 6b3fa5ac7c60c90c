// Package query holds the small SQL building blocks shared by the
// repositories: AND-ed named conditions and offset/limit pagination.
package query

import (
	"fmt"
	"math"
	"strings"
)

type Where struct {
	conds []string
	args  map[string]interface{}
}

func NewWhere() *Where {
	return &Where{args: map[string]interface{}{}}
}

// Eq adds "col = :name".
func (w *Where) Eq(col, name string, value interface{}) *Where {
	w.conds = append(w.conds, fmt.Sprintf("%s = :%s", col, name))
	w.args[name] = value
	return w
}

// ContainsFold adds a case-insensitive substring match on col. LIKE wildcards
// in term are matched literally.
func (w *Where) ContainsFold(col, name, term string) *Where {
	w.conds = append(w.conds, fmt.Sprintf(`LOWER(%s) LIKE :%s ESCAPE '\'`, col, name))
	w.args[name] = "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	return w
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (w *Where) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *Where) Args() map[string]interface{} {
	return w.args
}

// Page describes a 1-based page of Limit rows. The rows covered are
// [(Page-1)*Limit, Page*Limit-1] of the filtered, sorted set.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Paged() bool {
	return p.Page > 0 && p.Limit > 0
}

// OutOfRange reports whether the page starts past any row an int offset can
// address. Such a page is always empty.
func (p Page) OutOfRange() bool {
	return p.Paged() && p.Page-1 > (math.MaxInt-p.Limit)/p.Limit
}

// Offset is (Page-1)*Limit, saturated at math.MaxInt for out of range pages.
func (p Page) Offset() int {
	switch {
	case !p.Paged():
		return 0
	case p.OutOfRange():
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Bounds returns the inclusive row range of the page.
func (p Page) Bounds() (from, to int) {
	if p.OutOfRange() {
		return math.MaxInt, math.MaxInt
	}
	from = p.Offset()
	return from, from + p.Limit - 1
}

// Clause renders the LIMIT/OFFSET suffix. Without a page, a positive Limit
// (or the fallback) only truncates the result.
func (p Page) Clause(fallback int) string {
	switch {
	case p.OutOfRange():
		return " LIMIT 0"
	case p.Paged():
		return fmt.Sprintf(" LIMIT %d OFFSET %d", p.Limit, p.Offset())
	case p.Limit > 0:
		return fmt.Sprintf(" LIMIT %d", p.Limit)
	case fallback > 0:
		return fmt.Sprintf(" LIMIT %d", fallback)
	}
	return ""
}

// TotalPages is ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
