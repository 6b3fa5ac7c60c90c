package query

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhere_SQL(t *testing.T) {
	w := NewWhere()
	assert.Equal(t, "", w.SQL())

	w.Eq("category", "category", "wax").ContainsFold("name", "search", "Fleur")
	assert.Equal(t, ` WHERE category = :category AND LOWER(name) LIKE :search ESCAPE '\'`, w.SQL())
	assert.Equal(t, "wax", w.Args()["category"])
	assert.Equal(t, "%fleur%", w.Args()["search"])
}

func TestWhere_ContainsFoldEscapesWildcards(t *testing.T) {
	w := NewWhere().ContainsFold("name", "search", `100%_co\ton`)
	assert.Equal(t, `%100\%\_co\\ton%`, w.Args()["search"])
}

func TestPage(t *testing.T) {
	tests := []struct {
		name     string
		page     Page
		cap      int
		from, to int
		clause   string
	}{
		{name: "first page", page: Page{Page: 1, Limit: 10}, from: 0, to: 9, clause: " LIMIT 10 OFFSET 0"},
		{name: "third page", page: Page{Page: 3, Limit: 4}, from: 8, to: 11, clause: " LIMIT 4 OFFSET 8"},
		{name: "limit only", page: Page{Limit: 4}, from: 0, to: 3, clause: " LIMIT 4"},
		{name: "cap only", page: Page{}, cap: 4, from: 0, to: -1, clause: " LIMIT 4"},
		{name: "nothing", page: Page{}, from: 0, to: -1, clause: ""},
		{name: "last addressable page", page: Page{Page: math.MaxInt / 12, Limit: 12}, from: (math.MaxInt/12 - 1) * 12, to: (math.MaxInt/12)*12 - 1, clause: fmt.Sprintf(" LIMIT 12 OFFSET %d", (math.MaxInt/12-1)*12)},
		{name: "offset would overflow", page: Page{Page: math.MaxInt/12 + 2, Limit: 12}, from: math.MaxInt, to: math.MaxInt, clause: " LIMIT 0"},
		{name: "max page", page: Page{Page: math.MaxInt, Limit: 100}, from: math.MaxInt, to: math.MaxInt, clause: " LIMIT 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.page.Bounds()
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
			assert.Equal(t, tt.clause, tt.page.Clause(tt.cap))
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}
