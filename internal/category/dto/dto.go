package dto

type CategoryFilters struct {
	SearchTerm string // case-insensitive substring of name
	Page       int
	Limit      int
}
