package dto

type ProductFilters struct {
	Category   string // exact category slug
	Featured   *bool
	SearchTerm string // case-insensitive substring of name
	Page       int
	Limit      int
	LimitCount int // cap applied when no page is requested
}
