package dto

type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	SubCategory *string
	Images      []string
	InStock     bool
	Featured    bool
}

// UpdateProductInput is a partial update: nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	SubCategory *string
	Images      *[]string
	InStock     *bool
	Featured    *bool
}
