package dto

type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description *string
	Image       *string
}

// UpdateCategoryInput is a partial update: nil fields are left untouched.
type UpdateCategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
	Image       *string
}
