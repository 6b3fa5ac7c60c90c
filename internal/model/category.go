package model

type Category struct {
	BaseModel
	Name        string  `db:"name" json:"name"`
	Slug        string  `db:"slug" json:"slug"` // unique, referenced by Product.Category
	Description *string `db:"description" json:"description,omitempty"`
	Image       *string `db:"image" json:"image,omitempty"`
}
