package model

type Product struct {
	BaseModel
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	Price       float64    `db:"price" json:"price"`
	Category    string     `db:"category" json:"category"` // category slug, not a foreign key
	SubCategory *string    `db:"sub_category" json:"subCategory,omitempty"`
	Images      StringList `db:"images" json:"images"` // display order, first is the cover
	InStock     bool       `db:"in_stock" json:"inStock"`
	Featured    bool       `db:"featured" json:"featured"`
}

// CoverImage returns the first image or an empty string.
func (p *Product) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
