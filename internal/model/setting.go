package model

type Setting struct {
	BaseModel
	Key         string  `db:"key" json:"key"`
	Value       JSON    `db:"value" json:"value"`
	Description *string `db:"description" json:"description,omitempty"`
}
