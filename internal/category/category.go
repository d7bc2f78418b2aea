package category

// Category is an income-tax category from the reference catalog. Deductible
// categories count toward annual deduction ceilings; the rest only feed the
// non-deductible aggregate.
type Category struct {
	ID          int64   `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"uniqueIndex;not null"`
	Deductible  bool    `json:"deductible" gorm:"not null"`
	Description *string `json:"description,omitempty"`
}

func (Category) TableName() string {
	return "income_tax_categories"
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Deductible:  c.Deductible,
		Description: c.Description,
	}
}
