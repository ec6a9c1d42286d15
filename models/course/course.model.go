package course

import "gorm.io/gorm"

// Course represents a learning course owned by an instructor
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Slug         string  `json:"slug" gorm:"uniqueIndex;not null"`
	Description  string  `json:"description" gorm:"type:text"`
	Price        float64 `json:"price" gorm:"default:0"`
	IsFree       bool    `json:"is_free" gorm:"-"` // derived, never stored
	Image        string  `json:"image"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `json:"-" gorm:"default:false"`

	Modules []Module `json:"modules" gorm:"constraint:OnDelete:CASCADE;"`
}

// AfterFind derives the free flag from the stored price
func (c *Course) AfterFind(tx *gorm.DB) error {
	c.IsFree = c.Price == 0
	return nil
}

// AfterSave keeps the derived flag accurate on create/update responses
func (c *Course) AfterSave(tx *gorm.DB) error {
	c.IsFree = c.Price == 0
	return nil
}
