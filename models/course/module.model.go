package course

import "gorm.io/gorm"

// Module represents a section within a course. OrderIndex drives display
// order; it is not required to be contiguous, ties resolve by id.
type Module struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`

	Lessons []Lesson `json:"lessons" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE;"`
}
