package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment links a user to a course they joined. The composite unique
// index enforces at most one enrollment per (user, course) pair.
type Enrollment struct {
	gorm.Model
	UserID     uint      `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID   uint      `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	EnrolledAt time.Time `json:"enrolled_at"`

	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}
