package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson is a single unit of content inside a module. IsFree is independent
// of the parent course's price: a paid course may expose preview lessons.
type Lesson struct {
	gorm.Model
	ModuleID    uint           `json:"module_id" gorm:"index;not null"`
	Title       string         `json:"title"`
	Content     string         `json:"content" gorm:"type:text"`
	VideoURL    string         `json:"video_url"`
	Duration    int            `json:"duration" gorm:"default:0"` // minutes
	IsFree      bool           `json:"is_free" gorm:"default:false"`
	OrderIndex  int            `json:"order_index" gorm:"default:0"`
	Attachments datatypes.JSON `json:"attachments"`
}
