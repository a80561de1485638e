package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseModule is one unit of course content. Modules live inside their
// course as an ordered list; a module is addressed by its position in that
// list, which is what enrollment completed-sets reference.
type CourseModule struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Task    string `json:"task"`
}

// Course represents a learning course
type Course struct {
	gorm.Model
	Title       string                            `json:"title"`
	Description string                            `json:"description"`
	Content     string                            `json:"content" gorm:"type:text"`
	Modules     datatypes.JSONSlice[CourseModule] `json:"modules"`
	Status      bool                              `json:"status" gorm:"default:true"` // active or paused
	DueDate     *time.Time                        `json:"dueDate"`
	CreatedBy   uint                              `json:"createdBy"`
}
