package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment tracks a user's participation and progress in a course.
// CompletedModules holds the positional indices of finished modules, kept
// sorted ascending with no duplicates. Progress is derived from it on every
// mutation and never set independently.
type Enrollment struct {
	gorm.Model
	UserID           uint                     `json:"userId" gorm:"not null;uniqueIndex:idx_user_course"`
	CourseID         uint                     `json:"courseId" gorm:"not null;uniqueIndex:idx_user_course"`
	Progress         int                      `json:"progress" gorm:"default:0"` // percentage 0-100
	CompletedModules datatypes.JSONSlice[int] `json:"completedModules"`
	User             User                     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course           Course                   `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
