package models

import (
	"time"

	"gorm.io/datatypes"
)

type CourseMaterial struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null;size:200"`
	FilePath    string `json:"file_path" gorm:"uniqueIndex;not null;size:500"`
	ContentType string `json:"content_type" gorm:"not null;size:100"`

	// Upload metadata (original filename, size in bytes).
	Metadata datatypes.JSON `json:"metadata" gorm:"type:jsonb"`

	CourseID uint `json:"course_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Course *Course `json:"-" gorm:"foreignKey:CourseID"`
}

func (CourseMaterial) TableName() string {
	return "course_materials"
}
