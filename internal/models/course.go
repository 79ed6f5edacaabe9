package models

import (
	"time"
)

type Course struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index"`
	Description *string `json:"description" gorm:"type:text"`
	Capacity    *int    `json:"capacity"`

	// Nullable only transiently: courses keep existing when ownership is
	// reassigned, never when the owner row disappears (users are never deleted).
	OwnerID *uint `json:"owner_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner     *User            `json:"-" gorm:"foreignKey:OwnerID"`
	Materials []CourseMaterial `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Students  []User           `json:"-" gorm:"many2many:enrollments"`
}

func (Course) TableName() string {
	return "courses"
}

// Enrollment is the explicit join row between a user and a course. The pair is
// the composite primary key, so duplicates are impossible by construction.
type Enrollment struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
