package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	Email     string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	CasdoorID string   `json:"casdoor_id" gorm:"uniqueIndex;not null;size:255"`
	Role      UserRole `json:"role" gorm:"not null;default:student;size:20;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	OwnedCourses    []Course `json:"-" gorm:"foreignKey:OwnerID"`
	EnrolledCourses []Course `json:"-" gorm:"many2many:enrollments"`
}

func (User) TableName() string {
	return "users"
}
