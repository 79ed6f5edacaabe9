package services

import (
	"slices"

	"github.com/SAP-F-2025/course-service/internal/models"
)

// Caller is the resolved identity behind a request: the local user row plus
// the ids of courses they are enrolled in. It is rebuilt on every request and
// never cached.
type Caller struct {
	User              *models.User
	EnrolledCourseIDs []uint
}

func (c *Caller) ID() uint {
	return c.User.ID
}

func (c *Caller) Role() models.UserRole {
	return c.User.Role
}

// Authorization decisions are pure functions over the caller and the resource
// so they can be tested without a database or HTTP layer.

func IsAdmin(c *Caller) bool {
	return c.Role() == models.RoleAdmin
}

func IsInstructorOrAdmin(c *Caller) bool {
	return c.Role() == models.RoleInstructor || c.Role() == models.RoleAdmin
}

// CanManageCourse reports whether the caller may modify the course: its owner
// or an admin.
func CanManageCourse(c *Caller, course *models.Course) bool {
	if IsAdmin(c) {
		return true
	}
	return course.OwnerID != nil && *course.OwnerID == c.ID()
}

// CanViewCourseContent reports whether the caller may read enrolled-only
// resources such as materials: admin, owner, or an enrolled student.
func CanViewCourseContent(c *Caller, course *models.Course) bool {
	if CanManageCourse(c, course) {
		return true
	}
	return slices.Contains(c.EnrolledCourseIDs, course.ID)
}

// CanViewRoster reports whether the caller may list a course's students.
func CanViewRoster(c *Caller) bool {
	return IsInstructorOrAdmin(c)
}
