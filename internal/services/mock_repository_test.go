package services

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	users       map[uint]*models.User
	courses     map[uint]*models.Course
	materials   map[uint]*models.CourseMaterial
	enrollments map[[2]uint]time.Time

	nextUserID     uint
	nextCourseID   uint
	nextMaterialID uint

	// failWith, when set, is returned from every data operation.
	failWith error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:       make(map[uint]*models.User),
		courses:     make(map[uint]*models.Course),
		materials:   make(map[uint]*models.CourseMaterial),
		enrollments: make(map[[2]uint]time.Time),
	}
}

func (m *mockRepository) User() repositories.UserRepository             { return (*mockUserRepo)(m) }
func (m *mockRepository) Course() repositories.CourseRepository         { return (*mockCourseRepo)(m) }
func (m *mockRepository) Enrollment() repositories.EnrollmentRepository { return (*mockEnrollmentRepo)(m) }
func (m *mockRepository) Material() repositories.MaterialRepository     { return (*mockMaterialRepo)(m) }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return m.failWith }
func (m *mockRepository) Close() error                   { return nil }

// Seed helpers.

func (m *mockRepository) addUser(email, casdoorID string, role models.UserRole) *models.User {
	m.nextUserID++
	u := &models.User{ID: m.nextUserID, Email: email, CasdoorID: casdoorID, Role: role, CreatedAt: time.Now()}
	m.users[u.ID] = u
	return u
}

func (m *mockRepository) addCourse(title string, ownerID *uint, capacity *int) *models.Course {
	m.nextCourseID++
	c := &models.Course{ID: m.nextCourseID, Title: title, OwnerID: ownerID, Capacity: capacity}
	m.courses[c.ID] = c
	return c
}

func (m *mockRepository) enroll(userID, courseID uint) {
	m.enrollments[[2]uint{userID, courseID}] = time.Now()
}

// ===== USER =====

type mockUserRepo mockRepository

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextUserID++
	user.ID = m.nextUserID
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByCasdoorID(ctx context.Context, casdoorID string) (*models.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.CasdoorID == casdoorID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	if m.failWith != nil {
		return nil, 0, m.failWith
	}
	var out []*models.User
	for _, u := range m.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockUserRepo) ExistsByCasdoorID(ctx context.Context, casdoorID string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	_, err := m.GetByCasdoorID(ctx, casdoorID)
	return err == nil, nil
}

// ===== COURSE =====

type mockCourseRepo mockRepository

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextCourseID++
	course.ID = m.nextCourseID
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Course, error) {
	return m.GetByID(ctx, id)
}

func (m *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id uint) error {
	if m.failWith != nil {
		return m.failWith
	}
	delete(m.courses, id)
	for k := range m.enrollments {
		if k[1] == id {
			delete(m.enrollments, k)
		}
	}
	for mid, mat := range m.materials {
		if mat.CourseID == id {
			delete(m.materials, mid)
		}
	}
	return nil
}

func (m *mockCourseRepo) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	if m.failWith != nil {
		return nil, 0, m.failWith
	}
	var out []*models.Course
	for _, c := range m.courses {
		if filters.OwnerID != nil && (c.OwnerID == nil || *c.OwnerID != *filters.OwnerID) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

// ===== ENROLLMENT =====

type mockEnrollmentRepo mockRepository

func (m *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.enrollments[[2]uint{enrollment.UserID, enrollment.CourseID}] = time.Now()
	return nil
}

func (m *mockEnrollmentRepo) Exists(ctx context.Context, userID, courseID uint) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	_, ok := m.enrollments[[2]uint{userID, courseID}]
	return ok, nil
}

func (m *mockEnrollmentRepo) CountForCourse(ctx context.Context, courseID uint) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	var n int64
	for k := range m.enrollments {
		if k[1] == courseID {
			n++
		}
	}
	return n, nil
}

func (m *mockEnrollmentRepo) CourseIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var ids []uint
	for k := range m.enrollments {
		if k[0] == userID {
			ids = append(ids, k[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *mockEnrollmentRepo) StudentsForCourse(ctx context.Context, courseID uint) ([]*models.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []*models.User
	for k := range m.enrollments {
		if k[1] == courseID {
			if u, ok := m.users[k[0]]; ok {
				out = append(out, u)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ===== MATERIAL =====

type mockMaterialRepo mockRepository

func (m *mockMaterialRepo) Create(ctx context.Context, material *models.CourseMaterial) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextMaterialID++
	material.ID = m.nextMaterialID
	material.CreatedAt = time.Now()
	m.materials[material.ID] = material
	return nil
}

func (m *mockMaterialRepo) GetByID(ctx context.Context, id uint) (*models.CourseMaterial, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if mat, ok := m.materials[id]; ok {
		return mat, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMaterialRepo) ListForCourse(ctx context.Context, courseID uint) ([]*models.CourseMaterial, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []*models.CourseMaterial
	for _, mat := range m.materials {
		if mat.CourseID == courseID {
			out = append(out, mat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockMaterialRepo) Delete(ctx context.Context, id uint) error {
	if m.failWith != nil {
		return m.failWith
	}
	delete(m.materials, id)
	return nil
}
