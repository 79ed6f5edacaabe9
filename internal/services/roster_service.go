package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type rosterService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewRosterService(repo repositories.Repository, logger *slog.Logger) RosterService {
	return &rosterService{
		repo:   repo,
		logger: logger,
	}
}

// ExportRoster renders the enrolled students of a course as an xlsx workbook
// and returns the bytes plus a suggested filename.
func (s *rosterService) ExportRoster(ctx context.Context, caller *Caller, courseID uint) ([]byte, string, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", ErrCourseNotFound
		}
		return nil, "", fmt.Errorf("failed to get course: %w", err)
	}

	if !CanManageCourse(caller, course) {
		return nil, "", NewPermissionError(caller.ID(), courseID, "course", "export_roster", "not owner or admin")
	}

	students, err := s.repo.Enrollment().StudentsForCourse(ctx, courseID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list students: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Roster"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Email", "Role", "Signed Up"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, student := range students {
		values := []any{student.ID, student.Email, string(student.Role), student.CreatedAt.Format("2006-01-02")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("course-%d-roster.xlsx", courseID)

	s.logger.Info("Roster exported", "course_id", courseID, "students", len(students))

	return buf.Bytes(), filename, nil
}
