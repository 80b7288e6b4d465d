package service

import (
	"context"
	"log/slog"
	"strings"

	"gameadmin/internal/auth"
	"gameadmin/internal/entity"
	"gameadmin/internal/repository"
)

type TeacherStore interface {
	List(ctx context.Context, search string) ([]entity.Teacher, error)
	GetByID(ctx context.Context, id int) (entity.Teacher, error)
	SetActive(ctx context.Context, id int, active bool) error
	Delete(ctx context.Context, id int) error
	AssignSection(ctx context.Context, teacherID int, section string) error
	RemoveSection(ctx context.Context, teacherID, sectionID int) error
}

type StudentStore interface {
	List(ctx context.Context, f repository.StudentFilter) ([]entity.Student, error)
	Sections(ctx context.Context) ([]string, error)
	YearLevels(ctx context.Context) ([]string, error)
	ResetProgress(ctx context.Context, userID int) error
}

type UserStore interface {
	ResetPassword(ctx context.Context, userID int, userType, hash string) error
}

// AccountService действия администратора над учителями и учениками.
type AccountService struct {
	teachers TeacherStore
	students StudentStore
	users    UserStore

	defaultPassword string
}

func NewAccountService(teachers TeacherStore, students StudentStore, users UserStore, defaultPassword string) *AccountService {
	return &AccountService{
		teachers:        teachers,
		students:        students,
		users:           users,
		defaultPassword: defaultPassword,
	}
}

func (s *AccountService) Teachers(ctx context.Context, search string) ([]entity.Teacher, error) {
	return s.teachers.List(ctx, strings.TrimSpace(search))
}

func (s *AccountService) Teacher(ctx context.Context, id int) (entity.Teacher, error) {
	return s.teachers.GetByID(ctx, id)
}

func (s *AccountService) Students(ctx context.Context, f repository.StudentFilter) ([]entity.Student, error) {
	f.Search = strings.TrimSpace(f.Search)
	return s.students.List(ctx, f)
}

func (s *AccountService) Sections(ctx context.Context) ([]string, error) {
	return s.students.Sections(ctx)
}

func (s *AccountService) YearLevels(ctx context.Context) ([]string, error) {
	return s.students.YearLevels(ctx)
}

func (s *AccountService) SetTeacherActive(ctx context.Context, id int, active bool) error {
	if err := s.teachers.SetActive(ctx, id, active); err != nil {
		return err
	}
	slog.Info("admin_action", "action", "set_teacher_active", "teacher_id", id, "active", active)
	return nil
}

func (s *AccountService) DeleteTeacher(ctx context.Context, id int) error {
	if err := s.teachers.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("admin_action", "action", "delete_teacher", "teacher_id", id)
	return nil
}

func (s *AccountService) AssignSection(ctx context.Context, teacherID int, section string) error {
	section = strings.TrimSpace(section)
	if section == "" {
		return ErrSectionRequired
	}
	if err := s.teachers.AssignSection(ctx, teacherID, section); err != nil {
		return err
	}
	slog.Info("admin_action", "action", "assign_section", "teacher_id", teacherID, "section", section)
	return nil
}

func (s *AccountService) RemoveSection(ctx context.Context, teacherID, sectionID int) error {
	if err := s.teachers.RemoveSection(ctx, teacherID, sectionID); err != nil {
		return err
	}
	slog.Info("admin_action", "action", "remove_section", "teacher_id", teacherID, "section_id", sectionID)
	return nil
}

// ResetPassword выставляет пароль по умолчанию и помечает его временным.
func (s *AccountService) ResetPassword(ctx context.Context, userID int, userType string) error {
	hash, err := auth.Hash(s.defaultPassword)
	if err != nil {
		return err
	}
	if err := s.users.ResetPassword(ctx, userID, userType, hash); err != nil {
		return err
	}
	slog.Info("admin_action", "action", "reset_password", "user_id", userID, "user_type", userType)
	return nil
}

func (s *AccountService) ResetProgress(ctx context.Context, studentID int) error {
	if err := s.students.ResetProgress(ctx, studentID); err != nil {
		return err
	}
	slog.Info("admin_action", "action", "reset_progress", "student_id", studentID)
	return nil
}

// DefaultPassword нужен для сообщения после сброса пароля
func (s *AccountService) DefaultPassword() string {
	return s.defaultPassword
}
