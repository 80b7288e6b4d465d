package service

import (
	"context"
	"errors"
	"strings"

	"gameadmin/internal/entity"
	"gameadmin/internal/repository"
)

// fakeAdminStore хранит администраторов в памяти.
type fakeAdminStore struct {
	admins    map[int]entity.Admin
	updates   []repository.AdminUpdate
	rehashed  map[int]string
	updateErr error
	rehashErr error
}

func newFakeAdminStore(admins ...entity.Admin) *fakeAdminStore {
	s := &fakeAdminStore{admins: map[int]entity.Admin{}, rehashed: map[int]string{}}
	for _, a := range admins {
		s.admins[a.ID] = a
	}
	return s
}

func (s *fakeAdminStore) GetByUsername(_ context.Context, username string) (entity.Admin, error) {
	for _, a := range s.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return entity.Admin{}, entity.ErrNotFound
}

func (s *fakeAdminStore) GetByID(_ context.Context, id int) (entity.Admin, error) {
	a, ok := s.admins[id]
	if !ok {
		return entity.Admin{}, entity.ErrNotFound
	}
	return a, nil
}

func (s *fakeAdminStore) UpdatePassword(_ context.Context, id int, hash string) error {
	if s.rehashErr != nil {
		return s.rehashErr
	}
	a := s.admins[id]
	a.PasswordHash = hash
	s.admins[id] = a
	s.rehashed[id] = hash
	return nil
}

func (s *fakeAdminStore) UsernameTaken(_ context.Context, username string, excludeID int) (bool, error) {
	for id, a := range s.admins {
		if id != excludeID && a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeAdminStore) EmailTaken(_ context.Context, email string, excludeID int) (bool, error) {
	for id, a := range s.admins {
		if id != excludeID && strings.EqualFold(a.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeAdminStore) Update(_ context.Context, id int, upd repository.AdminUpdate) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	a, ok := s.admins[id]
	if !ok {
		return entity.ErrNotFound
	}
	if upd.Username != "" {
		a.Username = upd.Username
	}
	if upd.Email != "" {
		a.Email = upd.Email
	}
	if upd.FullName != "" {
		a.FullName = upd.FullName
	}
	if upd.PasswordHash != "" {
		a.PasswordHash = upd.PasswordHash
	}
	s.admins[id] = a
	s.updates = append(s.updates, upd)
	return nil
}

type fakeTeacherStore struct {
	active   map[int]bool
	sections map[int][]string
	deleted  []int
	err      error
}

func (s *fakeTeacherStore) List(context.Context, string) ([]entity.Teacher, error) {
	return nil, s.err
}

func (s *fakeTeacherStore) GetByID(_ context.Context, id int) (entity.Teacher, error) {
	if _, ok := s.active[id]; !ok {
		return entity.Teacher{}, entity.ErrNotFound
	}
	return entity.Teacher{User: entity.User{ID: id}, IsActive: s.active[id]}, nil
}

func (s *fakeTeacherStore) SetActive(_ context.Context, id int, active bool) error {
	if _, ok := s.active[id]; !ok {
		return entity.ErrNotFound
	}
	s.active[id] = active
	return nil
}

func (s *fakeTeacherStore) Delete(_ context.Context, id int) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeTeacherStore) AssignSection(_ context.Context, teacherID int, section string) error {
	for _, existing := range s.sections[teacherID] {
		if existing == section {
			return repository.ErrDuplicateSection
		}
	}
	s.sections[teacherID] = append(s.sections[teacherID], section)
	return nil
}

func (s *fakeTeacherStore) RemoveSection(context.Context, int, int) error {
	return s.err
}

type fakeStudentStore struct {
	filter repository.StudentFilter
	reset  []int
	err    error
}

func (s *fakeStudentStore) List(_ context.Context, f repository.StudentFilter) ([]entity.Student, error) {
	s.filter = f
	return nil, s.err
}

func (s *fakeStudentStore) Sections(context.Context) ([]string, error)   { return []string{"A"}, nil }
func (s *fakeStudentStore) YearLevels(context.Context) ([]string, error) { return []string{"1"}, nil }

func (s *fakeStudentStore) ResetProgress(_ context.Context, id int) error {
	if s.err != nil {
		return s.err
	}
	s.reset = append(s.reset, id)
	return nil
}

type fakeUserStore struct {
	hashes map[int]string
	types  map[int]string
}

func (s *fakeUserStore) ResetPassword(_ context.Context, userID int, userType, hash string) error {
	if s.types[userID] != userType {
		return entity.ErrNotFound
	}
	s.hashes[userID] = hash
	return nil
}

var errDB = errors.New("pq: connection refused")
