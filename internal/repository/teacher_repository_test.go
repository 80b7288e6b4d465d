package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameadmin/internal/entity"
)

var teacherCols = []string{"id", "username", "email", "full_name", "user_type", "temp_password", "created_at", "is_active"}

func TestTeacherListWithSections(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTeacherRepository(db)
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`u.username ILIKE $1`)).
		WithArgs("%cruz%").
		WillReturnRows(sqlmock.NewRows(teacherCols).
			AddRow(3, "jcruz", "jcruz@school.ph", "Juan Cruz", "teacher", false, now, true).
			AddRow(5, "mcruz", "mcruz@school.ph", "Maria Cruz", "teacher", true, now, false))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM teacher_sections WHERE teacher_id = ANY($1)`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "teacher_id", "section", "created_at"}).
			AddRow(10, 3, "BSIT-1A", now).
			AddRow(11, 3, "BSIT-1B", now))

	teachers, err := repo.List(context.Background(), "cruz")
	require.NoError(t, err)
	require.Len(t, teachers, 2)

	assert.Equal(t, "jcruz", teachers[0].Username)
	assert.True(t, teachers[0].IsActive)
	require.Len(t, teachers[0].Sections, 2)
	assert.Equal(t, "BSIT-1B", teachers[0].Sections[1].Section)

	assert.False(t, teachers[1].IsActive)
	assert.Empty(t, teachers[1].Sections)
}

func TestTeacherListEmptySkipsSections(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN teachers t ON t.user_id = u.id`)).
		WillReturnRows(sqlmock.NewRows(teacherCols))

	teachers, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, teachers)
}

func TestTeacherSetActiveNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTeacherRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE teachers SET is_active = $1 WHERE user_id = $2`)).
		WithArgs(false, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.SetActive(context.Background(), 99, false), entity.ErrNotFound)
}

func TestTeacherDeleteCommits(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTeacherRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM teacher_sections WHERE teacher_id = $1`)).
		WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM teachers WHERE user_id = $1`)).
		WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1 AND user_type = 'teacher'`)).
		WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(context.Background(), 3))
}

func TestTeacherDeleteRollsBackOnFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTeacherRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM teacher_sections`)).
		WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM teachers WHERE user_id = $1`)).
		WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users`)).
		WithArgs(3).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestTeacherDeleteUnknownRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTeacherRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM teacher_sections`)).
		WithArgs(8).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM teachers WHERE user_id = $1`)).
		WithArgs(8).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 8), entity.ErrNotFound)
}

func TestTeacherAssignSectionDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTeacherRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO teacher_sections (teacher_id, section)`)).
		WithArgs(3, "BSIT-1A").
		WillReturnError(&pq.Error{Code: pgUniqueViolation})

	assert.ErrorIs(t, repo.AssignSection(context.Background(), 3, "BSIT-1A"), ErrDuplicateSection)
}

func TestTeacherAssignSectionUnknownTeacher(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTeacherRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO teacher_sections`)).
		WithArgs(404, "BSIT-1A").
		WillReturnError(&pq.Error{Code: pgForeignKeyViolation})

	assert.ErrorIs(t, repo.AssignSection(context.Background(), 404, "BSIT-1A"), entity.ErrNotFound)
}

func TestTeacherAssignSection(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTeacherRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO teacher_sections`)).
		WithArgs(3, "BSIT-2C").
		WillReturnResult(sqlmock.NewResult(12, 1))

	assert.NoError(t, repo.AssignSection(context.Background(), 3, "BSIT-2C"))
}

func TestTeacherRemoveSection(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTeacherRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM teacher_sections WHERE id = $1 AND teacher_id = $2`)).
		WithArgs(12, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.RemoveSection(context.Background(), 3, 12))
}
