package pgrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/portal/core/schedule"
	"github.com/trezcool/portal/core/student"
)

const (
	studentColumns = "id, name, courses, batch, updated_at"
	insertStudent  = "INSERT INTO students (" + studentColumns + ") VALUES (:id, :name, :courses, :batch, :updated_at)"
)

type studentRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Courses   jsonb     `db:"courses"`
	Batch     string    `db:"batch"`
	UpdatedAt time.Time `db:"updated_at"`
}

func newStudentRow(st student.Student) studentRow {
	courses := st.Courses
	if courses == nil {
		courses = []schedule.RawCourse{}
	}
	return studentRow{
		ID:        st.ID,
		Name:      st.Name,
		Courses:   jsonb{v: courses},
		Batch:     st.Batch,
		UpdatedAt: st.UpdatedAt.UTC(),
	}
}

type scannedStudent struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Courses   []byte    `db:"courses"`
	Batch     string    `db:"batch"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row scannedStudent) student() (student.Student, error) {
	st := student.Student{ID: row.ID, Name: row.Name, Batch: row.Batch, UpdatedAt: row.UpdatedAt}
	courses := jsonb{v: &st.Courses}
	if err := courses.Scan(row.Courses); err != nil {
		return student.Student{}, errors.Wrapf(err, "student %s", row.ID)
	}
	return st, nil
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

// ReplaceAll swaps the whole table in a single transaction.
func (repo *studentRepository) ReplaceAll(ctx context.Context, students []student.Student) (err error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM students"); err != nil {
		return errors.Wrap(err, "deleting students")
	}

	stmt, err := tx.PrepareNamedContext(ctx, insertStudent)
	if err != nil {
		return errors.Wrap(err, "preparing insert")
	}
	defer func() { _ = stmt.Close() }()

	for _, st := range students {
		if _, err = stmt.ExecContext(ctx, newStudentRow(st)); err != nil {
			return errors.Wrapf(err, "inserting student %s", st.ID)
		}
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

func (repo *studentRepository) GetByID(ctx context.Context, id string) (student.Student, error) {
	var row scannedStudent
	err := repo.db.GetContext(ctx, &row, "SELECT "+studentColumns+" FROM students WHERE id = $1", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "selecting student")
	}
	return row.student()
}

func (repo *studentRepository) QueryAll(ctx context.Context) ([]student.Student, error) {
	var rows []scannedStudent
	if err := repo.db.SelectContext(ctx, &rows, "SELECT "+studentColumns+" FROM students ORDER BY name, id"); err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}

	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		st, err := row.student()
		if err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, nil
}
