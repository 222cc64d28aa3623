package inmemdb

import (
	"context"

	"github.com/trezcool/portal/core/schedule"
	"github.com/trezcool/portal/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

// clone copies the courses so callers never share slices with the table.
func clone(st student.Student) student.Student {
	courses := make([]schedule.RawCourse, 0, len(st.Courses))
	for _, c := range st.Courses {
		c.WeeklyRaw = append([]string(nil), c.WeeklyRaw...)
		courses = append(courses, c)
	}
	st.Courses = courses
	return st
}

func (repo *studentRepository) ReplaceAll(ctx context.Context, students []student.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table = make(map[string]student.Student, len(students))
	repo.db.order = make([]string, 0, len(students))
	for _, st := range students {
		if _, ok := repo.db.table[st.ID]; !ok {
			repo.db.order = append(repo.db.order, st.ID)
		}
		repo.db.table[st.ID] = clone(st)
	}
	return nil
}

func (repo *studentRepository) GetByID(ctx context.Context, id string) (student.Student, error) {
	if err := ctx.Err(); err != nil {
		return student.Student{}, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if st, ok := repo.db.table[id]; ok {
		return clone(st), nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) QueryAll(ctx context.Context) ([]student.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]student.Student, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		students = append(students, clone(repo.db.table[id]))
	}
	return students, nil
}
