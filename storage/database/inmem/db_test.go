package inmemdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/portal/core/notice"
	"github.com/trezcool/portal/core/schedule"
	"github.com/trezcool/portal/core/student"
)

func TestStudentRepository(t *testing.T) {
	ctx := context.Background()
	db := Open()
	repo := NewStudentRepository(db)

	all, err := repo.QueryAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	ana := student.Student{ID: "2", Name: "Ana", Courses: []schedule.RawCourse{{Subject: "Cálculo", WeeklyRaw: []string{"-"}}}}
	require.NoError(t, repo.ReplaceAll(ctx, []student.Student{ana, {ID: "1", Name: "Luis"}}))

	got, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, ana, got)

	// callers do not share slices with the table
	got.Courses[0].WeeklyRaw[0] = "changed"
	again, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "-", again.Courses[0].WeeklyRaw[0])

	all, err = repo.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2", all[0].ID, "import order is kept")
	assert.Equal(t, "1", all[1].ID)

	require.NoError(t, repo.ReplaceAll(ctx, []student.Student{{ID: "3", Name: "Eva"}}))
	_, err = repo.GetByID(ctx, "2")
	assert.Equal(t, student.ErrNotFound, err)

	db.Reset()
	all, err = repo.QueryAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, repo.ReplaceAll(canceled, nil), context.Canceled)
	_, err = repo.GetByID(canceled, "3")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNoticeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewNoticeRepository(Open())

	_, err := repo.GetNotice(ctx)
	assert.Equal(t, notice.ErrNotFound, err)

	n := notice.Notice{Text: "Hola", Maintenance: true}
	require.NoError(t, repo.SaveNotice(ctx, n))
	got, err := repo.GetNotice(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, got)
}
