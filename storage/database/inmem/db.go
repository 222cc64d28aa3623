package inmemdb

import (
	"sync"

	"github.com/trezcool/portal/core/notice"
	"github.com/trezcool/portal/core/student"
)

type (
	// DB keeps every table in memory. Used by tests and the `memory` engine.
	DB struct {
		student *studentTable
		notice  *noticeTable
	}

	studentTable struct {
		mutex sync.RWMutex
		table map[string]student.Student
		order []string // ids, in import order
	}

	noticeTable struct {
		mutex sync.RWMutex
		row   *notice.Notice
	}
)

func Open() *DB {
	return &DB{
		student: &studentTable{table: make(map[string]student.Student)},
		notice:  &noticeTable{},
	}
}

// Reset empties every table.
func (db *DB) Reset() {
	db.student.mutex.Lock()
	db.student.table = make(map[string]student.Student)
	db.student.order = nil
	db.student.mutex.Unlock()

	db.notice.mutex.Lock()
	db.notice.row = nil
	db.notice.mutex.Unlock()
}
