package inmemdb

import (
	"context"

	"github.com/trezcool/portal/core/notice"
)

type noticeRepository struct {
	db *noticeTable
}

var _ notice.Repository = (*noticeRepository)(nil) // interface compliance check

func NewNoticeRepository(db *DB) notice.Repository {
	return &noticeRepository{db: db.notice}
}

func (repo *noticeRepository) GetNotice(ctx context.Context) (notice.Notice, error) {
	if err := ctx.Err(); err != nil {
		return notice.Notice{}, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if repo.db.row == nil {
		return notice.Notice{}, notice.ErrNotFound
	}
	return *repo.db.row, nil
}

func (repo *noticeRepository) SaveNotice(ctx context.Context, n notice.Notice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.row = &n
	return nil
}
