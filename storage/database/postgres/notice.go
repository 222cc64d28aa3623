package pgrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/portal/core/notice"
)

const noticeKey = "anuncio"

type noticeRepository struct {
	db *sqlx.DB
}

var _ notice.Repository = (*noticeRepository)(nil) // interface compliance check

func NewNoticeRepository(db *sqlx.DB) notice.Repository {
	return &noticeRepository{db: db}
}

func (repo *noticeRepository) GetNotice(ctx context.Context) (notice.Notice, error) {
	var raw []byte
	err := repo.db.QueryRowxContext(ctx, "SELECT value FROM site_config WHERE key = $1", noticeKey).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return notice.Notice{}, notice.ErrNotFound
		}
		return notice.Notice{}, errors.Wrap(err, "selecting notice")
	}

	var n notice.Notice
	value := jsonb{v: &n}
	if err = value.Scan(raw); err != nil {
		return notice.Notice{}, err
	}
	return n, nil
}

func (repo *noticeRepository) SaveNotice(ctx context.Context, n notice.Notice) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO site_config (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		noticeKey, jsonb{v: n}, n.UpdatedAt.UTC(),
	)
	return errors.Wrap(err, "saving notice")
}
