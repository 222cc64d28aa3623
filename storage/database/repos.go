package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/trezcool/portal/core"
	"github.com/trezcool/portal/core/notice"
	"github.com/trezcool/portal/core/student"
	inmemdb "github.com/trezcool/portal/storage/database/inmem"
	mongorepos "github.com/trezcool/portal/storage/database/mongo"
	pgrepos "github.com/trezcool/portal/storage/database/postgres"
)

// engines
const (
	EngineMemory   = "memory"
	EnginePostgres = "postgres"
	EngineMongoDB  = "mongodb"
)

// Repositories are the stores backing the services, for the configured engine.
type Repositories struct {
	Students student.Repository
	Notices  notice.Repository
	SQL      *sql.DB // postgres only

	close func(ctx context.Context) error
}

// OpenRepositories connects to `database.engine`. PostgreSQL databases are created and migrated when needed.
func OpenRepositories(ctx context.Context, conf *core.Config) (*Repositories, error) {
	switch conf.Database.Engine {
	case EngineMemory, "":
		db := inmemdb.Open()
		return &Repositories{
			Students: inmemdb.NewStudentRepository(db),
			Notices:  inmemdb.NewNoticeRepository(db),
			close:    func(context.Context) error { return nil },
		}, nil

	case EnginePostgres:
		if err := CreateIfNotExist(conf); err != nil {
			return nil, err
		}
		db, err := Open(conf)
		if err != nil {
			return nil, err
		}
		if err = Migrate(db.DB); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Repositories{
			Students: pgrepos.NewStudentRepository(db),
			Notices:  pgrepos.NewNoticeRepository(db),
			SQL:      db.DB,
			close:    func(context.Context) error { return db.Close() },
		}, nil

	case EngineMongoDB:
		db, err := mongorepos.Open(ctx, conf)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Students: mongorepos.NewStudentRepository(db),
			Notices:  mongorepos.NewNoticeRepository(db),
			close:    db.Client().Disconnect,
		}, nil

	default:
		return nil, errors.Errorf("unknown database engine %q", conf.Database.Engine)
	}
}

func (r *Repositories) Close(ctx context.Context) error {
	return r.close(ctx)
}
