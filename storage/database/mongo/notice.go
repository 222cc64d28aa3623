package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/portal/core/notice"
)

const noticeID = "anuncio"

type noticeDoc struct {
	ID            string `bson:"_id"`
	notice.Notice `bson:",inline"`
}

type noticeRepository struct {
	coll *mongo.Collection
}

var _ notice.Repository = (*noticeRepository)(nil) // interface compliance check

func NewNoticeRepository(db *mongo.Database) notice.Repository {
	return &noticeRepository{coll: db.Collection(configCollection)}
}

func (repo *noticeRepository) GetNotice(ctx context.Context) (notice.Notice, error) {
	var doc noticeDoc
	if err := repo.coll.FindOne(ctx, bson.M{"_id": noticeID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return notice.Notice{}, notice.ErrNotFound
		}
		return notice.Notice{}, errors.Wrap(err, "finding notice")
	}
	return doc.Notice, nil
}

func (repo *noticeRepository) SaveNotice(ctx context.Context, n notice.Notice) error {
	_, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": noticeID}, noticeDoc{ID: noticeID, Notice: n}, options.Replace().SetUpsert(true))
	return errors.Wrap(err, "saving notice")
}
