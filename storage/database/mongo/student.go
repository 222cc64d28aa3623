package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/portal/core/student"
)

type studentRepository struct {
	coll *mongo.Collection
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *mongo.Database) student.Repository {
	return &studentRepository{coll: db.Collection(studentCollection)}
}

// ReplaceAll empties the collection then inserts every student.
// It is not atomic: a failed insert leaves the collection partially imported until the next import.
func (repo *studentRepository) ReplaceAll(ctx context.Context, students []student.Student) error {
	if _, err := repo.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	if len(students) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(students))
	for _, st := range students {
		docs = append(docs, st)
	}
	if _, err := repo.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return errors.Wrap(err, "inserting students")
	}
	return nil
}

func (repo *studentRepository) GetByID(ctx context.Context, id string) (student.Student, error) {
	var st student.Student
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		if err == mongo.ErrNoDocuments {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "finding student")
	}
	return st, nil
}

func (repo *studentRepository) QueryAll(ctx context.Context) ([]student.Student, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "finding students")
	}
	defer func() { _ = cursor.Close(ctx) }()

	students := make([]student.Student, 0)
	if err = cursor.All(ctx, &students); err != nil {
		return nil, errors.Wrap(err, "decoding students")
	}
	return students, nil
}
