package todos

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ramvik/taskhub/pkg/errors"
	"github.com/ramvik/taskhub/pkg/logger"
)

func newMongo(ctx context.Context, cfg MongoConfig, log logger.Logger) (*mongoRepo, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetTimeout(cfg.Timeout).
		SetMinPoolSize(cfg.Pool.MinSize).
		SetMaxPoolSize(cfg.Pool.MaxSize)

	if cfg.Auth.Username != "" {
		opts = opts.SetAuth(options.Credential{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.WrapFail(err, "connect to mongo db")
	}

	db := client.Database(cfg.Database)

	return &mongoRepo{
		coll: db.Collection(cfg.Collection),
		seq:  db.Collection(cfg.Collection + "_seq"),
		log:  log.With("mongo_todos"),
	}, nil
}

// mongoRepo keeps the auto-increment contract with a counter document:
// every Create bumps it atomically with $inc, so ids are unique and
// increasing just like a serial column.
type mongoRepo struct {
	coll *mongo.Collection
	seq  *mongo.Collection
	log  logger.Logger
}

func (m *mongoRepo) List(ctx context.Context) ([]Todo, error) {
	cur, err := m.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.WrapFail(err, "find todos")
	}

	defer func() {
		err := cur.Close(ctx)
		if err != nil {
			m.log.Warn(errors.WrapFail(err, "close cursor"))
		}
	}()

	var all []Todo
	for cur.Next(ctx) {
		var t Todo
		err = cur.Decode(&t)
		if err != nil {
			return nil, errors.WrapFail(err, "decode todo")
		}
		all = append(all, t)
	}

	if cur.Err() != nil {
		return nil, errors.WrapFail(cur.Err(), "iterate todos")
	}

	return all, nil
}

func (m *mongoRepo) Get(ctx context.Context, id int64) (Todo, error) {
	var t Todo
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Todo{}, ErrNotFound
	}
	if err != nil {
		return Todo{}, errors.WrapFail(err, "find todo")
	}
	return t, nil
}

func (m *mongoRepo) Create(ctx context.Context, spec CreateTodo) (Todo, error) {
	id, err := m.nextID(ctx)
	if err != nil {
		return Todo{}, errors.WrapFail(err, "allocate todo id")
	}

	t := Todo{
		ID:          id,
		Title:       spec.Title,
		Description: spec.Description,
		Done:        false,
	}

	_, err = m.coll.InsertOne(ctx, t)
	if err != nil {
		return Todo{}, errors.WrapFail(err, "insert todo")
	}

	return t, nil
}

func (m *mongoRepo) Update(ctx context.Context, id int64, patch UpdateTodo) (Todo, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Done != nil {
		set["done"] = *patch.Done
	}

	// nothing to overwrite, return the stored record
	if len(set) == 0 {
		return m.Get(ctx, id)
	}

	var t Todo
	err := m.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return Todo{}, ErrNotFound
	}
	if err != nil {
		return Todo{}, errors.WrapFail(err, "update todo")
	}

	return t, nil
}

func (m *mongoRepo) Delete(ctx context.Context, id int64) (Todo, error) {
	var t Todo
	err := m.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Todo{}, ErrNotFound
	}
	if err != nil {
		return Todo{}, errors.WrapFail(err, "delete todo")
	}
	return t, nil
}

func (m *mongoRepo) Close(ctx context.Context) error {
	err := m.coll.Database().Client().Disconnect(ctx)
	return errors.WrapFail(err, "close mongo db connection")
}

func (m *mongoRepo) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err := m.seq.FindOneAndUpdate(
		ctx,
		bson.M{"_id": m.coll.Name()},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&counter)

	if err != nil {
		return 0, errors.WrapFail(err, "bump todos sequence")
	}

	return counter.Seq, nil
}
