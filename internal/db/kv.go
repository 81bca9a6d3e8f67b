package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/feetracker-io/wallet-fee-tracker/internal/db/model"
)

func (db *Database) Get(ctx context.Context, key string) ([]byte, error) {
	var doc model.KVDocument
	err := db.collection(model.KVStoreCollection).
		FindOne(ctx, bson.M{"_id": key}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, newNotFoundError(key)
		}
		return nil, err
	}

	return []byte(doc.Value), nil
}

func (db *Database) Put(ctx context.Context, key string, value []byte) error {
	filter := bson.M{"_id": key}
	update := bson.M{
		"$set": bson.M{
			"value":      string(value),
			"updated_at": time.Now().UnixMilli(),
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := db.collection(model.KVStoreCollection).UpdateOne(ctx, filter, update, opts)
	return err
}
