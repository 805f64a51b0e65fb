package etl

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoExtractor pages documents out of a collection sorted by SortField and
// hands each one on as relaxed extended JSON. The _id field is left out unless
// it is the sort field.
type MongoExtractor struct {
	Client     *mongo.Client
	Database   string
	Collection string
	SortField  string
}

func (m *MongoExtractor) Extract(ctx context.Context, batchSize int, offset int) ([][]byte, int, error) {
	coll := m.Client.Database(m.Database).Collection(m.Collection)

	sortField := m.SortField
	if sortField == "" {
		sortField = "_id"
	}

	findOpts := options.Find().
		SetLimit(int64(batchSize)).
		SetSkip(int64(offset)).
		SetSort(bson.D{{Key: sortField, Value: 1}})
	if sortField != "_id" {
		findOpts.SetProjection(bson.D{{Key: "_id", Value: 0}})
	}

	cursor, err := coll.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, offset, fmt.Errorf("failed to query collection %s: %w", m.Collection, err)
	}
	defer cursor.Close(ctx)

	var results [][]byte
	for cursor.Next(ctx) {
		var d bson.D
		if err := cursor.Decode(&d); err != nil {
			return nil, offset, fmt.Errorf("failed to decode document %d: %w", offset+len(results), err)
		}
		doc, err := bson.MarshalExtJSON(d, false, false)
		if err != nil {
			return nil, offset, fmt.Errorf("failed to encode document %d: %w", offset+len(results), err)
		}
		results = append(results, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, offset, err
	}

	return results, offset + len(results), nil
}
