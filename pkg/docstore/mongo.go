package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/errors"
)

// MongoStore persists documents in a MongoDB collection, one record per
// document keyed by name. Board and card records serialize through their
// bson tags.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoDoc is the stored shape of one document.
type mongoDoc struct {
	Name           string                  `bson:"_id"`
	UpdatedAt      time.Time               `bson:"updated_at"`
	CurrentBoardID string                  `bson:"current_board_id"`
	DarkMode       bool                    `bson:"dark_mode"`
	Boards         map[string]*board.Board `bson:"boards"`
	Cards          map[string]*board.Card  `bson:"cards"`
}

// NewMongoStore connects to MongoDB at uri and uses the "documents"
// collection of the named database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", uri, err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection("documents"),
	}, nil
}

// Save upserts the document under its name.
func (s *MongoStore) Save(ctx context.Context, name string, doc *board.Document) error {
	record := mongoDoc{
		Name:           name,
		UpdatedAt:      time.Now().UTC(),
		CurrentBoardID: doc.CurrentBoardID,
		DarkMode:       doc.DarkMode,
		Boards:         doc.Boards,
		Cards:          doc.Cards,
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": name},
		record,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// Load fetches a document by name.
func (s *MongoStore) Load(ctx context.Context, name string) (*board.Document, error) {
	var record mongoDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "document %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return &board.Document{
		Boards:         record.Boards,
		Cards:          record.Cards,
		CurrentBoardID: record.CurrentBoardID,
		DarkMode:       record.DarkMode,
	}, nil
}

// List projects name, update time, and entity counts for every stored
// document, sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]Info, error) {
	cursor, err := s.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$project", Value: bson.M{
			"updated_at": 1,
			"boards":     bson.M{"$size": bson.M{"$objectToArray": "$boards"}},
			"cards":      bson.M{"$size": bson.M{"$objectToArray": "$cards"}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer cursor.Close(ctx)

	var out []Info
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return out, nil
}

// Delete removes a stored document. Unknown names are not an error.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// Close disconnects from the server.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
