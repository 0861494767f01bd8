// Package docstore provides durable named storage for board documents.
//
// Unlike the autosave cache, the docstore is the system of record: documents
// are listed, loaded, and saved by name, and entries never expire. Two
// backends ship: a directory of JSON files for local use, and MongoDB for
// shared deployments.
package docstore

import (
	"context"
	"time"

	"github.com/matzehuels/pinboard/pkg/board"
)

// Info describes a stored document without loading its contents.
type Info struct {
	Name      string    `json:"name" bson:"_id"`
	Boards    int       `json:"boards" bson:"boards"`
	Cards     int       `json:"cards" bson:"cards"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Store persists named documents.
//
// Load returns a NOT_FOUND error for unknown names. Save overwrites
// unconditionally; last write wins.
type Store interface {
	Save(ctx context.Context, name string, doc *board.Document) error
	Load(ctx context.Context, name string) (*board.Document, error)
	List(ctx context.Context) ([]Info, error)
	Delete(ctx context.Context, name string) error
	Close(ctx context.Context) error
}
