package docstore

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/errors"
	boardio "github.com/matzehuels/pinboard/pkg/io"
)

// FileStore keeps each document as one JSON file in a directory. The file
// payload is the io package's envelope, so a stored document can be copied
// out and imported directly.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes the document atomically: to a temp file first, then renamed
// over the destination, so a crash mid-write never corrupts the stored copy.
// Write failures (missing directory, disk full) are CAPACITY errors; callers
// treat them as warnings and keep editing in memory.
func (s *FileStore) Save(ctx context.Context, name string, doc *board.Document) error {
	data, err := boardio.MarshalDocument(doc)
	if err != nil {
		return err
	}

	path := s.path(name)
	tmp, err := os.CreateTemp(s.dir, ".save-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeCapacity, err, "save %s", name)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeCapacity, err, "save %s", name)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeCapacity, err, "save %s", name)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeCapacity, err, "save %s", name)
	}
	return nil
}

// Load reads a document by name.
func (s *FileStore) Load(ctx context.Context, name string) (*board.Document, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "document %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return boardio.UnmarshalDocument(data)
}

// List returns stored documents sorted by name.
func (s *FileStore) List(ctx context.Context) ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}

	var out []Info
	for _, entry := range entries {
		name, ok := decodeFilename(entry.Name())
		if !ok {
			continue
		}
		info := Info{Name: name}
		if fi, err := entry.Info(); err == nil {
			info.UpdatedAt = fi.ModTime()
		}
		if counts, err := s.counts(entry.Name()); err == nil {
			info.Boards = counts.boards
			info.Cards = counts.cards
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a stored document. Unknown names are not an error.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

// path encodes the document name so arbitrary names stay inside the
// directory. Hex keeps the mapping reversible for List.
func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, hex.EncodeToString([]byte(name))+".json")
}

func decodeFilename(filename string) (string, bool) {
	base, ok := strings.CutSuffix(filename, ".json")
	if !ok {
		return "", false
	}
	raw, err := hex.DecodeString(base)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

type entityCounts struct {
	boards int
	cards  int
}

// counts peeks at the envelope without fully decoding every card field.
func (s *FileStore) counts(filename string) (entityCounts, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return entityCounts{}, err
	}
	var peek struct {
		Boards map[string]json.RawMessage `json:"boards"`
		Cards  map[string]json.RawMessage `json:"cards"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return entityCounts{}, err
	}
	return entityCounts{boards: len(peek.Boards), cards: len(peek.Cards)}, nil
}

var _ Store = (*FileStore)(nil)
