package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/errors"
)

// SchemaVersion identifies the document envelope format.
const SchemaVersion = 1

type envelope struct {
	Version        int                     `json:"version"`
	ExportedAt     time.Time               `json:"exportedAt"`
	CurrentBoardID string                  `json:"currentBoardId"`
	DarkMode       bool                    `json:"darkMode"`
	Boards         map[string]*board.Board `json:"boards"`
	Cards          map[string]*board.Card  `json:"cards"`
}

// WriteJSON encodes the document as indented JSON and writes it to w. The
// envelope is stamped with the schema version and the current time. The
// output round-trips through [ReadJSON].
func WriteJSON(doc *board.Document, w io.Writer) error {
	out := envelope{
		Version:        SchemaVersion,
		ExportedAt:     time.Now().UTC(),
		CurrentBoardID: doc.CurrentBoardID,
		DarkMode:       doc.DarkMode,
		Boards:         doc.Boards,
		Cards:          doc.Cards,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
// Failures to create or fill the target (missing directory, disk full) come
// back as CAPACITY errors; the in-memory document is unaffected either way.
func ExportJSON(doc *board.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCapacity, err, "export %s", path)
	}
	defer f.Close()
	if err := WriteJSON(doc, f); err != nil {
		return errors.Wrap(errors.ErrCodeCapacity, err, "export %s", path)
	}
	return nil
}

// MarshalDocument returns the document envelope as a JSON byte slice, for
// callers that hand the payload to a clipboard or network response rather
// than a file.
func MarshalDocument(doc *board.Document) ([]byte, error) {
	out := envelope{
		Version:        SchemaVersion,
		ExportedAt:     time.Now().UTC(),
		CurrentBoardID: doc.CurrentBoardID,
		DarkMode:       doc.DarkMode,
		Boards:         doc.Boards,
		Cards:          doc.Cards,
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return b, nil
}
