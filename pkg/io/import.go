package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/errors"
)

// ReadJSON decodes a document envelope from r.
//
// The input must be a JSON object with "boards" and "cards" maps; anything
// else is rejected with an INVALID_FORMAT error. Envelopes newer than
// [SchemaVersion] are refused with UNSUPPORTED rather than half-decoded.
//
// The returned document is independent of r and safe to install into a
// store. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*board.Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return UnmarshalDocument(raw)
}

// ImportJSON reads a JSON file at path and returns the decoded document.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context;
// malformed payloads carry the INVALID_FORMAT code.
func ImportJSON(path string) (*board.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return doc, nil
}

// UnmarshalDocument decodes an envelope from a byte slice, the counterpart
// of [MarshalDocument] for clipboard and network payloads.
func UnmarshalDocument(data []byte) (*board.Document, error) {
	// Peek at the envelope shape first so a JSON array or scalar fails with
	// the format error rather than a decoder type mismatch.
	var peek map[string]json.RawMessage
	if err := json.Unmarshal(data, &peek); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "document is not a JSON object")
	}
	if _, ok := peek["boards"]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "document is missing the boards map")
	}
	if _, ok := peek["cards"]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "document is missing the cards map")
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "document fields do not match the schema")
	}
	if env.Boards == nil || env.Cards == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "boards and cards must be objects")
	}
	if env.Version > SchemaVersion {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"document version %d is newer than this build supports (%d)", env.Version, SchemaVersion)
	}

	return &board.Document{
		Boards:         env.Boards,
		Cards:          env.Cards,
		CurrentBoardID: env.CurrentBoardID,
		DarkMode:       env.DarkMode,
	}, nil
}
