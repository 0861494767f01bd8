// Package io provides JSON import and export for board documents.
//
// # Overview
//
// A document export is a single self-contained JSON object carrying every
// board and card plus the view bookkeeping needed to reopen the document
// where it was left:
//
//	{
//	  "version": 1,
//	  "exportedAt": "2025-11-04T09:30:00Z",
//	  "currentBoardId": "...",
//	  "darkMode": false,
//	  "boards": { "<id>": { ... } },
//	  "cards": { "<id>": { ... } }
//	}
//
// The format is designed for:
//
//   - Backup and restore of whole documents
//   - Moving a document between machines or between storage backends
//   - Round-trip preservation: export, re-import, and continue working with
//     identical state
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader. Both validate the envelope: the top level must be
// a JSON object with "boards" and "cards" maps. Payloads that fail this
// check are rejected with an INVALID_FORMAT error and the live document is
// untouched. Structural slack inside a valid envelope (a missing root board,
// a stale current-board id, z-index collisions) is not an error; the store
// repairs it when the document is installed via Replace.
//
// # Export
//
// Use [ExportJSON] to write to a file, or [WriteJSON] to write to any
// io.Writer. The export stamps the write time and the schema version.
//
// # Concurrency
//
// Functions here are pure with respect to the document: ReadJSON builds an
// independent document, and WriteJSON only reads. Neither is safe against a
// concurrent mutator of the same document.
package io
