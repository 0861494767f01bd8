// Package pkg provides the core libraries for Pinboard infinite-canvas boards.
//
// # Overview
//
// Pinboard models a document of nestable boards holding typed cards (notes,
// todo lists, images, links, columns, and sub-boards) connected by curves.
// The pkg directory is organized into four main areas:
//
//  1. Domain logic - [board], [geom], [route], [history], [interact]
//  2. Persistence - [docstore], [cache], [io]
//  3. Output - [render]
//  4. Cross-cutting - [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow through Pinboard:
//
//	JSON envelope / document store
//	         ↓
//	    [io] / [docstore] (load a document)
//	         ↓
//	    [board] package (entity store, z-order, containment, navigation)
//	         ↓
//	    [interact] package (selection, gestures, clipboard, undo)
//	         ↓
//	    [render] package (PNG snapshots, board-tree diagrams)
//
// # Quick Start
//
// Build a small board and render it:
//
//	s := board.NewStore()
//	a := s.CreateCard(board.TypeNote, 0, 0, board.WithContent("idea"))
//	b := s.CreateCard(board.TypeTodo, 300, 0)
//	s.Connect(a.ID, b.ID, board.AnchorRight, board.AnchorLeft, "")
//
//	png, err := render.SnapshotPNG(s, s.CurrentBoard().ID, render.SnapshotOptions{})
package pkg
