// Package ui implements an interactive catalog browser using bubbletea's Elm architecture.
//
// Views:
//  1. [ListView] : Browse stored artifacts, filterable by title
//  2. [DetailView] : Decoded content, timestamps and checksum status for one artifact
//  3. [ConfirmView] : Confirm deletion of the selected artifact
//  4. [ResultView] : Outcome of the last delete
//
// Deletes run through a principal, so the same role and authentication rules as the CLI apply.
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, v, d, y/n, r, q).
package ui
