// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for dispatching one link:
//  1. [ResolveView] : Classify the link and fetch metadata from the catalog
//  2. [TrackListView] : Preview the collection's tracks before queuing
//  3. [ConfirmView] : Confirm the queue operation
//  4. [QueueView] : Monitor real-time per-track progress
//  5. [ResultView] : Display the batch summary and failure count
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the Dispatcher, providing non-blocking status reporting while tracks are submitted.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
