package tui

import "github.com/zoobzio/bindz/internal/app"

// SnapshotMsg delivers a rendered session state to the program.
type SnapshotMsg app.Snapshot

// ScrollTopMsg resets the story list to its first entry.
type ScrollTopMsg struct{}

// StatusMsg replaces the status line text.
type StatusMsg string

type openErrMsg struct {
	err error
}
