// Package store holds the persistence contract: every read and write
// against the chat database goes through the functions here.
package store

import "errors"

// ErrNotFound is returned when a referenced message or user does not
// resolve to a stored row.
var ErrNotFound = errors.New("store: not found")

// ReportFlagThreshold is the cumulative report count at which an author is
// surfaced to moderators.
const ReportFlagThreshold = 16
