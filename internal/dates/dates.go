// Package dates implements the serialized hearing-date history used by
// case records. Superseded upcoming dates are stored as a single
// delimited string of ISO dates, oldest first.
package dates

import (
	"strings"
	"time"
)

// Layout is the wire form of every hearing date.
const Layout = "2006-01-02"

// Separator joins serialized history entries.
const Separator = ", "

// Valid reports whether d is a well-formed ISO date.
func Valid(d string) bool {
	_, err := time.Parse(Layout, d)
	return err == nil
}

// Today returns the current date in wire form.
func Today() string {
	return time.Now().Format(Layout)
}

// Parse splits a serialized history into its ordered date strings.
// An empty value yields an empty history.
func Parse(serialized string) []string {
	if serialized == "" {
		return nil
	}
	return strings.Split(serialized, Separator)
}

// Join serializes a history back to its stored form.
func Join(history []string) string {
	return strings.Join(history, Separator)
}

// Contains reports whether d is already recorded in history.
func Contains(history []string, d string) bool {
	for _, h := range history {
		if h == d {
			return true
		}
	}
	return false
}

// Merge appends the date being superseded to history unless it is empty
// or already present. The merge must happen before any duplicate check
// against a replacement date; reordering changes which dates are
// rejected.
func Merge(history []string, superseded string) []string {
	if superseded == "" || Contains(history, superseded) {
		return history
	}
	return append(history, superseded)
}
