// Package history maintains a habit's completion history. Each calendar day
// carries at most one entry and every update returns a fresh slice.
package history

import (
	"slices"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

// Upsert records status for day's calendar day. An existing entry for that
// day has its status replaced; otherwise a new entry is appended. The input
// slice is never modified.
func Upsert(entries []models.CompletionEntry, day time.Time, status models.CompletionStatus) []models.CompletionEntry {
	out := slices.Clone(entries)
	if i := indexOf(out, day); i >= 0 {
		out[i].Status = status
		return out
	}
	return append(out, models.CompletionEntry{Date: day, Status: status})
}

// Find returns the entry recorded on day's calendar day.
func Find(entries []models.CompletionEntry, day time.Time) (models.CompletionEntry, bool) {
	if i := indexOf(entries, day); i >= 0 {
		return entries[i], true
	}
	return models.CompletionEntry{}, false
}

// StatusOn returns the status recorded for day, or StatusPending when there is none.
func StatusOn(entries []models.CompletionEntry, day time.Time) models.CompletionStatus {
	if e, ok := Find(entries, day); ok {
		return e.Status
	}
	return models.StatusPending
}

// Count returns how many entries carry status.
func Count(entries []models.CompletionEntry, status models.CompletionStatus) int {
	n := 0
	for _, e := range entries {
		if e.Status == status {
			n++
		}
	}
	return n
}

// Remove drops the entry for day's calendar day, if any.
func Remove(entries []models.CompletionEntry, day time.Time) []models.CompletionEntry {
	i := indexOf(entries, day)
	if i < 0 {
		return slices.Clone(entries)
	}
	return slices.Delete(slices.Clone(entries), i, i+1)
}

func indexOf(entries []models.CompletionEntry, day time.Time) int {
	return slices.IndexFunc(entries, func(e models.CompletionEntry) bool {
		return utils.SameDay(e.Date, day)
	})
}
