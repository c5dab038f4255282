package service

import (
	"time"

	"github.com/billableapp/billable-server/internal/models"
)

// Pure, stateless helpers over an already-loaded entry collection.
// Filtering commutes with the totals: summing a filtered set equals
// summing the unfiltered set restricted to the same predicate.

// EntryTotals sums a collection two ways. Billable hours are summed
// from per-entry ceiling-rounded durations while exact minutes are
// summed unrounded, so the two are not expected to reconcile.
type EntryTotals struct {
	BillableHours float64
	ExactMinutes  float64
	Count         int
}

// MatchesFilters reports whether a single entry passes the filter set.
// Date bounds compare the start instant lexically against YYYY-MM-DD
// boundaries; DateTo is inclusive through end of day.
func MatchesFilters(e models.TimeEntryView, f models.EntryFilters) bool {
	if f.LawyerID != "" && e.UserID != f.LawyerID {
		return false
	}
	if f.ClientID != "" && e.ClientID != f.ClientID {
		return false
	}
	if f.TaskTypeID != "" && (e.TaskTypeID == nil || *e.TaskTypeID != f.TaskTypeID) {
		return false
	}
	started := e.StartedAt.Format(time.RFC3339)
	if f.DateFrom != "" && started < f.DateFrom {
		return false
	}
	if f.DateTo != "" && started > f.DateTo+"T23:59:59" {
		return false
	}
	return true
}

// FilterEntries returns the entries matching every set filter.
func FilterEntries(entries []models.TimeEntryView, f models.EntryFilters) []models.TimeEntryView {
	filtered := make([]models.TimeEntryView, 0, len(entries))
	for _, e := range entries {
		if MatchesFilters(e, f) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// GroupByDate buckets entries by the calendar date of their start
// instant, in whatever zone the instant carries.
func GroupByDate(entries []models.TimeEntryView) map[string][]models.TimeEntryView {
	grouped := make(map[string][]models.TimeEntryView)
	for _, e := range entries {
		date := e.StartedAt.Format("2006-01-02")
		grouped[date] = append(grouped[date], e)
	}
	return grouped
}

// Totals sums billable hours and exact minutes over the collection.
func Totals(entries []models.TimeEntryView) EntryTotals {
	var totals EntryTotals
	for _, e := range entries {
		if e.BillableDuration != nil {
			totals.BillableHours += *e.BillableDuration
		}
		if e.ExactDurationMin != nil {
			totals.ExactMinutes += *e.ExactDurationMin
		}
		totals.Count++
	}
	return totals
}
