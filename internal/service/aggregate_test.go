package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/billableapp/billable-server/internal/models"
)

func entry(userID, clientID string, taskTypeID *string, startedAt time.Time, billable, exactMin float64) models.TimeEntryView {
	return models.TimeEntryView{
		TimeEntry: models.TimeEntry{
			ID:               userID + "-" + startedAt.Format("20060102150405"),
			UserID:           userID,
			ClientID:         clientID,
			TaskTypeID:       taskTypeID,
			StartedAt:        startedAt,
			BillableDuration: &billable,
			ExactDurationMin: &exactMin,
			Status:           models.EntryStatusSubmitted,
		},
	}
}

func testEntries() []models.TimeEntryView {
	research := "tt-research"
	drafting := "tt-drafting"
	return []models.TimeEntryView{
		entry("lawyer-1", "client-a", &research, time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC), 0.3, 13),
		entry("lawyer-1", "client-b", &drafting, time.Date(2026, 2, 18, 14, 30, 0, 0, time.UTC), 1.5, 84),
		entry("lawyer-2", "client-a", &research, time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC), 0.5, 22),
		entry("lawyer-2", "client-a", nil, time.Date(2026, 2, 20, 23, 59, 0, 0, time.UTC), 2.0, 118),
	}
}

func TestFilterEntriesByLawyer(t *testing.T) {
	filtered := FilterEntries(testEntries(), models.EntryFilters{LawyerID: "lawyer-1"})
	assert.Len(t, filtered, 2)
	for _, e := range filtered {
		assert.Equal(t, "lawyer-1", e.UserID)
	}
}

func TestFilterEntriesByClientAndTaskType(t *testing.T) {
	filtered := FilterEntries(testEntries(), models.EntryFilters{
		ClientID:   "client-a",
		TaskTypeID: "tt-research",
	})
	assert.Len(t, filtered, 2)

	// A task-type filter excludes entries without a task type
	filtered = FilterEntries(testEntries(), models.EntryFilters{TaskTypeID: "tt-research"})
	assert.Len(t, filtered, 2)
}

func TestFilterEntriesDateRange(t *testing.T) {
	filtered := FilterEntries(testEntries(), models.EntryFilters{
		DateFrom: "2026-02-19",
		DateTo:   "2026-02-20",
	})
	assert.Len(t, filtered, 2)

	// DateTo is inclusive through end of day
	filtered = FilterEntries(testEntries(), models.EntryFilters{DateTo: "2026-02-20"})
	assert.Len(t, filtered, 4)

	filtered = FilterEntries(testEntries(), models.EntryFilters{DateTo: "2026-02-19"})
	assert.Len(t, filtered, 3)

	filtered = FilterEntries(testEntries(), models.EntryFilters{DateFrom: "2026-02-21"})
	assert.Empty(t, filtered)
}

func TestFilterCommutesWithSum(t *testing.T) {
	entries := testEntries()
	filters := models.EntryFilters{ClientID: "client-a"}

	// Summing the filtered set equals summing the unfiltered set
	// restricted to the same predicate.
	filteredTotal := Totals(FilterEntries(entries, filters))

	var manual float64
	for _, e := range entries {
		if MatchesFilters(e, filters) {
			manual += *e.BillableDuration
		}
	}

	assert.Equal(t, manual, filteredTotal.BillableHours)
}

func TestGroupByDate(t *testing.T) {
	grouped := GroupByDate(testEntries())

	assert.Len(t, grouped, 3)
	assert.Len(t, grouped["2026-02-18"], 2)
	assert.Len(t, grouped["2026-02-19"], 1)
	assert.Len(t, grouped["2026-02-20"], 1)
}

func TestTotals(t *testing.T) {
	totals := Totals(testEntries())

	assert.Equal(t, 4, totals.Count)
	assert.InDelta(t, 4.3, totals.BillableHours, 1e-9)
	assert.InDelta(t, 237.0, totals.ExactMinutes, 1e-9)

	// Billable is ceiling-rounded per entry, exact minutes are not;
	// the two sums do not reconcile.
	assert.NotEqual(t, totals.ExactMinutes/60, totals.BillableHours)
}

func TestTotalsEmpty(t *testing.T) {
	totals := Totals(nil)
	assert.Equal(t, EntryTotals{}, totals)
}
