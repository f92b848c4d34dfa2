// Package consolidate implements the interval-consolidation engine: it
// folds raw leave entries into the minimal set of display ranges,
// merging entries that touch or are separated only by a weekend.
package consolidate

import (
	"sort"

	"github.com/bryan-cox/whosout/internal/calendar"
	"github.com/bryan-cox/whosout/internal/model"
)

// Consolidate groups entries by employee, sorts each group by start
// date (end date as tie-break), and folds left to right: the open
// range absorbs the next entry whenever model.Mergeable holds against
// the accumulated range, unioning leave types as it goes. Two entries
// that only merge through a common third still end up in one range
// because the fold always compares against the accumulated range, not
// the original entry.
//
// The output is maximal under the merge predicate: no two ranges for
// the same employee could merge further, so feeding the output back
// through Consolidate is a no-op.
//
// A malformed entry (end before start) fails the whole run; no partial
// result is returned.
func Consolidate(entries []model.Entry) ([]model.MergedRange, error) {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	// First-seen key order keeps the concatenated output deterministic.
	groups := make(map[string][]model.Entry)
	var order []string
	for _, e := range entries {
		key := e.GroupKey()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], e)
	}

	var out []model.MergedRange
	for _, key := range order {
		out = append(out, consolidateGroup(groups[key])...)
	}
	return out, nil
}

func consolidateGroup(entries []model.Entry) []model.MergedRange {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Start.Equal(entries[j].Start) {
			return entries[i].Start.Before(entries[j].Start)
		}
		return entries[i].End.Before(entries[j].End)
	})

	var ranges []model.MergedRange
	open := newRange(entries[0])
	for _, e := range entries[1:] {
		if model.Mergeable(open.End, e.Start) {
			if e.End.After(open.End) {
				open.End = e.End
			}
			open.AddType(e.Type)
			continue
		}
		ranges = append(ranges, open)
		open = newRange(e)
	}
	return append(ranges, open)
}

func newRange(e model.Entry) model.MergedRange {
	return model.MergedRange{
		EmployeeID:    e.EmployeeID,
		Name:          e.Name,
		PreferredName: e.PreferredName,
		Start:         e.Start,
		End:           e.End,
		Types:         []model.LeaveType{e.Type},
	}
}

// Current filters ranges down to those covering the as-of date: the
// posted report answers "who is out today and until when", not the
// full year's schedule.
func Current(ranges []model.MergedRange, asOf calendar.Date) []model.MergedRange {
	var out []model.MergedRange
	for _, r := range ranges {
		if r.Contains(asOf) {
			out = append(out, r)
		}
	}
	return out
}
