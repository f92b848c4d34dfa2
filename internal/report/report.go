package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bryan-cox/whosout/internal/calendar"
	"github.com/bryan-cox/whosout/internal/model"
)

// NobodyOut is the line emitted when the report is empty.
const NobodyOut = "Nobody is on leave today"

// Item is one rendered absence: the chosen display name plus the span
// and leave types of a single merged range.
type Item struct {
	Name  string
	Start calendar.Date
	End   calendar.Date
	Types []model.LeaveType
}

// Holiday reports whether the item describes a company holiday rather
// than personal leave.
func (it Item) Holiday() bool {
	for _, t := range it.Types {
		if t == model.TypeHoliday {
			return true
		}
	}
	return false
}

// Line renders the item as one report line: name, date span, types.
func (it Item) Line() string {
	span := it.Start.String()
	if !it.End.Equal(it.Start) {
		span = fmt.Sprintf("%s to %s", it.Start, it.End)
	}
	types := make([]string, len(it.Types))
	for i, t := range it.Types {
		types[i] = string(t)
	}
	return fmt.Sprintf("%s: %s (%s)", it.Name, span, strings.Join(types, ", "))
}

// Report is the assembled output. Items are ordered case-insensitively
// by display name and, within a name, by start date; identical input
// always yields byte-identical lines.
type Report struct {
	Items []Item
}

// Build resolves the final display ordering over the merged ranges.
// Per-employee range order comes in from the consolidation engine and
// is preserved.
func Build(displays []model.EmployeeDisplay) Report {
	sorted := make([]model.EmployeeDisplay, len(displays))
	copy(sorted, displays)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].ChosenName) < strings.ToLower(sorted[j].ChosenName)
	})

	var items []Item
	for _, d := range sorted {
		for _, r := range d.Ranges {
			items = append(items, Item{Name: d.ChosenName, Start: r.Start, End: r.End, Types: r.Types})
		}
	}
	return Report{Items: items}
}

// Lines returns the flat report, one line per item, or the nobody-out
// line for an empty report.
func (r Report) Lines() []string {
	if len(r.Items) == 0 {
		return []string{NobodyOut}
	}
	lines := make([]string, len(r.Items))
	for i, it := range r.Items {
		lines[i] = it.Line()
	}
	return lines
}

// Holidays returns the items describing company holidays, in order.
func (r Report) Holidays() []Item { return r.filter(true) }

// Leave returns the personal-leave items, in order.
func (r Report) Leave() []Item { return r.filter(false) }

func (r Report) filter(holiday bool) []Item {
	var out []Item
	for _, it := range r.Items {
		if it.Holiday() == holiday {
			out = append(out, it)
		}
	}
	return out
}
